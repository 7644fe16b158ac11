package configs

import (
	"errors"

	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const EnvDevelopment = "development"

// devJWTSecret is only ever used when APP_ENV=development.
const devJWTSecret = "dev-only-insecure-secret"

type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	JWT struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"jwt"`
}

var AppConfig Config

func (c Config) IsDevelopment() bool {
	return c.App.Env == EnvDevelopment
}

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("app.env", "production")
	viper.SetDefault("server.port", 3000)

	viper.AutomaticEnv()
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// The yaml file is optional; env vars alone are a valid configuration.
	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &fileLookupError) {
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		logger.Log.Fatal("failed to unmarshal config", zap.Error(err))
	}

	if AppConfig.JWT.Secret == "" {
		if !AppConfig.IsDevelopment() {
			logger.Log.Fatal("JWT_SECRET is required outside development mode")
		}
		logger.Log.Warn("JWT_SECRET not set, using insecure development secret")
		AppConfig.JWT.Secret = devJWTSecret
	}
}
