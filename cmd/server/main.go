package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RavanaDevs/expense-tacker-web-backend/configs"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/routes"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/seed"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"go.uber.org/zap"
)

func main() {
	logger.Init(os.Getenv("APP_ENV") == configs.EnvDevelopment)
	defer logger.Log.Sync()

	configs.LoadConfig()
	store.NewDB()
	store.DBMigrate()
	if configs.AppConfig.IsDevelopment() {
		seed.Run()
	}

	router := routes.NewRoutes()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configs.AppConfig.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Log.Info("server stopped")
}
