package store

import (
	"fmt"
	"testing"

	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewTestDB opens an isolated in-memory database, installs it as the package
// handle for the duration of the test and runs migrations against it.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	// A single connection keeps the shared in-memory db alive.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	prev := DB
	DB = db
	t.Cleanup(func() { DB = prev })

	DBMigrate()
	return db
}
