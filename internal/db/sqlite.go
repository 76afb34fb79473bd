package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"payment-reminders-go/internal/domain/botconfig"
	"payment-reminders-go/internal/domain/reminders"
)

// NewSQLite opens the local reminder store and applies migrations.
// Migrations are additive only; existing user data is never dropped.
func NewSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		path = "payment_reminders.db"
	}

	if err := ensureDir(path); err != nil {
		return nil, err
	}

	dbLogger := gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := gormDB.AutoMigrate(&reminders.Reminder{}, &botconfig.Config{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return gormDB, nil
}

func ensureDir(path string) error {
	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		return nil
	}

	clean := strings.TrimPrefix(path, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
