package db

import (
	"fmt"

	"github.com/yigit/estudiantes/internal/config"
	"github.com/yigit/estudiantes/internal/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewSQLiteDB opens a gorm handle on the sqlite file or DSN in cfg.Database.URL.
func NewSQLiteDB(cfg *config.Config) (*gorm.DB, error) {
	return OpenSQLite(cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
}

// OpenSQLite opens a gorm handle with duplicate-key translation enabled.
// In-memory databases must use a single connection so every query sees the same schema.
func OpenSQLite(dsn string, maxOpen, maxIdle int) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to establish sqlite connection: %w", err)
	}

	logger.Debug().Str("dsn", dsn).Msg("SQLite database opened")
	return gdb, nil
}
