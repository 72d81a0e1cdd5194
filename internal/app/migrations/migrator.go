package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/estudiantes/internal/app/models"
	"github.com/yigit/estudiantes/internal/db"
	"github.com/yigit/estudiantes/internal/pkg/logger"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var scripts embed.FS

// Migrator ensures the schema exists. Every script must be idempotent; there is no
// version history table.
type Migrator struct {
	db *db.PostgresDB
}

// NewMigrator creates a new migrator
func NewMigrator(database *db.PostgresDB) *Migrator {
	return &Migrator{
		db: database,
	}
}

// Scripts returns the embedded script names in execution order
func Scripts() ([]string, error) {
	entries, err := fs.ReadDir(scripts, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scripts: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Apply runs every embedded script, each inside its own transaction
func (m *Migrator) Apply(ctx context.Context) error {
	names, err := Scripts()
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := m.applyScript(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) applyScript(ctx context.Context, name string) error {
	content, err := scripts.ReadFile("sql/" + name)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", name, err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error executing schema script %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().Str("script", name).Msg("Schema script applied")
	return nil
}

// AutoMigrate creates the student table through gorm for the sqlite driver
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&models.Student{}); err != nil {
		return fmt.Errorf("failed to auto-migrate students: %w", err)
	}
	return nil
}
