package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"go-gin-event-lookup/config"
	apperrors "go-gin-event-lookup/pkg/app_errors"
	"go-gin-event-lookup/pkg/logger"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate 使用 tern 將 schema 升級到最新版本，版本紀錄在 schema_version 資料表
func Migrate(ctx context.Context, cfg *config.DatabaseConfig) error {
	if cfg.URL == "" {
		return apperrors.ErrDatabaseConfig
	}

	conn, err := pgx.Connect(ctx, cfg.URL)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	log := logger.WithComponent("database")
	if from == int32(len(m.Migrations)) {
		log.Info("Database schema up to date", zap.Int("version", len(m.Migrations)))
	} else {
		log.Info("Migrated database schema", zap.Int32("from", from), zap.Int("to", len(m.Migrations)))
	}
	return nil
}
