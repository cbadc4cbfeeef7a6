// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL schema in data/migrations with golang-migrate.
//
// The API server runs [RunUp] before serving traffic; the yamdbctl CLI
// exposes [RunUp], [RunDown] and [Version] to operators.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies all pending up migrations.
//
// # Parameters
//   - dsn: postgres:// URL (rewritten to pgx5://)
//   - migrationsPath: filesystem path to the migrations directory
//   - logger: structured logger for migration events
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	return withMigrator(dsn, migrationsPath, logger, func(migrator *migrate.Migrate, from uint) error {
		logger.Info("migration_started", slog.Int("current_version", int(from)))

		if err := migrator.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info("migration_already_up_to_date")
				return nil
			}
			return fmt.Errorf("migration: up failed: %w", err)
		}

		to, _, _ := migrator.Version()
		logger.Info("migration_successful", slog.Int("from_version", int(from)), slog.Int("to_version", int(to)))
		return nil
	})
}

// RunDown rolls back the given number of migrations. steps <= 0 rolls back everything.
func RunDown(dsn string, migrationsPath string, steps int, logger *slog.Logger) error {
	return withMigrator(dsn, migrationsPath, logger, func(migrator *migrate.Migrate, from uint) error {
		logger.Warn("migration_rollback_started", slog.Int("current_version", int(from)), slog.Int("steps", steps))

		var err error
		if steps <= 0 {
			err = migrator.Down()
		} else {
			err = migrator.Steps(-steps)
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration: down failed: %w", err)
		}

		logger.Info("migration_rollback_finished")
		return nil
	})
}

// Version reports the applied schema version. A fresh database reports 0.
func Version(dsn string, migrationsPath string, logger *slog.Logger) (uint, error) {
	var version uint
	err := withMigrator(dsn, migrationsPath, logger, func(_ *migrate.Migrate, current uint) error {
		version = current
		return nil
	})
	return version, err
}

// withMigrator opens a migrator, refuses a dirty schema and always closes both ends.
func withMigrator(dsn, migrationsPath string, logger *slog.Logger, run func(*migrate.Migrate, uint) error) error {
	migrator, err := migrate.New("file://"+migrationsPath, convertToPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", currentVersion)
	}

	return run(migrator, currentVersion)
}

// convertToPgx5DSN rewrites postgres:// and postgresql:// to the pgx5:// scheme.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return false
}
