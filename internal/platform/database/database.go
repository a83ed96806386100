// Package database dials the relational backends that can host storage
// slots.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

// Connect opens a GORM connection for the dialect and verifies connectivity.
func Connect(ctx context.Context, dialect Dialect, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%s DSN is empty", dialect)
	}
	var dialector gorm.Dialector
	switch dialect {
	case Postgres:
		dialector = postgres.Open(dsn)
	case MySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectOrWarn dials the database and returns the DB plus a cleanup
// function. When the DSN is missing or the connection fails it logs and
// returns nil with a no-op cleanup so callers can fall back to memory.
func ConnectOrWarn(ctx context.Context, logger *slog.Logger, dialect Dialect, dsn string) (*gorm.DB, func()) {
	if strings.TrimSpace(dsn) == "" {
		logger.Warn("database DSN not set, falling back to in-memory slots", slog.String("dialect", string(dialect)))
		return nil, func() {}
	}
	db, err := Connect(ctx, dialect, dsn)
	if err != nil {
		logger.Warn("failed to connect to database, falling back to in-memory slots",
			slog.String("dialect", string(dialect)), slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap database connection, falling back to in-memory slots", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("database connection established", slog.String("dialect", string(dialect)))
	return db, func() { _ = sqlDB.Close() }
}
