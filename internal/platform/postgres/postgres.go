package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"debatetab/internal/platform/config"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// foreignKeyViolation is the SQLSTATE for foreign_key_violation.
const foreignKeyViolation = "23503"

// Open connects with the configured database/sql driver ("postgres" for
// lib/pq, "pgx" for pgx's stdlib adapter) and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Schema returns the embedded DDL, for test containers.
func Schema() string {
	return schema
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either driver.
func IsUniqueViolation(err error) bool {
	return sqlState(err) == uniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign-key failure from
// either driver.
func IsForeignKeyViolation(err error) bool {
	return sqlState(err) == foreignKeyViolation
}

func sqlState(err error) string {
	if err == nil {
		return ""
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
