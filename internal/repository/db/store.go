// Package db opens the credential store selected by a connection string.
package db

import (
	"context"
	"database/sql"
	"strings"
)

// Dialect identifies the SQL flavour behind a Store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Store is an open, schema-ready database handle.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// DialectFor picks the backend for dsn: postgres:// and postgresql:// URLs go to
// PostgreSQL, everything else is treated as a SQLite path or file: URI.
func DialectFor(dsn string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects to the store described by dsn and makes sure the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	dialect := DialectFor(dsn)

	var (
		conn *sql.DB
		err  error
	)
	switch dialect {
	case DialectPostgres:
		conn, err = InitPostgres(ctx, dsn)
	default:
		conn, err = InitSQLite(ctx, dsn)
	}
	if err != nil {
		return nil, err
	}
	return &Store{DB: conn, Dialect: dialect}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
