package repository

import (
	"context"
	"errors"

	"authgate/internal/models"
	"authgate/internal/repository/db"
)

// ErrDuplicateUsername is returned by Create when the store's unique constraint on
// username rejects the insert.
var ErrDuplicateUsername = errors.New("duplicate username")

// Users is the credential store: a flat collection keyed by username.
type Users interface {
	// Create inserts a record and returns the identifier assigned to it.
	Create(ctx context.Context, username, passwordHash string) (string, error)
	// GetByUsername returns (nil, nil) when no record matches.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Repository struct {
	Users Users
}

// NewRepository picks the Users implementation that matches the store's dialect.
func NewRepository(store *db.Store) *Repository {
	var users Users
	switch store.Dialect {
	case db.DialectPostgres:
		users = NewUserPostgres(store.DB)
	default:
		users = NewUserSQLite(store.DB)
	}
	return &Repository{Users: users}
}
