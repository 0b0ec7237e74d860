package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"authgate/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports for a unique index conflict.
const uniqueViolation = "23505"

type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ Users = (*UserPostgres)(nil)

const (
	insertUserPostgres = `INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`
	selectUserByUsernamePostgres = `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
)

// Create inserts a new user and returns the id the row was stored with.
func (r *UserPostgres) Create(ctx context.Context, username, passwordHash string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, insertUserPostgres, uuid.NewString(), username, passwordHash).Scan(&id)
	if err != nil {
		if isPostgresUniqueViolation(err) {
			return "", fmt.Errorf("insert user %q: %w", username, ErrDuplicateUsername)
		}
		return "", fmt.Errorf("insert user %q: %w", username, err)
	}
	return id, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserPostgres) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernamePostgres, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func isPostgresUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
