package repository

import (
	"context"
	"path/filepath"
	"testing"

	"authgate/internal/repository/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSQLite_AgainstRealStore(t *testing.T) {
	ctx := context.Background()
	store, err := db.Open(ctx, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo := NewRepository(store).Users

	id, err := repo.Create(ctx, "alice", "$2a$10$hash")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	u, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.Create(ctx, "alice", "$2a$10$other")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	// Lookups are exact: usernames are case-sensitive.
	missing, err := repo.GetByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
