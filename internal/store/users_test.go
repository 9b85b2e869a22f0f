package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	created, err := users.Create(ctx, "alice", "digest-1")
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "digest-1", byID.PasswordHash)

	byName, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestUserStoreCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.Create(ctx, "alice", "digest-1")
	require.NoError(t, err)

	_, err = users.Create(ctx, "alice", "digest-2")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// 重複登録が行を増やしていないこと
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM user WHERE username = 'alice'").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUserStoreGetMissing(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreUsernameCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.Create(ctx, "Alice", "digest-1")
	require.NoError(t, err)

	// 保存時の表記での完全一致のみヒットする
	_, err = users.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.GetByUsername(ctx, "Alice")
	assert.NoError(t, err)
}
