package credstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"issuemap/internal/credstore"
	"issuemap/internal/model"
	appErr "issuemap/internal/pkg/errors"
)

func TestMemoryStoreIsolation(t *testing.T) {
	store := credstore.NewMemoryStore()
	store.Seed(model.UserRecord{Username: "alice", Password: "pw1"})

	user, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)

	// Mutating the returned record must not leak into the store.
	user.FeedbackResult = "scribble"
	again, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Empty(t, again.FeedbackResult)
}

func TestMemoryStoreSetters(t *testing.T) {
	store := credstore.NewMemoryStore()
	store.Seed(model.UserRecord{Username: "alice", Password: "pw1"})

	require.NoError(t, store.SetFirstLogin(context.Background(), "alice", "2025-01-10 09:00:00"))
	require.NoError(t, store.SetFeedback(context.Background(), "alice", "verdict"))
	require.ErrorIs(t, store.SetFirstLogin(context.Background(), "bob", "x"), appErr.ErrNotFound)

	user, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "2025-01-10 09:00:00", user.FirstLogin)
	require.Equal(t, "verdict", user.FeedbackResult)
}
