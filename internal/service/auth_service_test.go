package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"issuemap/internal/credstore"
	"issuemap/internal/model"
	appErr "issuemap/internal/pkg/errors"
	"issuemap/internal/pkg/jwt"
	"issuemap/internal/pkg/timeutil"
	"issuemap/internal/service"
)

var jwtSecret = []byte("test-secret")

func newAuthFixture(window time.Duration, records ...model.UserRecord) (*service.AuthService, *credstore.MemoryStore) {
	store := credstore.NewMemoryStore()
	store.Seed(records...)
	return service.NewAuthService(store, jwtSecret, time.Hour, window), store
}

func TestLoginFirstTimeStampsFirstLogin(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	auth, store := newAuthFixture(24*time.Hour, model.UserRecord{Username: "alice", Password: "pw1"})

	token, user, err := auth.Login(context.Background(), "alice", "pw1", t0)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, timeutil.FormatStore(t0), user.FirstLogin)

	stored, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, timeutil.FormatStore(t0), stored.FirstLogin)

	claims, err := jwt.ParseToken(token, jwtSecret)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
}

func TestLoginWithinWindowDoesNotMutateFirstLogin(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	stamp := timeutil.FormatStore(t0)
	auth, store := newAuthFixture(24*time.Hour, model.UserRecord{Username: "alice", Password: "pw1", FirstLogin: stamp})

	_, _, err := auth.Login(context.Background(), "alice", "pw1", t0.Add(2*time.Hour))
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, stamp, stored.FirstLogin)
}

func TestLoginAfterWindowExpires(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	auth, _ := newAuthFixture(24*time.Hour, model.UserRecord{
		Username:   "alice",
		Password:   "pw1",
		FirstLogin: timeutil.FormatStore(t0),
	})

	_, _, err := auth.Login(context.Background(), "alice", "pw1", t0.Add(25*time.Hour))
	require.ErrorIs(t, err, appErr.ErrSessionExpired)
}

func TestLoginWrongPassword(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	auth, store := newAuthFixture(24*time.Hour, model.UserRecord{Username: "alice", Password: "pw1"})

	_, _, err := auth.Login(context.Background(), "alice", "wrong", t0)
	require.ErrorIs(t, err, appErr.ErrInvalidCredentials)

	stored, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Empty(t, stored.FirstLogin)
}

func TestLoginUnknownUser(t *testing.T) {
	auth, _ := newAuthFixture(24 * time.Hour)
	_, _, err := auth.Login(context.Background(), "nobody", "pw", time.Now())
	require.ErrorIs(t, err, appErr.ErrInvalidCredentials)
}

func TestLoginPasswordComparisonIsCaseSensitive(t *testing.T) {
	auth, _ := newAuthFixture(24*time.Hour, model.UserRecord{Username: "alice", Password: "Secret"})
	_, _, err := auth.Login(context.Background(), "alice", "secret", time.Now())
	require.ErrorIs(t, err, appErr.ErrInvalidCredentials)
}

func TestLoginUnparseableFirstLoginIsRejected(t *testing.T) {
	auth, _ := newAuthFixture(24*time.Hour, model.UserRecord{
		Username:   "alice",
		Password:   "pw1",
		FirstLogin: "not-a-timestamp",
	})
	_, _, err := auth.Login(context.Background(), "alice", "pw1", time.Now())
	require.ErrorIs(t, err, appErr.ErrInvalidCredentials)
}

func TestLoginWindowUnaffectedByZoneOffset(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	prev := time.Local
	time.Local = loc
	defer func() { time.Local = prev }()

	now := time.Date(2025, 1, 10, 9, 0, 0, 0, loc)
	auth, _ := newAuthFixture(24*time.Hour, model.UserRecord{
		Username:   "alice",
		Password:   "pw1",
		FirstLogin: timeutil.FormatStore(now.Add(-23 * time.Hour)),
	}, model.UserRecord{
		Username:   "bob",
		Password:   "pw2",
		FirstLogin: timeutil.FormatStore(now.Add(-25 * time.Hour)),
	})

	_, _, err = auth.Login(context.Background(), "alice", "pw1", now)
	require.NoError(t, err)

	_, _, err = auth.Login(context.Background(), "bob", "pw2", now)
	require.ErrorIs(t, err, appErr.ErrSessionExpired)
}

func TestLoginLongWindowStillValid(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	auth, _ := newAuthFixture(720*time.Hour, model.UserRecord{
		Username:   "alice",
		Password:   "pw1",
		FirstLogin: timeutil.FormatStore(t0),
	})
	_, _, err := auth.Login(context.Background(), "alice", "pw1", t0.Add(29*24*time.Hour))
	require.NoError(t, err)
}
