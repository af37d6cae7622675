package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"issuemap/internal/credstore"
	"issuemap/internal/model"
	appErr "issuemap/internal/pkg/errors"
	"issuemap/internal/pkg/jwt"
	"issuemap/internal/pkg/timeutil"
)

// AuthService validates trainee logins against the credential store and
// enforces the session validity window anchored to each user's first
// successful login.
type AuthService struct {
	store     credstore.Store
	jwtSecret []byte
	jwtTTL    time.Duration
	window    time.Duration
}

func NewAuthService(store credstore.Store, secret []byte, jwtTTL, window time.Duration) *AuthService {
	return &AuthService{store: store, jwtSecret: secret, jwtTTL: jwtTTL, window: window}
}

// Login checks the username/password pair (exact match, case-sensitive; the
// store holds plain text) and the first-login window, stamps first_login on
// the first successful authentication, and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string, now time.Time) (string, *model.UserRecord, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("username", username))
	user, err := s.store.Get(ctx, username)
	if err != nil {
		if appErr.IsNotFound(err) {
			return "", nil, appErr.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("read credential store: %w", err)
	}
	if user.Password != password {
		return "", nil, appErr.ErrInvalidCredentials
	}

	if user.FirstLogin == "" {
		stamp := timeutil.FormatStore(now)
		if err := s.store.SetFirstLogin(ctx, username, stamp); err != nil {
			logger.Error("failed to stamp first login", zap.Error(err))
			return "", nil, fmt.Errorf("stamp first login: %w", err)
		}
		user.FirstLogin = stamp
		logger.Info("first login recorded", zap.String("first_login", stamp))
	} else {
		firstLogin, err := timeutil.ParseStore(user.FirstLogin)
		if err != nil {
			// An unreadable timestamp locks the row out rather than granting
			// an unbounded session.
			logger.Warn("unparseable first_login value", zap.String("value", user.FirstLogin))
			return "", nil, appErr.ErrInvalidCredentials
		}
		if now.Sub(firstLogin) >= s.window {
			logger.Info("session window elapsed", zap.String("first_login", user.FirstLogin))
			return "", nil, appErr.ErrSessionExpired
		}
	}

	token, err := jwt.GenerateToken(username, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
