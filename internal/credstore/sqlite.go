package credstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/didi/gendry/builder"
	_ "modernc.org/sqlite"

	"issuemap/internal/model"
	appErr "issuemap/internal/pkg/errors"
)

type sqliteConfig struct {
	Path string `json:"path"`
}

// sqliteStore is the local backend for running without Google credentials.
// Rows are provisioned out of band (sqlite3 CLI or a seed script), matching
// the pre-provisioned worksheet.
type sqliteStore struct {
	db *sql.DB
}

func init() {
	Register("sqlite", createSQLiteStore)
}

func createSQLiteStore(args interface{}) (Store, error) {
	cfg := &sqliteConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}
	store := &sqliteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *sqliteStore) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		first_login TEXT NOT NULL DEFAULT '',
		feedback_result TEXT NOT NULL DEFAULT ''
	)`)
	return err
}

func (s *sqliteStore) Get(ctx context.Context, username string) (*model.UserRecord, error) {
	where := map[string]interface{}{"username": username}
	sqlStr, args, err := builder.BuildSelect("users", where,
		[]string{"username", "password", "first_login", "feedback_result"})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var user model.UserRecord
	if err := rows.Scan(&user.Username, &user.Password, &user.FirstLogin, &user.FeedbackResult); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *sqliteStore) setColumn(ctx context.Context, username, column, value string) error {
	where := map[string]interface{}{"username": username}
	update := map[string]interface{}{column: value}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (s *sqliteStore) SetFirstLogin(ctx context.Context, username, value string) error {
	return s.setColumn(ctx, username, "first_login", value)
}

func (s *sqliteStore) SetFeedback(ctx context.Context, username, text string) error {
	return s.setColumn(ctx, username, "feedback_result", text)
}
