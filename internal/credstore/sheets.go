package credstore

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"issuemap/internal/model"
	appErr "issuemap/internal/pkg/errors"
)

const (
	colUsername       = "username"
	colPassword       = "password"
	colFirstLogin     = "first_login"
	colFeedbackResult = "feedback_result"
)

type sheetsConfig struct {
	CredentialsFile string `json:"credentials_file"`
	SpreadsheetID   string `json:"spreadsheet_id"`
	Worksheet       string `json:"worksheet"`
}

// sheetsStore keeps user rows in a Google Sheets worksheet with a header row
// of username/password/first_login/feedback_result. Every read fetches the
// whole range fresh; every mutation reads the table, patches one cell and
// writes the whole table back. There is no isolation between concurrent
// writers (last write wins on the whole table), which the trainee-scale load
// tolerates.
type sheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

func init() {
	Register("sheets", createSheetsStore)
}

func createSheetsStore(args interface{}) (Store, error) {
	cfg := &sheetsConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	if cfg.CredentialsFile == "" || cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets credentials_file/spreadsheet_id are required")
	}
	if cfg.Worksheet == "" {
		cfg.Worksheet = "Users"
	}
	svc, err := sheets.NewService(
		context.Background(),
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	return &sheetsStore{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
	}, nil
}

type sheetTable struct {
	header []string
	rows   [][]string
}

func (t *sheetTable) columnIndex(name string) int {
	for i, h := range t.header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func (s *sheetsStore) readTable(ctx context.Context) (*sheetTable, error) {
	rng := fmt.Sprintf("%s!A1:Z", s.worksheet)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", s.worksheet, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("worksheet %s has no header row", s.worksheet)
	}
	table := &sheetTable{header: make([]string, 0, len(resp.Values[0]))}
	for _, cell := range resp.Values[0] {
		table.header = append(table.header, fmt.Sprint(cell))
	}
	// The previous generation of the app created missing columns on the fly;
	// keep doing that so older sheets stay usable.
	for _, required := range []string{colFirstLogin, colFeedbackResult} {
		if table.columnIndex(required) < 0 {
			table.header = append(table.header, required)
		}
	}
	width := len(table.header)
	for _, raw := range resp.Values[1:] {
		row := make([]string, width)
		for i := 0; i < width && i < len(raw); i++ {
			row[i] = fmt.Sprint(raw[i])
		}
		table.rows = append(table.rows, row)
	}
	return table, nil
}

func (s *sheetsStore) writeTable(ctx context.Context, table *sheetTable) error {
	values := make([][]interface{}, 0, len(table.rows)+1)
	header := make([]interface{}, len(table.header))
	for i, h := range table.header {
		header[i] = h
	}
	values = append(values, header)
	for _, row := range table.rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}
	rng := fmt.Sprintf("%s!A1", s.worksheet)
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("rewrite worksheet %s: %w", s.worksheet, err)
	}
	return nil
}

func (s *sheetsStore) findRow(table *sheetTable, username string) int {
	userCol := table.columnIndex(colUsername)
	if userCol < 0 {
		return -1
	}
	for i, row := range table.rows {
		if row[userCol] == username {
			return i
		}
	}
	return -1
}

func (s *sheetsStore) recordFromRow(table *sheetTable, idx int) *model.UserRecord {
	get := func(name string) string {
		col := table.columnIndex(name)
		if col < 0 {
			return ""
		}
		return table.rows[idx][col]
	}
	return &model.UserRecord{
		Username:       get(colUsername),
		Password:       get(colPassword),
		FirstLogin:     get(colFirstLogin),
		FeedbackResult: get(colFeedbackResult),
	}
}

func (s *sheetsStore) Get(ctx context.Context, username string) (*model.UserRecord, error) {
	table, err := s.readTable(ctx)
	if err != nil {
		return nil, err
	}
	idx := s.findRow(table, username)
	if idx < 0 {
		return nil, appErr.ErrNotFound
	}
	return s.recordFromRow(table, idx), nil
}

func (s *sheetsStore) setCell(ctx context.Context, username, column, value string) error {
	table, err := s.readTable(ctx)
	if err != nil {
		return err
	}
	idx := s.findRow(table, username)
	if idx < 0 {
		return appErr.ErrNotFound
	}
	col := table.columnIndex(column)
	if col < 0 {
		return fmt.Errorf("worksheet %s has no %s column", s.worksheet, column)
	}
	table.rows[idx][col] = value
	return s.writeTable(ctx, table)
}

func (s *sheetsStore) SetFirstLogin(ctx context.Context, username, value string) error {
	return s.setCell(ctx, username, colFirstLogin, value)
}

func (s *sheetsStore) SetFeedback(ctx context.Context, username, text string) error {
	return s.setCell(ctx, username, colFeedbackResult, text)
}
