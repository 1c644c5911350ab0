// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Renotrader31/options-calculator/internal/errors"
	"github.com/Renotrader31/options-calculator/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based analysis journal.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Saved strategy analyses
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		stock_price REAL NOT NULL,
		risk_free_rate REAL NOT NULL,
		implied_volatility REAL NOT NULL,
		legs TEXT NOT NULL,
		summary TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
	CREATE INDEX IF NOT EXISTS idx_analyses_label ON analyses(label);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveAnalysis persists one analysis and returns its journal ID.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, record *AnalysisRecord) (int64, error) {
	legsJSON, err := json.Marshal(record.Legs)
	if err != nil {
		return 0, errors.Wrap(err, "encoding legs")
	}
	summaryJSON, err := json.Marshal(record.Summary)
	if err != nil {
		return 0, errors.Wrap(err, "encoding summary")
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (created_at, label, stock_price, risk_free_rate, implied_volatility, legs, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt, record.Label,
		record.Context.UnderlyingPrice, record.Context.RiskFreeRate, record.Context.ImpliedVolatility,
		string(legsJSON), string(summaryJSON),
	)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return res.LastInsertId()
}

// GetAnalysis loads one analysis by journal ID.
func (s *SQLiteStore) GetAnalysis(ctx context.Context, id int64) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, label, stock_price, risk_free_rate, implied_volatility, legs, summary
		FROM analyses WHERE id = ?`, id)

	record, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrDataNotFound, "analysis %d", id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListAnalyses returns journal entries newest first.
func (s *SQLiteStore) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]AnalysisRecord, error) {
	query := `
		SELECT id, created_at, label, stock_price, risk_free_rate, implied_volatility, legs, summary
		FROM analyses WHERE 1=1`
	var args []interface{}

	if filter.Label != "" {
		query += " AND label LIKE ?"
		args = append(args, "%"+filter.Label+"%")
	}
	if !filter.StartDate.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// DeleteAnalysis removes one journal entry.
func (s *SQLiteStore) DeleteAnalysis(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(errors.ErrDataNotFound, "analysis %d", id)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*AnalysisRecord, error) {
	var record AnalysisRecord
	var legsJSON, summaryJSON string

	err := row.Scan(
		&record.ID, &record.CreatedAt, &record.Label,
		&record.Context.UnderlyingPrice, &record.Context.RiskFreeRate, &record.Context.ImpliedVolatility,
		&legsJSON, &summaryJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(legsJSON), &record.Legs); err != nil {
		return nil, errors.Wrap(err, "decoding legs")
	}
	if err := json.Unmarshal([]byte(summaryJSON), &record.Summary); err != nil {
		return nil, errors.Wrap(err, "decoding summary")
	}
	record.Context.Now = record.CreatedAt
	return &record, nil
}

// DescribeLegs renders a compact one-line description of a saved strategy,
// for history listings.
func DescribeLegs(legs []models.OptionLeg) string {
	parts := make([]string, 0, len(legs))
	for _, leg := range legs {
		parts = append(parts, fmt.Sprintf("%s %dx %.0f %s", leg.Side, leg.Quantity, leg.Strike, leg.Type))
	}
	return strings.Join(parts, ", ")
}
