// pkg/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/model"
)

// tableName is the raw case table loaded from the Socrata feed.
const tableName = "oath_cases"

// CaseStore provides access to the raw adjudication records. The
// analysis pipeline only needs full-scan enumeration plus an optional
// hearing-date filter pushed down to the database.
type CaseStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewCaseStore creates a CaseStore and ensures the case table exists
func NewCaseStore(db *sqlx.DB, logger *zap.Logger) (*CaseStore, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if logger == nil {
		logger = zap.L()
	}

	store := &CaseStore{
		db:     db,
		logger: logger.Named("case-store"),
	}

	if err := store.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to setup case table: %w", err)
	}

	return store, nil
}

// ensureTable creates the oath_cases table if it doesn't exist
func (s *CaseStore) ensureTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS oath_cases (
			case_id        text,
			hearing_date   date,
			violation_type text,
			decision       text,
			amount_due     numeric,
			amount_paid    numeric
		)
	`
	_, err := s.db.ExecContext(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create case table: %w", err)
	}

	s.logger.Info("Ensured oath_cases table exists")
	return nil
}

// FetchAll enumerates every raw record in the store
func (s *CaseStore) FetchAll(ctx context.Context) ([]model.RawRecord, error) {
	var records []model.RawRecord

	query := `
		SELECT case_id, hearing_date, violation_type, decision, amount_due, amount_paid
		FROM oath_cases
	`
	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", tableName, err)
	}

	s.logger.Debug("Fetched raw records", zap.Int("count", len(records)))
	return records, nil
}

// FetchRange enumerates raw records whose hearing date falls within
// [from, to]. Rows with a null hearing date are excluded by the
// predicate, matching the behavior of a pushed-down date filter.
func (s *CaseStore) FetchRange(ctx context.Context, from, to time.Time) ([]model.RawRecord, error) {
	var records []model.RawRecord

	query := `
		SELECT case_id, hearing_date, violation_type, decision, amount_due, amount_paid
		FROM oath_cases
		WHERE hearing_date >= $1 AND hearing_date <= $2
	`
	if err := s.db.SelectContext(ctx, &records, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to enumerate %s by date range: %w", tableName, err)
	}

	s.logger.Debug("Fetched raw records by date range",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("count", len(records)))
	return records, nil
}

// Count returns the number of rows in the store
func (s *CaseStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM oath_cases"); err != nil {
		return 0, fmt.Errorf("failed to count %s rows: %w", tableName, err)
	}
	return count, nil
}
