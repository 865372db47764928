// pkg/store/load.go
package store

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/model"
)

// copyColumns is the COPY column order; it must match the oath_cases
// table definition.
var copyColumns = []string{
	"case_id",
	"hearing_date",
	"violation_type",
	"decision",
	"amount_due",
	"amount_paid",
}

// CopyFrom bulk-loads raw records into the store using COPY, the same
// path the original dataset load used. The load runs in a single
// transaction; a failure leaves the table untouched.
func (s *CaseStore) CopyFrom(ctx context.Context, records []model.RawRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback COPY transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(tableName, copyColumns...))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare COPY statement: %w", err)
	}

	for i, rec := range records {
		_, err = stmt.ExecContext(ctx,
			rec.CaseID,
			rec.HearingDate,
			rec.ViolationType,
			rec.Decision,
			rec.AmountDue,
			rec.AmountPaid,
		)
		if err != nil {
			stmt.Close()
			return 0, fmt.Errorf("failed to buffer row %d for COPY: %w", i, err)
		}
	}

	// Final Exec with no arguments flushes the buffered rows
	if _, err = stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("failed to flush COPY buffer: %w", err)
	}

	if err = stmt.Close(); err != nil {
		return 0, fmt.Errorf("failed to close COPY statement: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit COPY transaction: %w", err)
	}

	s.logger.Info("Loaded raw records", zap.Int("count", len(records)))
	return int64(len(records)), nil
}
