// pkg/normalizer/normalizer.go
package normalizer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/model"
)

// Normalizer maps raw adjudication records to their cleaned view:
// categorical fields canonicalized, amounts coerced to numbers, and
// the outstanding balance derived. It performs no row filtering and
// has no side effects; every raw row yields exactly one clean row.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a new Normalizer instance
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.L()
	}
	return &Normalizer{logger: logger.Named("normalizer")}
}

// Normalize converts one RawRecord into its CleanRecord. The only
// possible failure is a malformed monetary value; categorical rules
// always terminate in a defined output.
func (n *Normalizer) Normalize(rec model.RawRecord) (model.CleanRecord, error) {
	clean := model.CleanRecord{
		CaseID:        rec.CaseID.String,
		ViolationType: canonicalize(rec.ViolationType, violationRules, passthrough),
		Decision:      canonicalize(rec.Decision, decisionRules, strings.ToUpper),
	}

	if rec.HearingDate.Valid {
		date := rec.HearingDate.Time
		clean.HearingDate = &date
	}

	due, err := parseAmount(rec.AmountDue, "amount_due", clean.CaseID)
	if err != nil {
		return model.CleanRecord{}, err
	}
	clean.AmountDue = due

	paid, err := parseAmount(rec.AmountPaid, "amount_paid", clean.CaseID)
	if err != nil {
		return model.CleanRecord{}, err
	}
	clean.AmountPaid = paid

	// Nulls count as zero for the derived balance only; the source
	// amounts stay null.
	clean.Outstanding = clean.DueOrZero() - clean.PaidOrZero()

	return clean, nil
}

// NormalizeAll converts a batch of raw records, aborting on the first
// malformed amount.
func (n *Normalizer) NormalizeAll(records []model.RawRecord) ([]model.CleanRecord, error) {
	cleaned := make([]model.CleanRecord, 0, len(records))

	for i, rec := range records {
		clean, err := n.Normalize(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		cleaned = append(cleaned, clean)
	}

	return cleaned, nil
}

// NormalizeAllSkipMalformed converts a batch of raw records, dropping
// and logging records with malformed amounts instead of aborting. The
// per-record errors are returned alongside the cleaned rows so callers
// can report them.
func (n *Normalizer) NormalizeAllSkipMalformed(records []model.RawRecord) ([]model.CleanRecord, []error) {
	cleaned := make([]model.CleanRecord, 0, len(records))
	var skipped []error

	for i, rec := range records {
		clean, err := n.Normalize(rec)
		if err != nil {
			n.logger.Warn("Skipping record with malformed amount",
				zap.Int("row", i),
				zap.Error(err))
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		cleaned = append(cleaned, clean)
	}

	if len(skipped) > 0 {
		n.logger.Warn("Malformed records skipped during normalization",
			zap.Int("skipped", len(skipped)),
			zap.Int("kept", len(cleaned)))
	}

	return cleaned, skipped
}

// passthrough keeps an unmatched violation type as its trimmed original text
func passthrough(s string) string {
	return s
}
