// pkg/analyzer/profile.go
package analyzer

import (
	"database/sql"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/model"
)

// duplicateReportLimit caps the duplicate case_id listing.
const duplicateReportLimit = 20

// Profile summarizes the raw dataset before any cleaning: row count,
// per-field null rates, hearing-date range, and repeated case_ids.
// Duplicates are reported, never removed; whether they are repeat
// hearings or data-entry noise is not resolvable from the source.
func (a *Analyzer) Profile(records []model.RawRecord) model.DatasetProfile {
	profile := model.DatasetProfile{
		RowCount: len(records),
		NullCounts: map[string]int{
			"case_id":        0,
			"hearing_date":   0,
			"violation_type": 0,
			"decision":       0,
			"amount_due":     0,
			"amount_paid":    0,
		},
	}

	caseCounts := make(map[string]int)

	for _, rec := range records {
		countNullText(profile.NullCounts, "case_id", rec.CaseID)
		countNullText(profile.NullCounts, "violation_type", rec.ViolationType)
		countNullText(profile.NullCounts, "decision", rec.Decision)
		countNullText(profile.NullCounts, "amount_due", rec.AmountDue)
		countNullText(profile.NullCounts, "amount_paid", rec.AmountPaid)

		if rec.HearingDate.Valid {
			date := rec.HearingDate.Time
			if profile.MinHearingDate == nil || date.Before(*profile.MinHearingDate) {
				d := date
				profile.MinHearingDate = &d
			}
			if profile.MaxHearingDate == nil || date.After(*profile.MaxHearingDate) {
				d := date
				profile.MaxHearingDate = &d
			}
		} else {
			profile.NullCounts["hearing_date"]++
		}

		if rec.CaseID.Valid && strings.TrimSpace(rec.CaseID.String) != "" {
			caseCounts[rec.CaseID.String]++
		}
	}

	for caseID, count := range caseCounts {
		if count > 1 {
			profile.DuplicateCases = append(profile.DuplicateCases, model.CaseCount{
				CaseID: caseID,
				Count:  count,
			})
		}
	}
	sort.Slice(profile.DuplicateCases, func(i, j int) bool {
		if profile.DuplicateCases[i].Count != profile.DuplicateCases[j].Count {
			return profile.DuplicateCases[i].Count > profile.DuplicateCases[j].Count
		}
		return profile.DuplicateCases[i].CaseID < profile.DuplicateCases[j].CaseID
	})
	profile.DuplicateCases = truncate(profile.DuplicateCases, duplicateReportLimit)

	a.logger.Info("Profiled raw dataset",
		zap.Int("rows", profile.RowCount),
		zap.Int("duplicate_case_ids", len(profile.DuplicateCases)),
		zap.Timep("min_hearing_date", profile.MinHearingDate),
		zap.Timep("max_hearing_date", profile.MaxHearingDate))

	return profile
}

// countNullText counts nulls for a text field; a blank-after-trim
// value counts as null since the feed uses both interchangeably
func countNullText(counts map[string]int, field string, value sql.NullString) {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		counts[field]++
	}
}
