// pkg/analyzer/monthly.go
package analyzer

import (
	"sort"
	"time"

	"github.com/citydata/oath-analytics/pkg/model"
)

// MonthlyCaseCounts counts cases per hearing month, earliest month
// first. Rows without a hearing date are excluded.
func (a *Analyzer) MonthlyCaseCounts(records []model.CleanRecord) []model.MonthlyCaseCount {
	counts := make(map[time.Time]int)
	for _, rec := range records {
		if rec.HearingDate == nil {
			continue
		}
		counts[truncateToMonth(*rec.HearingDate)]++
	}

	rows := make([]model.MonthlyCaseCount, 0, len(counts))
	for month, count := range counts {
		rows = append(rows, model.MonthlyCaseCount{Month: month, Cases: count})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month.Before(rows[j].Month)
	})

	return rows
}

// MonthlyCollections totals penalties and payments per hearing month
// with the month's collection rate, earliest month first. A month with
// no penalties gets a nil rate, not a division error.
func (a *Analyzer) MonthlyCollections(records []model.CleanRecord) []model.MonthlyCollections {
	type agg struct {
		penalties float64
		paid      float64
	}
	sums := make(map[time.Time]*agg)
	for _, rec := range records {
		if rec.HearingDate == nil {
			continue
		}
		month := truncateToMonth(*rec.HearingDate)
		entry := sums[month]
		if entry == nil {
			entry = &agg{}
			sums[month] = entry
		}
		entry.penalties += rec.DueOrZero()
		entry.paid += rec.PaidOrZero()
	}

	rows := make([]model.MonthlyCollections, 0, len(sums))
	for month, entry := range sums {
		rows = append(rows, model.MonthlyCollections{
			Month:             month,
			Penalties:         entry.penalties,
			Paid:              entry.paid,
			CollectionRatePct: ratioPct(entry.paid, entry.penalties),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month.Before(rows[j].Month)
	})

	return rows
}

// truncateToMonth maps a date to the first of its month in UTC
func truncateToMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
