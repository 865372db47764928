// pkg/analyzer/analyzer_test.go
package analyzer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/model"
)

func fp(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// caseRecord builds a clean record the way the normalizer would,
// deriving the outstanding balance from the nullable amounts.
func caseRecord(agency, decision string, due, paid *float64) model.CleanRecord {
	rec := model.CleanRecord{
		ViolationType: agency,
		Decision:      decision,
		AmountDue:     due,
		AmountPaid:    paid,
	}
	rec.Outstanding = rec.DueOrZero() - rec.PaidOrZero()
	return rec
}

func TestCollections(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	t.Run("single record with null paid", func(t *testing.T) {
		summary := a.Collections([]model.CleanRecord{
			caseRecord("TLC", "DEFAULT", fp(100), nil),
		})

		assert.Equal(t, 100.0, summary.TotalDue)
		assert.Equal(t, 0.0, summary.TotalPaid)
		assert.Equal(t, 100.0, summary.TotalOutstanding)
		require.NotNil(t, summary.CollectionRatePct)
		assert.Equal(t, 0.0, *summary.CollectionRatePct)
	})

	t.Run("rate restricted to positive due", func(t *testing.T) {
		summary := a.Collections([]model.CleanRecord{
			caseRecord("TLC", "DEFAULT", fp(200), fp(50)),
			// Paid with nothing due: excluded from the rate numerator
			caseRecord("DOB", "DISMISSED", nil, fp(75)),
		})

		assert.Equal(t, 200.0, summary.TotalDue)
		assert.Equal(t, 125.0, summary.TotalPaid)
		require.NotNil(t, summary.CollectionRatePct)
		assert.Equal(t, 25.0, *summary.CollectionRatePct)
	})

	t.Run("nil rate when nothing due", func(t *testing.T) {
		summary := a.Collections([]model.CleanRecord{
			caseRecord("TLC", "DISMISSED", nil, fp(50)),
		})
		assert.Nil(t, summary.CollectionRatePct)
	})
}

func TestDecisionMix(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	var records []model.CleanRecord
	for i := 0; i < 5; i++ {
		records = append(records, caseRecord("TLC", "DEFAULT", nil, nil))
	}
	for i := 0; i < 2; i++ {
		records = append(records, caseRecord("TLC", "DISMISSED", nil, nil))
	}
	records = append(records, caseRecord("TLC", "SUSTAINED", nil, nil))

	shares := a.DecisionMix(records)
	require.Len(t, shares, 3)

	assert.Equal(t, "DEFAULT", shares[0].Decision)
	assert.Equal(t, 5, shares[0].Count)
	assert.Equal(t, 62.5, shares[0].Pct)

	var totalPct float64
	for _, share := range shares {
		totalPct += share.Pct
	}
	assert.InDelta(t, 100.0, totalPct, 0.01*float64(len(shares)))
}

func TestAgencyCaseCounts(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	var records []model.CleanRecord
	for i := 0; i < 20; i++ {
		records = append(records, caseRecord(fmt.Sprintf("AGENCY-%02d", i), "DEFAULT", nil, nil))
		if i < 3 {
			records = append(records, caseRecord(fmt.Sprintf("AGENCY-%02d", i), "DISMISSED", nil, nil))
		}
	}

	counts := a.AgencyCaseCounts(records)
	require.Len(t, counts, 15)
	assert.Equal(t, "AGENCY-00", counts[0].Agency)
	assert.Equal(t, 2, counts[0].Count)
	// Singleton agencies tie and order alphabetically after the top three
	assert.Equal(t, "AGENCY-03", counts[3].Agency)
}

func TestAgencyOutstanding(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	records := []model.CleanRecord{
		caseRecord("TLC", "DEFAULT", fp(500), fp(100)),
		caseRecord("TLC", "DEFAULT", fp(100), nil),
		caseRecord("DOB", "DEFAULT", fp(50), nil),
		// Fully paid agency drops out of the ranking
		caseRecord("DSNY", "SUSTAINED", fp(80), fp(80)),
	}

	ranking := a.AgencyOutstanding(records)
	require.Len(t, ranking, 2)

	assert.Equal(t, "TLC", ranking[0].Agency)
	assert.Equal(t, 500.0, ranking[0].Outstanding)
	assert.Equal(t, 2, ranking[0].Cases)
	assert.Equal(t, "DOB", ranking[1].Agency)
}

func TestMonthlyCaseCounts(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	records := []model.CleanRecord{
		{HearingDate: date(2024, time.October, 3)},
		{HearingDate: date(2024, time.October, 28)},
		{HearingDate: date(2024, time.September, 14)},
		{HearingDate: nil}, // undated rows are excluded
	}

	series := a.MonthlyCaseCounts(records)
	require.Len(t, series, 2)

	assert.Equal(t, time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), series[0].Month)
	assert.Equal(t, 1, series[0].Cases)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), series[1].Month)
	assert.Equal(t, 2, series[1].Cases)
}

func TestMonthlyCollections(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	sept := date(2024, time.September, 10)
	oct := date(2024, time.October, 5)

	records := []model.CleanRecord{
		{HearingDate: sept, AmountDue: fp(100), AmountPaid: fp(40)},
		{HearingDate: sept, AmountDue: fp(100), AmountPaid: fp(10)},
		// October has payments but no penalties: rate must be nil
		{HearingDate: oct, AmountPaid: fp(50)},
	}
	for i := range records {
		records[i].Outstanding = records[i].DueOrZero() - records[i].PaidOrZero()
	}

	series := a.MonthlyCollections(records)
	require.Len(t, series, 2)

	assert.Equal(t, 200.0, series[0].Penalties)
	assert.Equal(t, 50.0, series[0].Paid)
	require.NotNil(t, series[0].CollectionRatePct)
	assert.Equal(t, 25.0, *series[0].CollectionRatePct)

	assert.Equal(t, 0.0, series[1].Penalties)
	assert.Equal(t, 50.0, series[1].Paid)
	assert.Nil(t, series[1].CollectionRatePct)
}

func TestDecisionsByTopAgencies(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	var records []model.CleanRecord
	// Twelve agencies; the two smallest must be excluded from the breakdown
	for i := 0; i < 12; i++ {
		agency := fmt.Sprintf("AGENCY-%02d", i)
		for j := 0; j < 12-i; j++ {
			decision := "DEFAULT"
			if j%2 == 1 {
				decision = "DISMISSED"
			}
			records = append(records, caseRecord(agency, decision, nil, nil))
		}
	}

	rows := a.DecisionsByTopAgencies(records)

	agencies := make(map[string]bool)
	for _, row := range rows {
		agencies[row.Agency] = true
	}
	assert.Len(t, agencies, 10)
	assert.False(t, agencies["AGENCY-10"])
	assert.False(t, agencies["AGENCY-11"])

	// Ordered by agency, then biggest decision group first
	assert.Equal(t, "AGENCY-00", rows[0].Agency)
	assert.Equal(t, "DEFAULT", rows[0].Decision)
	assert.Equal(t, 6, rows[0].Count)
	assert.Equal(t, "AGENCY-00", rows[1].Agency)
	assert.Equal(t, "DISMISSED", rows[1].Decision)
}

func TestOutstandingConcentration(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	records := []model.CleanRecord{
		caseRecord("A", "DEFAULT", fp(300), nil),
		caseRecord("B", "DEFAULT", fp(300), nil),
		caseRecord("C", "DEFAULT", fp(100), nil),
	}

	rows := a.OutstandingConcentration(records)
	require.Len(t, rows, 3)

	// A and B tie at rank 1; C takes rank 3, rank 2 is skipped
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 1, rows[1].Rank)
	assert.Equal(t, 3, rows[2].Rank)
	assert.Equal(t, "C", rows[2].Agency)

	require.NotNil(t, rows[0].PctOfTotal)
	assert.Equal(t, 42.86, *rows[0].PctOfTotal)
	assert.Equal(t, 42.86, *rows[1].PctOfTotal)
	assert.Equal(t, 14.29, *rows[2].PctOfTotal)

	t.Run("zero total yields nil shares", func(t *testing.T) {
		rows := a.OutstandingConcentration([]model.CleanRecord{
			caseRecord("A", "DISMISSED", nil, nil),
		})
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].PctOfTotal)
	})
}

func TestDistributions(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	t.Run("amount due ignores nulls", func(t *testing.T) {
		records := []model.CleanRecord{
			caseRecord("TLC", "DEFAULT", fp(10), nil),
			caseRecord("TLC", "DEFAULT", fp(20), nil),
			caseRecord("TLC", "DEFAULT", fp(40), nil),
			caseRecord("TLC", "DEFAULT", fp(100), nil),
			caseRecord("TLC", "DISMISSED", nil, nil),
		}

		dist := a.AmountDueDistribution(records)
		assert.Equal(t, 4, dist.Count)
		assert.Equal(t, 42.5, dist.Average)
		assert.Equal(t, 30.0, dist.Median) // interpolated between 20 and 40
		assert.Equal(t, 100.0, dist.Max)
	})

	t.Run("odd-length median", func(t *testing.T) {
		records := []model.CleanRecord{
			caseRecord("TLC", "DEFAULT", fp(10), nil),
			caseRecord("TLC", "DEFAULT", fp(25), nil),
			caseRecord("TLC", "DEFAULT", fp(90), nil),
		}
		dist := a.AmountDueDistribution(records)
		assert.Equal(t, 25.0, dist.Median)
	})

	t.Run("outstanding restricted to positive", func(t *testing.T) {
		records := []model.CleanRecord{
			caseRecord("TLC", "DEFAULT", fp(100), nil),     // outstanding 100
			caseRecord("TLC", "DEFAULT", fp(50), fp(50)),   // zero, excluded
			caseRecord("TLC", "DEFAULT", fp(20), fp(70)),   // negative, excluded
			caseRecord("TLC", "DEFAULT", fp(300), fp(100)), // outstanding 200
		}

		dist := a.OutstandingDistribution(records)
		assert.Equal(t, 2, dist.Count)
		assert.Equal(t, 150.0, dist.Average)
		assert.Equal(t, 150.0, dist.Median)
		assert.Equal(t, 200.0, dist.Max)
	})

	t.Run("empty sample", func(t *testing.T) {
		dist := a.OutstandingDistribution(nil)
		assert.Equal(t, model.AmountDistribution{}, dist)
	})
}
