// pkg/analyzer/distribution.go
package analyzer

import (
	"github.com/citydata/oath-analytics/pkg/model"
)

// AmountDueDistribution computes descriptive statistics over non-null
// penalty amounts.
func (a *Analyzer) AmountDueDistribution(records []model.CleanRecord) model.AmountDistribution {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.AmountDue != nil {
			values = append(values, *rec.AmountDue)
		}
	}
	return describe(values)
}

// OutstandingDistribution computes descriptive statistics over
// positive outstanding balances.
func (a *Analyzer) OutstandingDistribution(records []model.CleanRecord) model.AmountDistribution {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.Outstanding > 0 {
			values = append(values, rec.Outstanding)
		}
	}
	return describe(values)
}

// describe computes count, mean, continuous median, and max over a
// sample. An empty sample yields all zeros.
func describe(values []float64) model.AmountDistribution {
	dist := model.AmountDistribution{Count: len(values)}
	if len(values) == 0 {
		return dist
	}

	var sum float64
	dist.Max = values[0]
	for _, v := range values {
		sum += v
		if v > dist.Max {
			dist.Max = v
		}
	}

	dist.Average = round2(sum / float64(len(values)))
	dist.Median = median(values)
	return dist
}
