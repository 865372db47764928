// pkg/analyzer/analyzer.go
package analyzer

import (
	"sort"

	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/model"
)

// Analyzer is a library of independent summary computations over the
// cleaned record set. Every method is a pure read; callers may run any
// subset in any order.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates a new Analyzer instance
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.L()
	}
	return &Analyzer{logger: logger.Named("analyzer")}
}

// Collections computes dataset-wide penalty, payment, and outstanding
// totals plus the overall collection rate. The rate denominator is
// restricted to records with a positive amount due; when nothing is
// due the rate is nil rather than an error.
func (a *Analyzer) Collections(records []model.CleanRecord) model.CollectionsSummary {
	var summary model.CollectionsSummary
	var paidWhereDue float64

	for _, rec := range records {
		summary.TotalDue += rec.DueOrZero()
		summary.TotalPaid += rec.PaidOrZero()
		summary.TotalOutstanding += rec.Outstanding

		if rec.DueOrZero() > 0 {
			paidWhereDue += rec.PaidOrZero()
		}
	}

	summary.CollectionRatePct = ratioPct(paidWhereDue, summary.TotalDue)
	return summary
}

// DecisionMix groups records by decision and reports each group's
// count and share of the total, largest group first.
func (a *Analyzer) DecisionMix(records []model.CleanRecord) []model.DecisionShare {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Decision]++
	}

	shares := make([]model.DecisionShare, 0, len(counts))
	total := len(records)
	for decision, count := range counts {
		var pct float64
		if total > 0 {
			pct = round2(100 * float64(count) / float64(total))
		}
		shares = append(shares, model.DecisionShare{
			Decision: decision,
			Count:    count,
			Pct:      pct,
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Decision < shares[j].Decision
	})

	return shares
}

// AgencyCaseCounts ranks agencies by case volume, top 15.
func (a *Analyzer) AgencyCaseCounts(records []model.CleanRecord) []model.AgencyCaseCount {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.ViolationType]++
	}

	ranked := make([]model.AgencyCaseCount, 0, len(counts))
	for agency, count := range counts {
		ranked = append(ranked, model.AgencyCaseCount{Agency: agency, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Agency < ranked[j].Agency
	})

	return truncate(ranked, 15)
}

// AgencyOutstanding ranks agencies by unpaid balance, keeping only
// agencies with a positive balance, top 15.
func (a *Analyzer) AgencyOutstanding(records []model.CleanRecord) []model.AgencyOutstanding {
	type agg struct {
		sum   float64
		cases int
	}
	sums := make(map[string]*agg)
	for _, rec := range records {
		entry := sums[rec.ViolationType]
		if entry == nil {
			entry = &agg{}
			sums[rec.ViolationType] = entry
		}
		entry.sum += rec.Outstanding
		entry.cases++
	}

	ranked := make([]model.AgencyOutstanding, 0, len(sums))
	for agency, entry := range sums {
		if entry.sum <= 0 {
			continue
		}
		ranked = append(ranked, model.AgencyOutstanding{
			Agency:      agency,
			Outstanding: entry.sum,
			Cases:       entry.cases,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Outstanding != ranked[j].Outstanding {
			return ranked[i].Outstanding > ranked[j].Outstanding
		}
		return ranked[i].Agency < ranked[j].Agency
	})

	return truncate(ranked, 15)
}

// DecisionsByTopAgencies restricts the record set to the 10 agencies
// with the highest case counts and breaks their cases down by
// decision, ordered by agency then largest decision group first.
func (a *Analyzer) DecisionsByTopAgencies(records []model.CleanRecord) []model.AgencyDecisionCount {
	caseCounts := make(map[string]int)
	for _, rec := range records {
		caseCounts[rec.ViolationType]++
	}

	top := make([]model.AgencyCaseCount, 0, len(caseCounts))
	for agency, count := range caseCounts {
		top = append(top, model.AgencyCaseCount{Agency: agency, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Agency < top[j].Agency
	})
	top = truncate(top, 10)

	topSet := make(map[string]bool, len(top))
	for _, entry := range top {
		topSet[entry.Agency] = true
	}

	type key struct{ agency, decision string }
	counts := make(map[key]int)
	for _, rec := range records {
		if !topSet[rec.ViolationType] {
			continue
		}
		counts[key{rec.ViolationType, rec.Decision}]++
	}

	rows := make([]model.AgencyDecisionCount, 0, len(counts))
	for k, count := range counts {
		rows = append(rows, model.AgencyDecisionCount{
			Agency:   k.agency,
			Decision: k.decision,
			Count:    count,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Agency != rows[j].Agency {
			return rows[i].Agency < rows[j].Agency
		}
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Decision < rows[j].Decision
	})

	return rows
}

// truncate keeps at most n leading entries of a ranked slice
func truncate[T any](ranked []T, n int) []T {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
