// pkg/analyzer/concentration.go
package analyzer

import (
	"sort"

	"github.com/citydata/oath-analytics/pkg/model"
)

// OutstandingConcentration ranks every agency by its share of the
// total outstanding balance, largest first. Ranking is standard
// competition ranking: agencies with equal balances share a rank and
// the next rank skips accordingly. Shares are nil when the grand total
// is zero.
func (a *Analyzer) OutstandingConcentration(records []model.CleanRecord) []model.ConcentrationRow {
	sums := make(map[string]float64)
	var total float64
	for _, rec := range records {
		sums[rec.ViolationType] += rec.Outstanding
		total += rec.Outstanding
	}

	rows := make([]model.ConcentrationRow, 0, len(sums))
	for agency, sum := range sums {
		rows = append(rows, model.ConcentrationRow{
			Agency:      agency,
			Outstanding: sum,
			PctOfTotal:  ratioPct(sum, total),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Outstanding != rows[j].Outstanding {
			return rows[i].Outstanding > rows[j].Outstanding
		}
		return rows[i].Agency < rows[j].Agency
	})

	// Competition ranking over the sorted balances
	for i := range rows {
		if i > 0 && rows[i].Outstanding == rows[i-1].Outstanding {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}

	return rows
}
