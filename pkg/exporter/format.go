// pkg/exporter/format.go
package exporter

import (
	"strconv"
	"time"

	"github.com/citydata/oath-analytics/pkg/model"
)

// ResultSet is one exportable table: a header row plus records.
type ResultSet struct {
	Name    string
	Headers []string
	Records [][]string
}

// Formatting conventions: amounts with two decimals, dates as
// 2006-01-02, months as 2006-01. Null figures render as empty cells so
// a missing rate is distinguishable from a zero rate.

// ProfileResultSets renders the dataset profile as two result sets:
// field null counts and duplicate case ids.
func ProfileResultSets(profile model.DatasetProfile) []ResultSet {
	nullFields := []string{
		"case_id", "hearing_date", "violation_type",
		"decision", "amount_due", "amount_paid",
	}
	nullRows := make([][]string, 0, len(nullFields))
	for _, field := range nullFields {
		nullRows = append(nullRows, []string{field, strconv.Itoa(profile.NullCounts[field])})
	}

	dupRows := make([][]string, 0, len(profile.DuplicateCases))
	for _, dup := range profile.DuplicateCases {
		dupRows = append(dupRows, []string{dup.CaseID, strconv.Itoa(dup.Count)})
	}

	return []ResultSet{
		{
			Name:    "profile_null_counts",
			Headers: []string{"field", "null_count"},
			Records: nullRows,
		},
		{
			Name:    "profile_duplicate_cases",
			Headers: []string{"case_id", "occurrences"},
			Records: dupRows,
		},
	}
}

// CollectionsResultSet renders the collections summary as a single-row table
func CollectionsResultSet(summary model.CollectionsSummary) ResultSet {
	return ResultSet{
		Name:    "collections_summary",
		Headers: []string{"total_due", "total_paid", "total_outstanding", "collection_rate_pct"},
		Records: [][]string{{
			formatAmount(summary.TotalDue),
			formatAmount(summary.TotalPaid),
			formatAmount(summary.TotalOutstanding),
			formatNullable(summary.CollectionRatePct),
		}},
	}
}

// DecisionMixResultSet renders the decision distribution
func DecisionMixResultSet(shares []model.DecisionShare) ResultSet {
	records := make([][]string, 0, len(shares))
	for _, share := range shares {
		records = append(records, []string{
			share.Decision,
			strconv.Itoa(share.Count),
			formatAmount(share.Pct),
		})
	}
	return ResultSet{
		Name:    "decision_mix",
		Headers: []string{"decision", "cases", "pct"},
		Records: records,
	}
}

// AgencyCaseCountResultSet renders the agency case-volume ranking
func AgencyCaseCountResultSet(counts []model.AgencyCaseCount) ResultSet {
	records := make([][]string, 0, len(counts))
	for _, entry := range counts {
		records = append(records, []string{entry.Agency, strconv.Itoa(entry.Count)})
	}
	return ResultSet{
		Name:    "agency_case_counts",
		Headers: []string{"agency", "cases"},
		Records: records,
	}
}

// AgencyOutstandingResultSet renders the agency outstanding-balance ranking
func AgencyOutstandingResultSet(ranking []model.AgencyOutstanding) ResultSet {
	records := make([][]string, 0, len(ranking))
	for _, entry := range ranking {
		records = append(records, []string{
			entry.Agency,
			formatAmount(entry.Outstanding),
			strconv.Itoa(entry.Cases),
		})
	}
	return ResultSet{
		Name:    "agency_outstanding",
		Headers: []string{"agency", "outstanding", "cases"},
		Records: records,
	}
}

// MonthlyCaseCountResultSet renders the monthly case-volume series
func MonthlyCaseCountResultSet(series []model.MonthlyCaseCount) ResultSet {
	records := make([][]string, 0, len(series))
	for _, entry := range series {
		records = append(records, []string{formatMonth(entry.Month), strconv.Itoa(entry.Cases)})
	}
	return ResultSet{
		Name:    "monthly_case_counts",
		Headers: []string{"month", "cases"},
		Records: records,
	}
}

// MonthlyCollectionsResultSet renders the monthly collections series
func MonthlyCollectionsResultSet(series []model.MonthlyCollections) ResultSet {
	records := make([][]string, 0, len(series))
	for _, entry := range series {
		records = append(records, []string{
			formatMonth(entry.Month),
			formatAmount(entry.Penalties),
			formatAmount(entry.Paid),
			formatNullable(entry.CollectionRatePct),
		})
	}
	return ResultSet{
		Name:    "monthly_collections",
		Headers: []string{"month", "penalties", "paid", "collection_rate_pct"},
		Records: records,
	}
}

// AgencyDecisionResultSet renders decision counts for the top agencies
func AgencyDecisionResultSet(rows []model.AgencyDecisionCount) ResultSet {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{row.Agency, row.Decision, strconv.Itoa(row.Count)})
	}
	return ResultSet{
		Name:    "decisions_by_top_agencies",
		Headers: []string{"agency", "decision", "cases"},
		Records: records,
	}
}

// ConcentrationResultSet renders the outstanding-balance concentration ranking
func ConcentrationResultSet(rows []model.ConcentrationRow) ResultSet {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.Itoa(row.Rank),
			row.Agency,
			formatAmount(row.Outstanding),
			formatNullable(row.PctOfTotal),
		})
	}
	return ResultSet{
		Name:    "outstanding_concentration",
		Headers: []string{"rank", "agency", "outstanding", "pct_of_total"},
		Records: records,
	}
}

// DistributionResultSet renders one distribution summary as a single-row table
func DistributionResultSet(name string, dist model.AmountDistribution) ResultSet {
	return ResultSet{
		Name:    name,
		Headers: []string{"count", "average", "median", "max"},
		Records: [][]string{{
			strconv.Itoa(dist.Count),
			formatAmount(dist.Average),
			formatAmount(dist.Median),
			formatAmount(dist.Max),
		}},
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return formatAmount(*v)
}

func formatMonth(t time.Time) string {
	return t.Format("2006-01")
}
