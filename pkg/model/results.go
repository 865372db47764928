// pkg/model/results.go
package model

import "time"

// Result rows produced by the analyzer. Nullable figures are pointers
// so exports can distinguish "no revenue" from "rate undefined".

// DatasetProfile summarizes the raw dataset before normalization.
type DatasetProfile struct {
	RowCount       int
	NullCounts     map[string]int // field name -> null/blank count
	MinHearingDate *time.Time     // nil when every hearing_date is null
	MaxHearingDate *time.Time
	DuplicateCases []CaseCount // case_ids seen more than once, top 20 by count
}

// CaseCount is one case_id and how many rows carry it.
type CaseCount struct {
	CaseID string
	Count  int
}

// CollectionsSummary holds dataset-wide penalty and payment totals.
type CollectionsSummary struct {
	TotalDue          float64
	TotalPaid         float64
	TotalOutstanding  float64
	CollectionRatePct *float64 // nil when no positive amounts are due
}

// DecisionShare is one decision's share of all cases.
type DecisionShare struct {
	Decision string
	Count    int
	Pct      float64
}

// AgencyCaseCount is one agency's case volume.
type AgencyCaseCount struct {
	Agency string
	Count  int
}

// AgencyOutstanding is one agency's unpaid balance and case volume.
type AgencyOutstanding struct {
	Agency      string
	Outstanding float64
	Cases       int
}

// MonthlyCaseCount is the case volume for one hearing month.
type MonthlyCaseCount struct {
	Month time.Time // first day of the month
	Cases int
}

// MonthlyCollections is penalty and payment totals for one hearing month.
type MonthlyCollections struct {
	Month             time.Time
	Penalties         float64
	Paid              float64
	CollectionRatePct *float64 // nil when no penalties were imposed that month
}

// AgencyDecisionCount is a decision count within one agency.
type AgencyDecisionCount struct {
	Agency   string
	Decision string
	Count    int
}

// ConcentrationRow is one agency's rank and share of total outstanding
// balance. Rank follows standard competition ranking: ties share a
// rank and the next rank skips.
type ConcentrationRow struct {
	Rank        int
	Agency      string
	Outstanding float64
	PctOfTotal  *float64 // nil when the grand total is zero
}

// AmountDistribution holds descriptive statistics for a monetary field.
type AmountDistribution struct {
	Count   int
	Average float64
	Median  float64 // continuous percentile at the 0.5 quantile
	Max     float64
}
