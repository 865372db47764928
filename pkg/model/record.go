// pkg/model/record.go
package model

import (
	"database/sql"
	"time"
)

// RawRecord is one adjudication case exactly as stored in oath_cases.
// Every field may be null; case IDs are not guaranteed unique. Penalty
// amounts are kept as strings because the source feed mixes numeric
// and free-text values, and coercion failures must surface during
// normalization rather than at scan time.
type RawRecord struct {
	CaseID        sql.NullString `db:"case_id"`
	HearingDate   sql.NullTime   `db:"hearing_date"`
	ViolationType sql.NullString `db:"violation_type"`
	Decision      sql.NullString `db:"decision"`
	AmountDue     sql.NullString `db:"amount_due"`
	AmountPaid    sql.NullString `db:"amount_paid"`
}

// CleanRecord is the normalized, one-to-one view of a RawRecord. It is
// recomputed on every read and never persisted.
type CleanRecord struct {
	CaseID        string     // empty when the source ID is null
	HearingDate   *time.Time // nil preserved from the source
	ViolationType string     // canonical agency tag, passthrough text, or UNKNOWN
	Decision      string     // canonical outcome tag, upper-cased text, or UNKNOWN
	AmountDue     *float64   // nil preserved from the source
	AmountPaid    *float64   // nil preserved from the source
	Outstanding   float64    // due minus paid, nulls treated as zero
}

// DueOrZero returns the due amount with null treated as zero.
func (c CleanRecord) DueOrZero() float64 {
	if c.AmountDue == nil {
		return 0
	}
	return *c.AmountDue
}

// PaidOrZero returns the paid amount with null treated as zero.
func (c CleanRecord) PaidOrZero() float64 {
	if c.AmountPaid == nil {
		return 0
	}
	return *c.AmountPaid
}
