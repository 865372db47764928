// pkg/socrata/values.go
package socrata

import (
	"database/sql"
	"strings"
	"time"
)

// dateFormats are the timestamp layouts the SODA feed uses for
// floating timestamps, most specific first.
var dateFormats = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// nullString maps an empty CSV cell to a SQL null
func nullString(cell string) sql.NullString {
	if strings.TrimSpace(cell) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: cell, Valid: true}
}

// nullDate parses a SODA floating timestamp, mapping empty or
// unparseable cells to null. Coercion of the analytic fields happens
// later in the normalizer; dates are coerced here because the store
// column is typed.
func nullDate(cell string) sql.NullTime {
	cleaned := strings.TrimSpace(cell)
	if cleaned == "" {
		return sql.NullTime{}
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return sql.NullTime{Time: t, Valid: true}
		}
	}

	return sql.NullTime{}
}
