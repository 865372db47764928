// pkg/normalizer/amounts.go
package normalizer

import (
	"database/sql"
	"strconv"
	"strings"
)

// parseAmount coerces a monetary field to a float. Nulls and
// blank-after-trim values stay null. A leading currency sign and
// thousands separators are tolerated; anything else non-numeric is a
// MalformedAmountError.
func parseAmount(value sql.NullString, field, caseID string) (*float64, error) {
	if !value.Valid {
		return nil, nil
	}

	cleaned := strings.TrimSpace(value.String)
	if cleaned == "" {
		return nil, nil
	}

	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, &MalformedAmountError{
			CaseID: caseID,
			Field:  field,
			Value:  value.String,
		}
	}

	return &amount, nil
}
