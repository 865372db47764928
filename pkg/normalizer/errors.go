// pkg/normalizer/errors.go
package normalizer

import "fmt"

// MalformedAmountError reports a non-null, non-numeric value in a
// monetary field. The normalizer surfaces these to the caller rather
// than coercing them to zero; callers decide whether to skip the
// record or abort the run.
type MalformedAmountError struct {
	CaseID string
	Field  string
	Value  string
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("case %q: cannot parse %s value %q as an amount", e.CaseID, e.Field, e.Value)
}
