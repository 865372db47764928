// pkg/normalizer/rules.go
package normalizer

import (
	"database/sql"
	"strings"
)

// Unknown is the canonical tag for null or blank categorical values.
const Unknown = "UNKNOWN"

// categoryRule pairs a predicate with the output it produces. Rules
// are evaluated top to bottom over the trimmed input; first match
// wins. Matching is case-insensitive.
type categoryRule struct {
	match  func(string) bool
	output string
}

// violationRules canonicalize issuing-agency tags.
var violationRules = []categoryRule{
	{equalsFold("TAXI_TLC"), "TLC"},
	{equalsFold("TAXI_PORT AUTHORITY"), "PORT AUTHORITY"},
	{prefixFold("DOHMH"), "DOHMH"},
}

// decisionRules canonicalize hearing-outcome labels. The default
// variants all come from the source feed's inconsistent data entry.
var decisionRules = []categoryRule{
	{equalsFold("DISMISSED"), "DISMISSED"},
	{equalsFold(
		"DEFAULT",
		"DEFAULT/ NO APPEARANCE",
		"DEFAULT/NO APPEARANCE",
		"DEFAULT - NO APPEARANCE",
	), "DEFAULT"},
	{equalsFold("IN VIOLATION", "SUSTAINED"), "SUSTAINED"},
}

// equalsFold matches any of the given literals, case-insensitively
func equalsFold(literals ...string) func(string) bool {
	return func(s string) bool {
		for _, lit := range literals {
			if strings.EqualFold(s, lit) {
				return true
			}
		}
		return false
	}
}

// prefixFold matches values starting with the given prefix, case-insensitively
func prefixFold(prefix string) func(string) bool {
	upper := strings.ToUpper(prefix)
	return func(s string) bool {
		return strings.HasPrefix(strings.ToUpper(s), upper)
	}
}

// canonicalize resolves a categorical value against an ordered rule
// list. Null or blank-after-trim values resolve to Unknown; unmatched
// values resolve through fallback. Every input terminates in a defined
// output, so canonicalization never fails.
func canonicalize(value sql.NullString, rules []categoryRule, fallback func(string) string) string {
	if !value.Valid {
		return Unknown
	}

	trimmed := strings.TrimSpace(value.String)
	if trimmed == "" {
		return Unknown
	}

	for _, rule := range rules {
		if rule.match(trimmed) {
			return rule.output
		}
	}

	return fallback(trimmed)
}
