// pkg/normalizer/normalizer_test.go
package normalizer

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/citydata/oath-analytics/pkg/model"
)

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestNormalizeViolationType(t *testing.T) {
	tests := []struct {
		name  string
		input sql.NullString
		want  string
	}{
		{"lowercase tlc tag", ns("taxi_tlc"), "TLC"},
		{"uppercase tlc tag", ns("TAXI_TLC"), "TLC"},
		{"padded tlc tag", ns("  TAXI_TLC  "), "TLC"},
		{"port authority tag", ns("Taxi_Port Authority"), "PORT AUTHORITY"},
		{"dohmh prefix", ns("DOHMH-RESTAURANT"), "DOHMH"},
		{"dohmh prefix lowercase", ns("dohmh food unit"), "DOHMH"},
		{"null", sql.NullString{}, Unknown},
		{"blank", ns("   "), Unknown},
		{"passthrough keeps case", ns("  Sanitation Others  "), "Sanitation Others"},
		{"canonical tag is a fixed point", ns("TLC"), "TLC"},
	}

	norm := NewNormalizer(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := norm.Normalize(model.RawRecord{ViolationType: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.want, clean.ViolationType)
		})
	}
}

func TestNormalizeDecision(t *testing.T) {
	tests := []struct {
		name  string
		input sql.NullString
		want  string
	}{
		{"dismissed", ns("dismissed"), "DISMISSED"},
		{"plain default", ns("DEFAULT"), "DEFAULT"},
		{"default no appearance", ns("Default/No Appearance"), "DEFAULT"},
		{"default spaced slash", ns("default/ no appearance"), "DEFAULT"},
		{"default dashed", ns("DEFAULT - NO APPEARANCE"), "DEFAULT"},
		{"in violation", ns("In Violation"), "SUSTAINED"},
		{"sustained", ns("SUSTAINED"), "SUSTAINED"},
		{"null", sql.NullString{}, Unknown},
		{"blank", ns(""), Unknown},
		{"fallback upper-cases", ns("  Stipulated  "), "STIPULATED"},
		{"canonical tag is a fixed point", ns("DEFAULT"), "DEFAULT"},
	}

	norm := NewNormalizer(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := norm.Normalize(model.RawRecord{Decision: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.want, clean.Decision)
		})
	}
}

func TestNormalizeAmounts(t *testing.T) {
	norm := NewNormalizer(zap.NewNop())

	t.Run("outstanding with null paid", func(t *testing.T) {
		clean, err := norm.Normalize(model.RawRecord{AmountDue: ns("100")})
		require.NoError(t, err)
		require.NotNil(t, clean.AmountDue)
		assert.Equal(t, 100.0, *clean.AmountDue)
		assert.Nil(t, clean.AmountPaid)
		assert.Equal(t, 100.0, clean.Outstanding)
	})

	t.Run("outstanding with both null", func(t *testing.T) {
		clean, err := norm.Normalize(model.RawRecord{})
		require.NoError(t, err)
		assert.Nil(t, clean.AmountDue)
		assert.Nil(t, clean.AmountPaid)
		assert.Equal(t, 0.0, clean.Outstanding)
	})

	t.Run("outstanding subtracts paid", func(t *testing.T) {
		clean, err := norm.Normalize(model.RawRecord{
			AmountDue:  ns("250.50"),
			AmountPaid: ns("100.25"),
		})
		require.NoError(t, err)
		assert.Equal(t, 150.25, clean.Outstanding)
	})

	t.Run("currency formatting tolerated", func(t *testing.T) {
		clean, err := norm.Normalize(model.RawRecord{AmountDue: ns("$1,234.50")})
		require.NoError(t, err)
		require.NotNil(t, clean.AmountDue)
		assert.Equal(t, 1234.50, *clean.AmountDue)
	})

	t.Run("blank amount stays null", func(t *testing.T) {
		clean, err := norm.Normalize(model.RawRecord{AmountPaid: ns("  ")})
		require.NoError(t, err)
		assert.Nil(t, clean.AmountPaid)
	})

	t.Run("malformed amount is surfaced", func(t *testing.T) {
		_, err := norm.Normalize(model.RawRecord{
			CaseID:    ns("12345"),
			AmountDue: ns("waived"),
		})
		require.Error(t, err)

		var malformed *MalformedAmountError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "12345", malformed.CaseID)
		assert.Equal(t, "amount_due", malformed.Field)
		assert.Equal(t, "waived", malformed.Value)
	})
}

func TestNormalizePassthroughFields(t *testing.T) {
	norm := NewNormalizer(zap.NewNop())

	hearing := time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)
	clean, err := norm.Normalize(model.RawRecord{
		CaseID:      ns("ABC-1"),
		HearingDate: sql.NullTime{Time: hearing, Valid: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC-1", clean.CaseID)
	require.NotNil(t, clean.HearingDate)
	assert.Equal(t, hearing, *clean.HearingDate)

	clean, err = norm.Normalize(model.RawRecord{})
	require.NoError(t, err)
	assert.Empty(t, clean.CaseID)
	assert.Nil(t, clean.HearingDate)
}

func TestNormalizeAll(t *testing.T) {
	norm := NewNormalizer(zap.NewNop())

	records := []model.RawRecord{
		{CaseID: ns("1"), AmountDue: ns("10")},
		{CaseID: ns("2"), AmountDue: ns("not-a-number")},
		{CaseID: ns("3"), AmountDue: ns("30")},
	}

	t.Run("strict aborts on first malformed amount", func(t *testing.T) {
		_, err := norm.NormalizeAll(records)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record 1")
	})

	t.Run("skip policy keeps the rest", func(t *testing.T) {
		clean, skipped := norm.NormalizeAllSkipMalformed(records)
		require.Len(t, clean, 2)
		require.Len(t, skipped, 1)
		assert.Equal(t, "1", clean[0].CaseID)
		assert.Equal(t, "3", clean[1].CaseID)

		var malformed *MalformedAmountError
		assert.True(t, errors.As(skipped[0], &malformed))
	})

	t.Run("every raw row yields one clean row", func(t *testing.T) {
		// Fully-null rows are kept, not filtered
		clean, err := norm.NormalizeAll([]model.RawRecord{{}, {}, {}})
		require.NoError(t, err)
		assert.Len(t, clean, 3)
	})
}
