package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilingStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want FilingStatus
		ok   bool
	}{
		{"single", FilingSingle, true},
		{"Single", FilingSingle, true},
		{"marriedJoint", FilingMarriedJoint, true},
		{"married_filing_jointly", FilingMarriedJoint, true},
		{"mfs", FilingMarriedSeparate, true},
		{"headOfHousehold", FilingHeadOfHousehold, true},
		{"widowed", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseFilingStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilingStatus_Next(t *testing.T) {
	fs := FilingSingle
	seen := []FilingStatus{}
	for range FilingStatuses {
		seen = append(seen, fs)
		fs = fs.Next()
	}
	assert.Equal(t, FilingStatuses, seen)
	assert.Equal(t, FilingSingle, fs, "cycles back to the start")
	assert.Equal(t, FilingSingle, FilingStatus("bogus").Next())
}

func TestTaxScenario_Validate(t *testing.T) {
	valid := TaxScenario{Income: decimal.NewFromInt(50000), FilingStatus: FilingSingle}
	assert.NoError(t, valid.Validate())

	bad := TaxScenario{
		Income:                  decimal.NewFromInt(-1),
		FilingStatus:            "widowed",
		Dependents:              -1,
		RetirementContributions: decimal.NewFromInt(-10),
	}
	err := bad.Validate()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"income", "filingStatus", "dependents", "retirementContributions"}, verr.FieldNames())
}

func TestSortFieldErrors(t *testing.T) {
	fields := SortFieldErrors([]FieldError{
		{Field: "extra"},
		{Field: "homeOffice"},
		{Field: "income"},
		{Field: "another"},
	})

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.Equal(t, []string{"income", "homeOffice", "extra", "another"}, names)
}

func TestPriority_Rank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, PriorityLow.Rank(), Priority("unknown").Rank())
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0, ClampConfidence(-5))
	assert.Equal(t, 42, ClampConfidence(42))
	assert.Equal(t, 100, ClampConfidence(101))
}

func TestAdvisoryResult_JSONNumbers(t *testing.T) {
	r := AdvisoryResult{
		Calculations: TaxComputationResult{
			FederalTax:    decimal.NewFromInt(9641),
			EffectiveRate: decimal.RequireFromString("23.12"),
		},
		Insights:      []Insight{},
		Optimizations: []Insight{},
		SkippedRules:  []string{},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"federalTax":9641`)
	assert.Contains(t, string(data), `"effectiveRate":23.12`)
	assert.Contains(t, string(data), `"aiConfidence":0`)
	assert.Contains(t, string(data), `"insights":[]`)
}

func TestJSONNumbers_LeaveDecimalDefaultAlone(t *testing.T) {
	assert.False(t, decimal.MarshalJSONWithoutQuotes)

	plain, err := json.Marshal(decimal.NewFromInt(330))
	require.NoError(t, err)
	assert.Equal(t, `"330"`, string(plain))

	data, err := json.Marshal(Insight{Rule: "home_office", ImpactAmount: decimal.NewFromInt(330)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"impactAmount":330`)
	assert.Contains(t, string(data), `"rule":"home_office"`)

	data, err = json.Marshal(TaxScenario{
		Income:       decimal.NewFromInt(85000),
		FilingStatus: FilingSingle,
		SelfEmployed: true,
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"income":85000`)
	assert.Contains(t, string(data), `"deductions":0`)
	assert.Contains(t, string(data), `"selfEmployed":true`)

	var back TaxScenario
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Income.Equal(decimal.NewFromInt(85000)))
	assert.Equal(t, FilingSingle, back.FilingStatus)
}
