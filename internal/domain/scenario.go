package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status a scenario is taxed under
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "marriedJoint"
	FilingMarriedSeparate FilingStatus = "marriedSeparate"
	FilingHeadOfHousehold FilingStatus = "headOfHousehold"
)

// FilingStatuses lists the recognized statuses in display order
var FilingStatuses = []FilingStatus{
	FilingSingle,
	FilingMarriedJoint,
	FilingMarriedSeparate,
	FilingHeadOfHousehold,
}

// filingStatusAliases maps the spellings used by upstream forms onto the canonical values
var filingStatusAliases = map[string]FilingStatus{
	"single":                    FilingSingle,
	"marriedjoint":              FilingMarriedJoint,
	"married_joint":             FilingMarriedJoint,
	"married_filing_jointly":    FilingMarriedJoint,
	"mfj":                       FilingMarriedJoint,
	"marriedseparate":           FilingMarriedSeparate,
	"married_separate":          FilingMarriedSeparate,
	"married_filing_separately": FilingMarriedSeparate,
	"mfs":                       FilingMarriedSeparate,
	"headofhousehold":           FilingHeadOfHousehold,
	"head_of_household":         FilingHeadOfHousehold,
	"hoh":                       FilingHeadOfHousehold,
}

// ParseFilingStatus resolves a raw filing status string, returning false when
// the value is not one of the four recognized statuses
func ParseFilingStatus(raw string) (FilingStatus, bool) {
	fs, ok := filingStatusAliases[strings.ToLower(strings.TrimSpace(raw))]
	return fs, ok
}

// Valid reports whether fs is one of the recognized statuses
func (fs FilingStatus) Valid() bool {
	for _, s := range FilingStatuses {
		if fs == s {
			return true
		}
	}
	return false
}

// Next cycles to the following status (used by interactive editors)
func (fs FilingStatus) Next() FilingStatus {
	for i, s := range FilingStatuses {
		if fs == s {
			return FilingStatuses[(i+1)%len(FilingStatuses)]
		}
	}
	return FilingSingle
}

// TaxScenario is the normalized, fully-typed input to the advisory engine.
// It is treated as immutable for the lifetime of a request.
type TaxScenario struct {
	Income                  decimal.Decimal `yaml:"income" json:"income"`
	FilingStatus            FilingStatus    `yaml:"filingStatus" json:"filingStatus"`
	Deductions              decimal.Decimal `yaml:"deductions" json:"deductions"`
	Dependents              int             `yaml:"dependents" json:"dependents"`
	SelfEmployed            bool            `yaml:"selfEmployed" json:"selfEmployed"`
	HomeOffice              bool            `yaml:"homeOffice" json:"homeOffice"`
	BusinessExpenses        decimal.Decimal `yaml:"businessExpenses" json:"businessExpenses"`
	RetirementContributions decimal.Decimal `yaml:"retirementContributions" json:"retirementContributions"`
}

func (s TaxScenario) MarshalJSON() ([]byte, error) {
	type plain TaxScenario
	return json.Marshal(struct {
		plain
		Income                  json.Number `json:"income"`
		Deductions              json.Number `json:"deductions"`
		BusinessExpenses        json.Number `json:"businessExpenses"`
		RetirementContributions json.Number `json:"retirementContributions"`
	}{
		plain:                   plain(s),
		Income:                  Number(s.Income),
		Deductions:              Number(s.Deductions),
		BusinessExpenses:        Number(s.BusinessExpenses),
		RetirementContributions: Number(s.RetirementContributions),
	})
}

// Validate checks an already-typed scenario. Every offending field is reported.
func (s TaxScenario) Validate() error {
	var fields []FieldError
	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{"income", s.Income},
		{"deductions", s.Deductions},
		{"businessExpenses", s.BusinessExpenses},
		{"retirementContributions", s.RetirementContributions},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			fields = append(fields, FieldError{Field: f.name, Reason: "must not be negative"})
		}
	}
	if !s.FilingStatus.Valid() {
		fields = append(fields, FieldError{Field: "filingStatus", Reason: "must be one of single, marriedJoint, marriedSeparate, headOfHousehold"})
	}
	if s.Dependents < 0 {
		fields = append(fields, FieldError{Field: "dependents", Reason: "must not be negative"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: SortFieldErrors(fields)}
	}
	return nil
}
