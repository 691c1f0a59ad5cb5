package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRuleSkipped marks an advisor rule whose precondition could not be
// evaluated. It is never surfaced to callers; the rule is omitted instead.
var ErrRuleSkipped = errors.New("rule evaluation skipped")

// ScenarioFields is the declaration order of TaxScenario input keys.
// Validation errors are reported in this order.
var ScenarioFields = []string{
	"income",
	"filingStatus",
	"deductions",
	"dependents",
	"selfEmployed",
	"homeOffice",
	"businessExpenses",
	"retirementContributions",
}

// FieldError describes one invalid or missing scenario field
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (fe FieldError) String() string {
	return fmt.Sprintf("%s %s", fe.Field, fe.Reason)
}

// ValidationError is returned when a scenario is malformed. It names every
// offending field so the caller can report them all at once.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		parts = append(parts, f.String())
	}
	return "invalid scenario: " + strings.Join(parts, "; ")
}

// FieldNames returns the offending field names in report order
func (ve *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		names = append(names, f.Field)
	}
	return names
}

// SortFieldErrors orders field errors by ScenarioFields; unknown names go last
// in their original order.
func SortFieldErrors(fields []FieldError) []FieldError {
	rank := make(map[string]int, len(ScenarioFields))
	for i, name := range ScenarioFields {
		rank[name] = i
	}
	position := func(name string) int {
		if r, ok := rank[name]; ok {
			return r
		}
		return len(ScenarioFields)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return position(fields[i].Field) < position(fields[j].Field)
	})
	return fields
}
