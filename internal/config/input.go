package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadScenarioFile loads a scenario from a YAML or JSON file and validates it
func (ip *InputParser) LoadScenarioFile(filename string) (domain.TaxScenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxScenario{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseScenario(data)
}

// ParseScenario decodes a YAML or JSON document (YAML is a superset) and
// validates it
func (ip *InputParser) ParseScenario(data []byte) (domain.TaxScenario, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.TaxScenario{}, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return ValidateScenario(raw)
}

// ParseScenarioJSON decodes a JSON request body, keeping numbers exact
func (ip *InputParser) ParseScenarioJSON(data []byte) (domain.TaxScenario, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	raw := map[string]any{}
	if err := dec.Decode(&raw); err != nil {
		return domain.TaxScenario{}, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	return ValidateScenario(raw)
}

// ValidateScenario normalizes a raw scenario map into a typed TaxScenario.
// All invalid and missing fields are collected into a single
// *domain.ValidationError.
func ValidateScenario(raw map[string]any) (domain.TaxScenario, error) {
	var (
		s      domain.TaxScenario
		errs   []domain.FieldError
		reject = func(field, reason string) {
			errs = append(errs, domain.FieldError{Field: field, Reason: reason})
		}
	)

	money := func(field string, required bool, dst *decimal.Decimal) {
		v, present := raw[field]
		if !present || v == nil {
			if required {
				reject(field, "is required")
			}
			return
		}
		d, ok := toDecimal(v)
		if !ok {
			reject(field, "must be numeric")
			return
		}
		if d.IsNegative() {
			reject(field, "must not be negative")
			return
		}
		*dst = d
	}
	flag := func(field string, dst *bool) {
		v, present := raw[field]
		if !present || v == nil {
			return
		}
		b, ok := v.(bool)
		if !ok {
			reject(field, "must be a boolean")
			return
		}
		*dst = b
	}

	money("income", true, &s.Income)

	if v, present := raw["filingStatus"]; !present || v == nil {
		reject("filingStatus", "is required")
	} else if str, ok := v.(string); !ok {
		reject("filingStatus", "must be a string")
	} else if fs, ok := domain.ParseFilingStatus(str); !ok {
		reject("filingStatus", fmt.Sprintf("%q is not one of single, marriedJoint, marriedSeparate, headOfHousehold", str))
	} else {
		s.FilingStatus = fs
	}

	money("deductions", false, &s.Deductions)

	if v, present := raw["dependents"]; present && v != nil {
		n, ok := toInt(v)
		switch {
		case !ok:
			reject("dependents", "must be an integer")
		case n < 0:
			reject("dependents", "must not be negative")
		default:
			s.Dependents = n
		}
	}

	flag("selfEmployed", &s.SelfEmployed)
	flag("homeOffice", &s.HomeOffice)
	money("businessExpenses", false, &s.BusinessExpenses)
	money("retirementContributions", false, &s.RetirementContributions)

	if len(errs) > 0 {
		return domain.TaxScenario{}, &domain.ValidationError{Fields: domain.SortFieldErrors(errs)}
	}
	return s, nil
}

// toDecimal accepts the numeric shapes produced by encoding/json and yaml.v3.
// Strings are rejected even when they look numeric.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromInt(int64(n)), true
	case uint8:
		return decimal.NewFromInt(int64(n)), true
	case uint16:
		return decimal.NewFromInt(int64(n)), true
	case uint32:
		return decimal.NewFromInt(int64(n)), true
	case uint64:
		if n > math.MaxInt64 {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(n)), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Zero, false
	}
}

// toInt accepts integer values, including whole floats from JSON
func toInt(v any) (int, bool) {
	d, ok := toDecimal(v)
	if !ok || !d.IsInteger() {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, false
	}
	return int(d.IntPart()), true
}
