package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
	limits    config.AdvisorThresholds
}

// TransformFactory is a function that creates a transform from parameters
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a registry with all built-in transforms. The
// thresholds supply defaults for max_retirement.
func NewTransformRegistry(limits config.AdvisorThresholds) *TransformRegistry {
	r := &TransformRegistry{
		factories: make(map[string]TransformFactory),
		limits:    limits,
	}

	r.Register("adjust_income", createAdjustIncome)
	r.Register("set_deductions", amountFactory("deductions"))
	r.Register("set_business_expenses", amountFactory("businessExpenses"))
	r.Register("set_retirement", amountFactory("retirementContributions"))
	r.Register("scale_business_expenses", createScaleBusinessExpenses)
	r.Register("max_retirement", r.createMaxRetirement)
	r.Register("set_filing_status", createSetFilingStatus)
	r.Register("set_home_office", boolFactory("set_home_office", func(v bool) ScenarioTransform { return &SetHomeOffice{Enabled: v} }))
	r.Register("set_self_employed", boolFactory("set_self_employed", func(v bool) ScenarioTransform { return &SetSelfEmployed{Enabled: v} }))

	return r
}

// Register adds a transform factory to the registry
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms, sorted
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name" or "transform_name:param1=value1,param2=value2"
// Example: "adjust_income:delta=-5000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

// ParseChain parses transform specs joined with "+", applied left to right.
// Example: "max_retirement+set_home_office:enabled=true"
func (r *TransformRegistry) ParseChain(chain string) ([]ScenarioTransform, error) {
	var transforms []ScenarioTransform
	for _, spec := range strings.Split(chain, "+") {
		if strings.TrimSpace(spec) == "" {
			return nil, fmt.Errorf("empty transform in chain %q", chain)
		}
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createAdjustIncome(params map[string]string) (ScenarioTransform, error) {
	delta, err := requireDecimal("adjust_income", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustIncome{Delta: delta}, nil
}

func amountFactory(field string) TransformFactory {
	return func(params map[string]string) (ScenarioTransform, error) {
		t := &SetAmount{Field: field}
		amount, err := requireDecimal(t.Name(), params, "amount")
		if err != nil {
			return nil, err
		}
		t.Amount = amount
		return t, nil
	}
}

func createScaleBusinessExpenses(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal("scale_business_expenses", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleBusinessExpenses{Factor: factor}, nil
}

func (r *TransformRegistry) createMaxRetirement(params map[string]string) (ScenarioTransform, error) {
	t := &MaxRetirementContribution{
		Limit:          r.limits.RetirementLimit,
		IncomeFraction: r.limits.RetirementIncomeFraction,
	}
	if _, ok := params["limit"]; ok {
		limit, err := requireDecimal("max_retirement", params, "limit")
		if err != nil {
			return nil, err
		}
		t.Limit = limit
	}
	return t, nil
}

func createSetFilingStatus(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["status"]
	if !ok {
		return nil, fmt.Errorf("set_filing_status requires 'status' parameter")
	}
	status, ok := domain.ParseFilingStatus(raw)
	if !ok {
		return nil, fmt.Errorf("invalid status value: %s", raw)
	}
	return &SetFilingStatus{Status: status}, nil
}

func boolFactory(name string, build func(bool) ScenarioTransform) TransformFactory {
	return func(params map[string]string) (ScenarioTransform, error) {
		raw, ok := params["enabled"]
		if !ok {
			return build(true), nil
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value for %s: %w", name, err)
		}
		return build(v), nil
	}
}
