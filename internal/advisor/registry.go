package advisor

import (
	"fmt"
	"sort"
	"strings"
)

// RuleFactory creates a rule instance
type RuleFactory func() Rule

// Registry maps rule names to factories so callers can choose a subset of
// rules by name (e.g. from a CLI flag)
type Registry struct {
	factories map[string]RuleFactory
	order     []string
}

// NewRegistry creates a registry with all built-in rules registered in their
// default evaluation order
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]RuleFactory)}

	r.Register(RuleHomeOffice, func() Rule { return HomeOfficeRule{} })
	r.Register(RuleRetirement, func() Rule { return RetirementRule{} })
	r.Register(RuleQuarterly, func() Rule { return QuarterlyPaymentRule{} })
	r.Register(RuleExpenseRatio, func() Rule { return ExpenseRatioRule{} })
	r.Register(RuleBracketProximity, func() Rule { return BracketProximityRule{} })

	return r
}

// Register adds or replaces a rule factory
func (r *Registry) Register(name string, factory RuleFactory) {
	if _, exists := r.factories[name]; !exists {
		r.order = append(r.order, name)
	}
	r.factories[name] = factory
}

// Create builds a rule by name
func (r *Registry) Create(name string) (Rule, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule: %s (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return factory(), nil
}

// CreateAll builds the named rules in registration order, ignoring the order
// the names were given in
func (r *Registry) CreateAll(names []string) ([]Rule, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := r.factories[n]; !ok {
			return nil, fmt.Errorf("unknown rule: %s (available: %s)", n, strings.Join(r.List(), ", "))
		}
		wanted[n] = true
	}
	rules := make([]Rule, 0, len(wanted))
	for _, name := range r.order {
		if wanted[name] {
			rules = append(rules, r.factories[name]())
		}
	}
	return rules, nil
}

// List returns the registered names sorted alphabetically
func (r *Registry) List() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Ordered returns the registered names in evaluation order
func (r *Registry) Ordered() []string {
	return append([]string(nil), r.order...)
}

// DefaultRules returns every built-in rule in evaluation order
func DefaultRules() []Rule {
	reg := NewRegistry()
	rules := make([]Rule, 0, len(reg.order))
	for _, name := range reg.order {
		rules = append(rules, reg.factories[name]())
	}
	return rules
}
