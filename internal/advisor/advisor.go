// Package advisor turns a computed tax scenario into ranked optimization,
// warning and planning insights. Each rule is independent and pure; a rule
// that cannot run is skipped without affecting the others.
package advisor

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/rgehrsitz/taxadvisor/internal/calculation"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

// insightNamespace seeds the deterministic insight IDs
var insightNamespace = uuid.MustParse("6f1c7a52-3d0e-5b8a-9c41-2e7d5a90b318")

// InsightID derives a stable ID from the rule name and tax year, so identical
// inputs always produce identical output
func InsightID(rule string, taxYear int) string {
	return uuid.NewSHA1(insightNamespace, []byte(rule+"/"+strconv.Itoa(taxYear))).String()
}

// Advisor evaluates an ordered list of rules
type Advisor struct {
	rules  []Rule
	logger calculation.Logger
}

// New creates an advisor. With no rules the default rule set is used.
func New(logger calculation.Logger, rules ...Rule) *Advisor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return NewWithRules(logger, rules)
}

// NewWithRules creates an advisor that evaluates exactly the given rules,
// none at all when the slice is empty
func NewWithRules(logger calculation.Logger, rules []Rule) *Advisor {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Advisor{rules: append([]Rule(nil), rules...), logger: logger}
}

// Rules returns the rule names in evaluation order
func (a *Advisor) Rules() []string {
	names := make([]string, 0, len(a.rules))
	for _, r := range a.rules {
		names = append(names, r.Name())
	}
	return names
}

// Advise runs every rule and returns the ranked insights along with the names
// of rules that were skipped
func (a *Advisor) Advise(in Input) (insights []domain.Insight, skipped []string) {
	insights = []domain.Insight{}
	skipped = []string{}

	for _, rule := range a.rules {
		insight, err := a.evaluate(rule, in)
		if err != nil {
			a.logger.Warnf("rule evaluation skipped: rule=%s reason=%v", rule.Name(), err)
			skipped = append(skipped, rule.Name())
			continue
		}
		if insight == nil {
			a.logger.Debugf("rule %s did not fire", rule.Name())
			continue
		}

		out := *insight
		out.Rule = rule.Name()
		out.ID = InsightID(rule.Name(), in.Result.TaxYear)
		out.ConfidencePercent = domain.ClampConfidence(out.ConfidencePercent)
		out.ImpactAmount = out.ImpactAmount.Round(2)
		insights = append(insights, out)
	}

	Rank(insights)
	return insights, skipped
}

// evaluate runs one rule, converting panics into skips
func (a *Advisor) evaluate(rule Rule, in Input) (insight *domain.Insight, err error) {
	defer func() {
		if r := recover(); r != nil {
			insight = nil
			err = fmt.Errorf("panic: %v: %w", r, domain.ErrRuleSkipped)
		}
	}()

	insight, err = rule.Evaluate(in)
	if err != nil && !errors.Is(err, domain.ErrRuleSkipped) {
		err = fmt.Errorf("%v: %w", err, domain.ErrRuleSkipped)
	}
	return insight, err
}

// Rank orders insights by priority (high first), then impact descending.
// Ties keep rule evaluation order.
func Rank(insights []domain.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		pi, pj := insights[i].Priority.Rank(), insights[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		return insights[i].ImpactAmount.GreaterThan(insights[j].ImpactAmount)
	})
}

// Optimizations filters the insights of type optimization, preserving order
func Optimizations(insights []domain.Insight) []domain.Insight {
	out := []domain.Insight{}
	for _, in := range insights {
		if in.Type == domain.InsightOptimization {
			out = append(out, in)
		}
	}
	return out
}
