// Package advisory is the single entry point of the tax advice engine. It
// chains the calculators, the rule-based advisor and the audit risk scorer
// and assembles an immutable AdvisoryResult.
//
// An Engine holds only immutable configuration and stateless rules, so one
// instance may serve any number of concurrent calls.
package advisory

import (
	"fmt"

	"github.com/rgehrsitz/taxadvisor/internal/advisor"
	"github.com/rgehrsitz/taxadvisor/internal/calculation"
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/risk"
)

// Engine orchestrates a full advisory computation for one tax year
type Engine struct {
	Config  *config.TaxYearConfig
	TaxCalc *calculation.ComprehensiveTaxCalculator
	Advisor *advisor.Advisor
	Scorer  *risk.Scorer
	Logger  calculation.Logger

	rules    []advisor.Rule
	rulesSet bool
}

// Option customizes an Engine at construction time
type Option func(*Engine)

// WithLogger sets the logger used by every stage
func WithLogger(l calculation.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// WithRules restricts the advisor to the given rules. With no rules the
// advisor produces no insights; omit the option to run every built-in rule.
func WithRules(rules ...advisor.Rule) Option {
	return func(e *Engine) {
		e.rules = rules
		e.rulesSet = true
	}
}

// NewEngine creates an engine bound to cfg
func NewEngine(cfg *config.TaxYearConfig, opts ...Option) *Engine {
	e := &Engine{Config: cfg, Logger: calculation.NopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	e.wire()
	return e
}

// NewDefaultEngine creates an engine for the embedded default tax year
func NewDefaultEngine(opts ...Option) (*Engine, error) {
	reg, err := config.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	cfg, err := reg.Get(config.DefaultTaxYear)
	if err != nil {
		return nil, err
	}
	return NewEngine(cfg, opts...), nil
}

// SetLogger replaces the logger; nil installs a no-op logger.
// Call before the engine is shared between goroutines.
func (e *Engine) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	e.Logger = l
	e.wire()
}

func (e *Engine) wire() {
	if e.Logger == nil {
		e.Logger = calculation.NopLogger{}
	}
	e.TaxCalc = calculation.NewComprehensiveTaxCalculator(e.Config, e.Logger)
	if e.rulesSet {
		e.Advisor = advisor.NewWithRules(e.Logger, e.rules)
	} else {
		e.Advisor = advisor.New(e.Logger)
	}
	e.Scorer = risk.NewScorer(e.Config.Risk)
}

// ComputeTaxAdvice runs the whole pipeline for a typed scenario
func (e *Engine) ComputeTaxAdvice(s domain.TaxScenario) (*domain.AdvisoryResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	calcs, brackets := e.TaxCalc.Calculate(s)
	e.Logger.Debugf("computed tax year=%d status=%s taxable=%s federal=%s se=%s marginal=%s",
		calcs.TaxYear, calcs.BracketStatus, calcs.TaxableIncome, calcs.FederalTax, calcs.SelfEmploymentTax, calcs.MarginalRate)

	insights, skipped := e.Advisor.Advise(advisor.Input{
		Scenario:   s,
		Result:     calcs,
		Brackets:   brackets,
		Config:     e.Config,
		Thresholds: e.Config.Advisor,
	})

	assessment := e.Scorer.Assess(s)

	return Assemble(calcs, insights, assessment, skipped), nil
}

// ComputeTaxAdviceRaw validates a raw scenario map and then computes advice
func (e *Engine) ComputeTaxAdviceRaw(raw map[string]any) (*domain.AdvisoryResult, error) {
	s, err := config.ValidateScenario(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return e.ComputeTaxAdvice(s)
}
