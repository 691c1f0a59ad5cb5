package advisor

import (
	"fmt"

	"github.com/rgehrsitz/taxadvisor/internal/calculation"
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// Input is everything a rule may look at. Rules must treat it as read-only.
type Input struct {
	Scenario   domain.TaxScenario
	Result     domain.TaxComputationResult
	Brackets   config.BracketTable
	Config     *config.TaxYearConfig
	Thresholds config.AdvisorThresholds
}

// Rule is a single pure predicate+effect pair. Evaluate returns a nil insight
// when the rule does not fire, and an error wrapping domain.ErrRuleSkipped
// when its precondition cannot be evaluated.
type Rule interface {
	Name() string
	Evaluate(in Input) (*domain.Insight, error)
}

// RuleFunc adapts a plain function to the Rule interface
type RuleFunc struct {
	RuleName string
	Fn       func(in Input) (*domain.Insight, error)
}

func (r RuleFunc) Name() string { return r.RuleName }

func (r RuleFunc) Evaluate(in Input) (*domain.Insight, error) { return r.Fn(in) }

// Rule names
const (
	RuleHomeOffice       = "home_office"
	RuleRetirement       = "retirement_contribution"
	RuleQuarterly        = "quarterly_payments"
	RuleExpenseRatio     = "business_expense_ratio"
	RuleBracketProximity = "bracket_proximity"
)

// HomeOfficeRule flags self-employed filers with meaningful income who do not
// yet claim a home office
type HomeOfficeRule struct{}

func (HomeOfficeRule) Name() string { return RuleHomeOffice }

func (HomeOfficeRule) Evaluate(in Input) (*domain.Insight, error) {
	s, th := in.Scenario, in.Thresholds
	if !s.SelfEmployed || s.HomeOffice || !s.Income.GreaterThan(th.HomeOfficeMinIncome) {
		return nil, nil
	}
	deduction := decimal.Min(th.HomeOfficeMaxDeduction, s.Income.Mul(th.HomeOfficeIncomeFraction))
	impact := deduction.Mul(in.Result.MarginalRate)

	return &domain.Insight{
		Type:  domain.InsightOptimization,
		Title: "Home office deduction opportunity",
		Description: fmt.Sprintf(
			"You are self-employed but not claiming a home office. The simplified method allows up to $%s; at your %s%% marginal rate that saves about $%s.",
			deduction.StringFixed(0), percent(in.Result.MarginalRate), impact.StringFixed(2)),
		ImpactAmount:      impact,
		ConfidencePercent: th.HomeOfficeConfidence,
		ActionRequired:    true,
		Priority:          domain.PriorityHigh,
		Category:          "deductions",
	}, nil
}

// RetirementRule suggests additional pre-tax retirement contributions
type RetirementRule struct{}

func (RetirementRule) Name() string { return RuleRetirement }

func (RetirementRule) Evaluate(in Input) (*domain.Insight, error) {
	s, th := in.Scenario, in.Thresholds
	maxContribution := decimal.Min(th.RetirementLimit, s.Income.Mul(th.RetirementIncomeFraction))
	if !s.RetirementContributions.LessThan(maxContribution) {
		return nil, nil
	}
	additional := decimal.Min(maxContribution.Sub(s.RetirementContributions), th.RetirementMaxAdditional)
	impact := additional.Mul(in.Result.MarginalRate)

	return &domain.Insight{
		Type:  domain.InsightOptimization,
		Title: "Increase retirement contributions",
		Description: fmt.Sprintf(
			"Contributing another $%s pre-tax (room up to $%s) would lower taxable income and save about $%s.",
			additional.StringFixed(0), maxContribution.StringFixed(0), impact.StringFixed(2)),
		ImpactAmount:      impact,
		ConfidencePercent: th.RetirementConfidence,
		ActionRequired:    false,
		Priority:          domain.PriorityMedium,
		Category:          "retirement",
	}, nil
}

// QuarterlyPaymentRule reminds self-employed filers about estimated payments
type QuarterlyPaymentRule struct{}

func (QuarterlyPaymentRule) Name() string { return RuleQuarterly }

func (QuarterlyPaymentRule) Evaluate(in Input) (*domain.Insight, error) {
	if !in.Scenario.SelfEmployed {
		return nil, nil
	}
	periods := in.Thresholds.QuarterlyPeriods
	if periods <= 0 {
		return nil, fmt.Errorf("quarterly periods %d: %w", periods, domain.ErrRuleSkipped)
	}
	quarterly := in.Result.FederalTax.Div(decimal.NewFromInt(periods)).Round(0)

	return &domain.Insight{
		Type:  domain.InsightPlanning,
		Title: "Plan quarterly estimated payments",
		Description: fmt.Sprintf(
			"Self-employment income has no withholding. Schedule estimated federal payments of about $%s per quarter to avoid underpayment penalties.",
			quarterly.StringFixed(0)),
		ImpactAmount:      decimal.Zero,
		ConfidencePercent: in.Thresholds.QuarterlyConfidence,
		ActionRequired:    true,
		Priority:          domain.PriorityHigh,
		Category:          "planning",
	}, nil
}

// ExpenseRatioRule warns when business expenses are large relative to income
type ExpenseRatioRule struct{}

func (ExpenseRatioRule) Name() string { return RuleExpenseRatio }

func (ExpenseRatioRule) Evaluate(in Input) (*domain.Insight, error) {
	s, th := in.Scenario, in.Thresholds
	limit := s.Income.Mul(th.ExpenseRatioWarning)
	if !s.BusinessExpenses.GreaterThan(limit) {
		return nil, nil
	}

	return &domain.Insight{
		Type:  domain.InsightWarning,
		Title: "High business expense ratio",
		Description: fmt.Sprintf(
			"Business expenses of $%s exceed %s%% of income. Ratios this high draw scrutiny; keep documentation for every deduction.",
			s.BusinessExpenses.StringFixed(0), percent(th.ExpenseRatioWarning)),
		ImpactAmount:      decimal.Zero,
		ConfidencePercent: th.ExpenseRatioConfidence,
		ActionRequired:    true,
		Priority:          domain.PriorityMedium,
		Category:          "compliance",
	}, nil
}

// BracketProximityRule notices income sitting just below the next bracket
type BracketProximityRule struct{}

func (BracketProximityRule) Name() string { return RuleBracketProximity }

func (BracketProximityRule) Evaluate(in Input) (*domain.Insight, error) {
	s, th := in.Scenario, in.Thresholds
	if in.Config != nil && !in.Config.HasTable(s.FilingStatus) {
		return nil, fmt.Errorf("no bracket table for filing status %q: %w", s.FilingStatus, domain.ErrRuleSkipped)
	}
	if len(in.Brackets) == 0 {
		return nil, fmt.Errorf("empty bracket table: %w", domain.ErrRuleSkipped)
	}

	next, ok := calculation.NextThreshold(s.Income, in.Brackets)
	if !ok {
		return nil, nil
	}
	gap := next.Sub(s.Income)
	if !gap.IsPositive() || !gap.LessThan(th.BracketProximityGap) {
		return nil, nil
	}
	impact := gap.Mul(th.BracketProximityImpactRate)

	return &domain.Insight{
		Type:  domain.InsightPlanning,
		Title: "Close to the next tax bracket",
		Description: fmt.Sprintf(
			"Income is $%s below the $%s bracket threshold. Timing income or deductions could keep the next dollars in the lower bracket.",
			gap.StringFixed(0), next.StringFixed(0)),
		ImpactAmount:      impact,
		ConfidencePercent: th.BracketProximityConfidence,
		ActionRequired:    false,
		Priority:          domain.PriorityLow,
		Category:          "planning",
	}, nil
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}
