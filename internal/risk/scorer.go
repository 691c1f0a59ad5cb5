// Package risk scores audit exposure with a small weighted heuristic.
package risk

import (
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

// Risk factor names, reported in this order
const (
	FactorHighExpenseRatio = "high_business_expense_ratio"
	FactorHighIncome       = "high_income"
	FactorSelfEmployment   = "self_employment"
)

// recommendations is the fixed factor -> mitigation lookup
var recommendations = map[string]string{
	FactorHighExpenseRatio: "Maintain receipts and business-purpose documentation for every deducted expense",
	FactorHighIncome:       "Have the return reviewed by a tax professional before filing",
	FactorSelfEmployment:   "Keep business and personal accounts separate and reconcile reported income to 1099s",
}

// Recommendation returns the mitigation text for a factor
func Recommendation(factor string) (string, bool) {
	r, ok := recommendations[factor]
	return r, ok
}

// Scorer computes AuditRiskAssessments from configured weights
type Scorer struct {
	Thresholds config.RiskThresholds
}

// NewScorer creates a scorer
func NewScorer(th config.RiskThresholds) *Scorer {
	return &Scorer{Thresholds: th}
}

// Assess scores the scenario. Factors and recommendations keep a fixed order.
func (sc *Scorer) Assess(s domain.TaxScenario) domain.AuditRiskAssessment {
	th := sc.Thresholds
	score := 0
	factors := []string{}

	if s.BusinessExpenses.GreaterThan(s.Income.Mul(th.ExpenseRatio)) {
		score += th.ExpenseRatioWeight
		factors = append(factors, FactorHighExpenseRatio)
	}
	if s.Income.GreaterThan(th.HighIncome) {
		score += th.HighIncomeWeight
		factors = append(factors, FactorHighIncome)
	}
	if s.SelfEmployed {
		score += th.SelfEmployedWeight
		factors = append(factors, FactorSelfEmployment)
	}

	recs := make([]string, 0, len(factors))
	for _, f := range factors {
		if r, ok := recommendations[f]; ok {
			recs = append(recs, r)
		}
	}

	return domain.AuditRiskAssessment{
		Score:           score,
		Level:           sc.LevelForScore(score),
		Factors:         factors,
		Recommendations: recs,
	}
}

// LevelForScore buckets a score: <= LowMax low, <= MediumMax medium, else high
func (sc *Scorer) LevelForScore(score int) domain.RiskLevel {
	switch {
	case score <= sc.Thresholds.LowMax:
		return domain.RiskLow
	case score <= sc.Thresholds.MediumMax:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}
