package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Number renders d as a JSON number. decimal.Decimal quotes itself by default
// and the package-wide switch would leak into every other decimal user.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// TaxComputationResult holds the derived federal figures for one scenario
type TaxComputationResult struct {
	AdjustedGrossIncome decimal.Decimal `json:"adjustedGrossIncome"`
	TaxableIncome       decimal.Decimal `json:"taxableIncome"`
	FederalTax          decimal.Decimal `json:"federalTax"`
	SelfEmploymentTax   decimal.Decimal `json:"selfEmploymentTax"`
	TotalTax            decimal.Decimal `json:"totalTax"`
	EffectiveRate       decimal.Decimal `json:"effectiveRate"` // percent of gross income, 2 places
	MarginalRate        decimal.Decimal `json:"marginalRate"`  // fraction, e.g. 0.22

	TaxYear       int          `json:"taxYear"`
	BracketStatus FilingStatus `json:"bracketStatus"` // table actually used, differs from the scenario on fallback
}

func (r TaxComputationResult) MarshalJSON() ([]byte, error) {
	type plain TaxComputationResult
	return json.Marshal(struct {
		plain
		AdjustedGrossIncome json.Number `json:"adjustedGrossIncome"`
		TaxableIncome       json.Number `json:"taxableIncome"`
		FederalTax          json.Number `json:"federalTax"`
		SelfEmploymentTax   json.Number `json:"selfEmploymentTax"`
		TotalTax            json.Number `json:"totalTax"`
		EffectiveRate       json.Number `json:"effectiveRate"`
		MarginalRate        json.Number `json:"marginalRate"`
	}{
		plain:               plain(r),
		AdjustedGrossIncome: Number(r.AdjustedGrossIncome),
		TaxableIncome:       Number(r.TaxableIncome),
		FederalTax:          Number(r.FederalTax),
		SelfEmploymentTax:   Number(r.SelfEmploymentTax),
		TotalTax:            Number(r.TotalTax),
		EffectiveRate:       Number(r.EffectiveRate),
		MarginalRate:        Number(r.MarginalRate),
	})
}

// InsightType classifies an advisory insight
type InsightType string

const (
	InsightOptimization InsightType = "optimization"
	InsightWarning      InsightType = "warning"
	InsightPlanning     InsightType = "planning"
	InsightCalculation  InsightType = "calculation"
)

// Priority ranks insights for presentation
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns a sortable weight, higher is more urgent
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Insight is a single scored recommendation produced by an advisor rule
type Insight struct {
	ID                string          `json:"id"`
	Type              InsightType     `json:"type"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	ImpactAmount      decimal.Decimal `json:"impactAmount"`
	ConfidencePercent int             `json:"confidencePercent"`
	ActionRequired    bool            `json:"actionRequired"`
	Priority          Priority        `json:"priority"`
	Category          string          `json:"category"`
	Rule              string          `json:"rule"`
}

func (in Insight) MarshalJSON() ([]byte, error) {
	type plain Insight
	return json.Marshal(struct {
		plain
		ImpactAmount json.Number `json:"impactAmount"`
	}{plain(in), Number(in.ImpactAmount)})
}

// ClampConfidence bounds a confidence value to [0, 100]
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// RiskLevel buckets an audit risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AuditRiskAssessment is the heuristic audit exposure for a scenario
type AuditRiskAssessment struct {
	Score           int       `json:"score"`
	Level           RiskLevel `json:"level"`
	Factors         []string  `json:"factors"`
	Recommendations []string  `json:"recommendations"`
}

// AdvisoryResult is the complete response for one scenario
type AdvisoryResult struct {
	Calculations   TaxComputationResult `json:"calculations"`
	Insights       []Insight            `json:"insights"`
	Optimizations  []Insight            `json:"optimizations"`
	RiskAssessment AuditRiskAssessment  `json:"riskAssessment"`
	AIConfidence   int                  `json:"aiConfidence"`
	SkippedRules   []string             `json:"skippedRules"`
}
