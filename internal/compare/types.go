package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description"`
	Result       *domain.AdvisoryResult `json:"-"`

	// Key Metrics
	FederalTax        decimal.Decimal  `json:"federalTax"`
	SelfEmploymentTax decimal.Decimal  `json:"selfEmploymentTax"`
	TotalTax          decimal.Decimal  `json:"totalTax"`
	EffectiveRate     decimal.Decimal  `json:"effectiveRate"`
	MarginalRate      decimal.Decimal  `json:"marginalRate"`
	RiskScore         int              `json:"riskScore"`
	RiskLevel         domain.RiskLevel `json:"riskLevel"`
	InsightCount      int              `json:"insightCount"`
	PotentialSavings  decimal.Decimal  `json:"potentialSavings"` // sum of optimization impacts still available

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
	RiskScoreDiff   int             `json:"riskScoreDiff"`
}

// ComparisonSet represents a base scenario and its what-if alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	TaxYear            int                `json:"taxYear"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	SourcePath         string             `json:"sourcePath,omitempty"`
}

// MetricsCalculator extracts key metrics from advisory results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one advisory result
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.AdvisoryResult) ComparisonResult {
	c := result.Calculations
	savings := decimal.Zero
	for _, o := range result.Optimizations {
		savings = savings.Add(o.ImpactAmount)
	}
	return ComparisonResult{
		ScenarioName:      name,
		Result:            result,
		FederalTax:        c.FederalTax,
		SelfEmploymentTax: c.SelfEmploymentTax,
		TotalTax:          c.TotalTax,
		EffectiveRate:     c.EffectiveRate,
		MarginalRate:      c.MarginalRate,
		RiskScore:         result.RiskAssessment.Score,
		RiskLevel:         result.RiskAssessment.Level,
		InsightCount:      len(result.Insights),
		PotentialSavings:  savings,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)

	if !base.TotalTax.IsZero() {
		scenario.TaxPctFromBase = scenario.TaxDiffFromBase.
			Div(base.TotalTax).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.RiskScoreDiff = scenario.RiskScore - base.RiskScore
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Lowest total tax
	lowestTax := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = alt
		}
	}
	if lowestTax != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest tax: %s saves $%s versus the base scenario",
				lowestTax.ScenarioName, base.TotalTax.Sub(lowestTax.TotalTax).StringFixed(0)))
	}

	// Lowest audit risk
	lowestRisk := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.RiskScore < lowestRisk.RiskScore {
			lowestRisk = alt
		}
	}
	if lowestRisk != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest audit risk: %s lowers the risk score by %d",
				lowestRisk.ScenarioName, base.RiskScore-lowestRisk.RiskScore))
	}

	// Alternatives that save tax but move into a riskier bucket
	for _, alt := range compSet.AlternativeResults {
		if alt.TaxDiffFromBase.IsNegative() && riskRank(alt.RiskLevel) > riskRank(base.RiskLevel) {
			recommendations = append(recommendations,
				fmt.Sprintf("Caution: %s saves tax but raises audit risk to %s", alt.ScenarioName, alt.RiskLevel))
		}
	}

	return recommendations
}

func riskRank(level domain.RiskLevel) int {
	switch level {
	case domain.RiskHigh:
		return 3
	case domain.RiskMedium:
		return 2
	case domain.RiskLow:
		return 1
	default:
		return 0
	}
}
