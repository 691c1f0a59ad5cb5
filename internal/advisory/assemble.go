package advisory

import (
	"github.com/rgehrsitz/taxadvisor/internal/advisor"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// OverallConfidence is the rounded mean of insight confidences, 0 when empty
func OverallConfidence(insights []domain.Insight) int {
	if len(insights) == 0 {
		return 0
	}
	sum := 0
	for _, in := range insights {
		sum += in.ConfidencePercent
	}
	mean := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(insights))))
	return int(mean.Round(0).IntPart())
}

// Assemble builds the final result. Slices are copied so the result shares no
// backing arrays with the caller's data.
func Assemble(calcs domain.TaxComputationResult, insights []domain.Insight, assessment domain.AuditRiskAssessment, skipped []string) *domain.AdvisoryResult {
	ranked := append([]domain.Insight{}, insights...)
	assessment.Factors = append([]string{}, assessment.Factors...)
	assessment.Recommendations = append([]string{}, assessment.Recommendations...)

	return &domain.AdvisoryResult{
		Calculations:   calcs,
		Insights:       ranked,
		Optimizations:  advisor.Optimizations(ranked),
		RiskAssessment: assessment,
		AIConfidence:   OverallConfidence(ranked),
		SkippedRules:   append([]string{}, skipped...),
	}
}
