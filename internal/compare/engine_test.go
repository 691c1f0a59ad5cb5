package compare

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxadvisor/internal/advisory"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

func baseScenario() domain.TaxScenario {
	return domain.TaxScenario{
		Income:                  decimal.NewFromInt(85000),
		FilingStatus:            domain.FilingSingle,
		Deductions:              decimal.NewFromInt(13850),
		RetirementContributions: decimal.NewFromInt(6000),
		SelfEmployed:            true,
	}
}

func newCompareEngine(t *testing.T) *CompareEngine {
	t.Helper()
	engine, err := advisory.NewDefaultEngine()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return NewCompareEngine(engine)
}

func TestCompare_Templates(t *testing.T) {
	ce := newCompareEngine(t)

	set, err := ce.Compare(context.Background(), baseScenario(), CompareOptions{
		BaseScenarioName: "scenario_b",
		Alternatives:     []string{"max_retirement", "home_office", "file_jointly"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.TaxYear != 2023 {
		t.Errorf("Expected tax year 2023, got %d", set.TaxYear)
	}

	base := set.BaseResult
	if base.ScenarioName != "scenario_b" || base.TotalTax.String() != "21651" {
		t.Errorf("Unexpected base %s total %s", base.ScenarioName, base.TotalTax)
	}
	// home office 330 + retirement 1100
	if base.PotentialSavings.String() != "1430" {
		t.Errorf("Expected potential savings 1430, got %s", base.PotentialSavings)
	}
	if base.InsightCount != 3 {
		t.Errorf("Expected 3 insights, got %d", base.InsightCount)
	}

	if len(set.AlternativeResults) != 3 {
		t.Fatalf("Expected 3 alternatives, got %d", len(set.AlternativeResults))
	}

	maxRet := set.AlternativeResults[0]
	// taxable 49900 -> federal 6286, SE unchanged
	if maxRet.TotalTax.String() != "18296" {
		t.Errorf("Expected 18296, got %s", maxRet.TotalTax)
	}
	if maxRet.TaxDiffFromBase.String() != "-3355" {
		t.Errorf("Expected -3355, got %s", maxRet.TaxDiffFromBase)
	}
	if maxRet.TaxPctFromBase.String() != "-15.5" {
		t.Errorf("Expected -15.5, got %s", maxRet.TaxPctFromBase)
	}
	if maxRet.InsightCount != 2 || maxRet.PotentialSavings.String() != "330" {
		t.Errorf("Expected the retirement insight to disappear, got %d insights / %s", maxRet.InsightCount, maxRet.PotentialSavings)
	}
	if maxRet.Description != "Contribute the maximum pre-tax retirement amount" {
		t.Errorf("Unexpected description %q", maxRet.Description)
	}

	homeOffice := set.AlternativeResults[1]
	if !homeOffice.TaxDiffFromBase.IsZero() || homeOffice.InsightCount != 2 {
		t.Errorf("Home office should not change tax, got diff %s and %d insights", homeOffice.TaxDiffFromBase, homeOffice.InsightCount)
	}

	jointly := set.AlternativeResults[2]
	if jointly.TotalTax.String() != "19388" {
		t.Errorf("Expected 19388, got %s", jointly.TotalTax)
	}

	want := []string{"Lowest tax: max_retirement saves $3355 versus the base scenario"}
	if strings.Join(set.Recommendations, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, set.Recommendations)
	}
}

func TestCompare_LowerRisk(t *testing.T) {
	ce := newCompareEngine(t)

	set, err := ce.Compare(context.Background(), baseScenario(), CompareOptions{
		Alternatives: []string{"max_retirement", "w2_employee"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if set.BaseScenarioName != "base" {
		t.Errorf("Expected default base name, got %s", set.BaseScenarioName)
	}

	w2 := set.AlternativeResults[1]
	if w2.TotalTax.String() != "9641" || w2.RiskScoreDiff != -1 {
		t.Errorf("Expected wages-only total 9641 and risk -1, got %s / %d", w2.TotalTax, w2.RiskScoreDiff)
	}

	want := []string{
		"Lowest tax: w2_employee saves $12010 versus the base scenario",
		"Lowest audit risk: w2_employee lowers the risk score by 1",
	}
	if strings.Join(set.Recommendations, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, set.Recommendations)
	}
}

func TestCompare_TransformChainCaution(t *testing.T) {
	ce := newCompareEngine(t)
	chain := "max_retirement+set_business_expenses:amount=30000"

	set, err := ce.Compare(context.Background(), baseScenario(), CompareOptions{
		Alternatives: []string{chain},
	})
	if err != nil {
		t.Fatal(err)
	}

	alt := set.AlternativeResults[0]
	if alt.ScenarioName != chain {
		t.Errorf("Expected chain as name, got %s", alt.ScenarioName)
	}
	if alt.Description != "Contribute the maximum pre-tax amount (up to $23000); Set businessExpenses to $30000" {
		t.Errorf("Unexpected description %q", alt.Description)
	}
	// expenses above 30% of income add 2
	if alt.RiskScore != 3 || alt.RiskLevel != domain.RiskMedium {
		t.Errorf("Expected medium risk 3, got %s %d", alt.RiskLevel, alt.RiskScore)
	}

	found := false
	for _, rec := range set.Recommendations {
		if rec == "Caution: "+chain+" saves tax but raises audit risk to medium" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a caution recommendation, got %v", set.Recommendations)
	}
}

func TestCompare_Errors(t *testing.T) {
	ce := newCompareEngine(t)

	_, err := ce.Compare(context.Background(), baseScenario(), CompareOptions{Alternatives: []string{"nope"}})
	if err == nil || !strings.Contains(err.Error(), "neither a template nor a transform") {
		t.Errorf("Expected unknown alternative error, got %v", err)
	}

	wages := baseScenario()
	wages.SelfEmployed = false
	_, err = ce.Compare(context.Background(), wages, CompareOptions{Alternatives: []string{"home_office"}})
	if err == nil || !strings.Contains(err.Error(), "failed to apply home_office") {
		t.Errorf("Expected transform validation error, got %v", err)
	}

	bad := baseScenario()
	bad.Income = decimal.NewFromInt(-1)
	_, err = ce.Compare(context.Background(), bad, CompareOptions{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ce.Compare(ctx, baseScenario(), CompareOptions{Alternatives: []string{"max_retirement"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCompare_NoAlternatives(t *testing.T) {
	set, err := newCompareEngine(t).Compare(context.Background(), baseScenario(), CompareOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(set.AlternativeResults) != 0 || len(set.Recommendations) != 0 {
		t.Errorf("Expected base only, got %+v", set)
	}
}
