package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxadvisor/internal/advisor"
	"github.com/rgehrsitz/taxadvisor/internal/advisory"
	"github.com/rgehrsitz/taxadvisor/internal/compare"
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadScenario(t *testing.T, name string) domain.TaxScenario {
	t.Helper()
	s, err := config.NewInputParser().LoadScenarioFile("../testdata/" + name)
	require.NoError(t, err, "Should load %s", name)
	return s
}

func newEngine(t *testing.T) *advisory.Engine {
	t.Helper()
	engine, err := advisory.NewDefaultEngine()
	require.NoError(t, err)
	return engine
}

// TestBasicIntegration runs the sample scenarios from file to rendered report
func TestBasicIntegration(t *testing.T) {
	engine := newEngine(t)

	t.Run("w2_employee", func(t *testing.T) {
		result, err := engine.ComputeTaxAdvice(loadScenario(t, "scenario_a.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "4118", result.Calculations.TotalTax.String())
		assert.True(t, result.Calculations.SelfEmploymentTax.IsZero())
		require.Len(t, result.Insights, 1)
		assert.Equal(t, advisor.RuleRetirement, result.Insights[0].Rule)
		assert.Equal(t, domain.RiskLow, result.RiskAssessment.Level)
	})

	t.Run("self_employed", func(t *testing.T) {
		result, err := engine.ComputeTaxAdvice(loadScenario(t, "scenario_b.yaml"))
		require.NoError(t, err)

		c := result.Calculations
		assert.Equal(t, "9641", c.FederalTax.String())
		assert.Equal(t, "12010", c.SelfEmploymentTax.String())
		assert.Equal(t, "21651", c.TotalTax.String())
		assert.Len(t, result.Insights, 3)
		assert.Len(t, result.Optimizations, 2)
		assert.Equal(t, 1, result.RiskAssessment.Score)
	})

	t.Run("high_risk_json_input", func(t *testing.T) {
		result, err := engine.ComputeTaxAdvice(loadScenario(t, "scenario_high_risk.json"))
		require.NoError(t, err)

		assert.Equal(t, "54547", result.Calculations.FederalTax.String())
		assert.Equal(t, "0.35", result.Calculations.MarginalRate.String())
		assert.Equal(t, 4, result.RiskAssessment.Score)
		assert.Equal(t, domain.RiskHigh, result.RiskAssessment.Level)
		assert.Len(t, result.RiskAssessment.Factors, 3)

		rules := make([]string, 0, len(result.Insights))
		for _, in := range result.Insights {
			rules = append(rules, in.Rule)
		}
		assert.Equal(t, []string{advisor.RuleQuarterly, advisor.RuleRetirement, advisor.RuleExpenseRatio}, rules)
		assert.Equal(t, "1750", result.Insights[1].ImpactAmount.String())
	})
}

func TestErrorHandling(t *testing.T) {
	t.Run("invalid_file", func(t *testing.T) {
		_, err := config.NewInputParser().LoadScenarioFile("../testdata/scenario_invalid.yaml")
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "Should return a validation error")
		assert.Equal(t, []string{"income", "filingStatus"}, verr.FieldNames())
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := config.NewInputParser().LoadScenarioFile("../testdata/does_not_exist.yaml")
		assert.Error(t, err)
	})

	t.Run("unknown_format", func(t *testing.T) {
		result, err := newEngine(t).ComputeTaxAdvice(loadScenario(t, "scenario_a.yaml"))
		require.NoError(t, err)
		assert.Error(t, output.GenerateReport(&bytes.Buffer{}, result, "pdf"))
	})
}

func TestOutputGeneration(t *testing.T) {
	result, err := newEngine(t).ComputeTaxAdvice(loadScenario(t, "scenario_b.yaml"))
	require.NoError(t, err)

	for _, format := range output.FormatNames {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, output.GenerateReport(&buf, result, format))
			assert.Contains(t, buf.String(), "21651")
		})
	}

	var buf bytes.Buffer
	require.NoError(t, output.GenerateReport(&buf, result, "json"))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"calculations", "insights", "optimizations", "riskAssessment", "aiConfidence"} {
		assert.Contains(t, decoded, key)
	}
}

func TestDataConsistency(t *testing.T) {
	engine := newEngine(t)
	scenarios := []domain.TaxScenario{
		loadScenario(t, "scenario_a.yaml"),
		loadScenario(t, "scenario_b.yaml"),
		loadScenario(t, "scenario_high_risk.json"),
	}

	batch, err := engine.ComputeBatch(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, batch, len(scenarios))

	for i, s := range scenarios {
		single, err := engine.ComputeTaxAdvice(s)
		require.NoError(t, err)
		assert.True(t, single.Calculations.TotalTax.Equal(batch[i].Calculations.TotalTax), "scenario %d total tax", i)
		assert.Equal(t, single.RiskAssessment, batch[i].RiskAssessment, "scenario %d risk", i)
		assert.Equal(t, len(single.Insights), len(batch[i].Insights), "scenario %d insights", i)

		c := single.Calculations
		assert.True(t, c.TotalTax.Equal(c.FederalTax.Add(c.SelfEmploymentTax)), "total is federal plus SE tax")
		assert.False(t, c.TaxableIncome.IsNegative())
	}
}

func TestCompareWorkflow(t *testing.T) {
	compSet, err := compare.NewCompareEngine(newEngine(t)).Compare(context.Background(),
		loadScenario(t, "scenario_b.yaml"),
		compare.CompareOptions{
			BaseScenarioName: "scenario_b",
			Alternatives:     []string{"max_retirement", "file_jointly", "w2_employee"},
		})
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 3)
	assert.Equal(t, "-3355", compSet.AlternativeResults[0].TaxDiffFromBase.String())
	assert.Equal(t, "19388", compSet.AlternativeResults[1].TotalTax.String())
	assert.Equal(t, "9641", compSet.AlternativeResults[2].TotalTax.String())

	table := (&compare.TableFormatter{}).Format(compSet)
	assert.True(t, strings.HasPrefix(table, "TAX SCENARIO COMPARISON (2023)"))
	assert.Contains(t, table, "Lowest tax: w2_employee")
}
