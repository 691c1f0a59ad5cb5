// Package compare runs a base tax scenario next to what-if alternatives and
// reports how total tax, audit risk and open optimizations move.
package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxadvisor/internal/advisory"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Engine            *advisory.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a comparison engine whose templates use the
// engine's tax-year limits
func NewCompareEngine(engine *advisory.Engine) *CompareEngine {
	limits := engine.Config.Advisor
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(limits),
		TransformRegistry: transform.NewTransformRegistry(limits),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // label for the base scenario
	Alternatives     []string // template names or transform chains
	SourcePath       string
}

// alternative is a resolved what-if: a label, a description and the edits
type alternative struct {
	name        string
	description string
	transforms  []transform.ScenarioTransform
}

// resolve looks the name up as a template first, then parses it as a
// transform chain
func (ce *CompareEngine) resolve(name string) (alternative, error) {
	if tpl, ok := ce.TemplateRegistry.Get(name); ok {
		return alternative{name: tpl.Name, description: tpl.Description, transforms: tpl.Transforms}, nil
	}
	transforms, err := ce.TransformRegistry.ParseChain(name)
	if err != nil {
		return alternative{}, fmt.Errorf("alternative %q is neither a template nor a transform: %w", name, err)
	}
	return alternative{name: name, description: transform.Describe(transforms), transforms: transforms}, nil
}

// Compare computes the base scenario and every alternative in one batch
func (ce *CompareEngine) Compare(ctx context.Context, base domain.TaxScenario, options CompareOptions) (*ComparisonSet, error) {
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("invalid base scenario: %w", err)
	}

	alts := make([]alternative, 0, len(options.Alternatives))
	scenarios := []domain.TaxScenario{base}
	for _, name := range options.Alternatives {
		alt, err := ce.resolve(name)
		if err != nil {
			return nil, err
		}
		modified, err := transform.ApplyTransforms(base, alt.transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.name, err)
		}
		alts = append(alts, alt)
		scenarios = append(scenarios, modified)
	}

	results, err := ce.Engine.ComputeBatch(ctx, scenarios)
	if err != nil {
		return nil, err
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, results[0])
	baseResult.Description = "Scenario as given"

	alternatives := make([]ComparisonResult, 0, len(alts))
	for i, alt := range alts {
		altResult := ce.MetricsCalculator.CalculateMetrics(alt.name, results[i+1])
		altResult.Description = alt.description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		TaxYear:            ce.Engine.Config.Year,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		SourcePath:         options.SourcePath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
