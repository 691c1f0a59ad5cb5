// Package transform describes what-if edits to a tax scenario. Transforms are
// small composable operations that return a modified copy of a scenario and
// never touch the original, so a single base can feed many alternatives.
package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

// ScenarioTransform defines the interface for all scenario transformations
type ScenarioTransform interface {
	// Apply returns a modified copy of base
	Apply(base domain.TaxScenario) (domain.TaxScenario, error)

	// Name returns a short identifier (e.g. "max_retirement")
	Name() string

	// Description returns a human-readable description of the edit
	Description() string

	// Validate checks the transform parameters against base without applying it
	Validate(base domain.TaxScenario) error
}

// ApplyTransforms applies transforms in order, each one receiving the output
// of the previous. The result is re-validated as a scenario.
func ApplyTransforms(base domain.TaxScenario, transforms []ScenarioTransform) (domain.TaxScenario, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.TaxScenario{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.TaxScenario{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.TaxScenario{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	if err := current.Validate(); err != nil {
		return domain.TaxScenario{}, fmt.Errorf("transformed scenario is invalid: %w", err)
	}
	return current, nil
}

// Describe joins the descriptions of a transform chain
func Describe(transforms []ScenarioTransform) string {
	parts := make([]string, 0, len(transforms))
	for _, t := range transforms {
		parts = append(parts, t.Description())
	}
	return strings.Join(parts, "; ")
}

// TransformError represents an error that occurred during transformation
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
