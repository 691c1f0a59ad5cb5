package transform

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates the common what-if templates. Retirement
// limits come from the tax year's advisor thresholds.
func CreateBuiltInTemplates(limits config.AdvisorThresholds) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_retirement",
		Description: "Contribute the maximum pre-tax retirement amount",
		Transforms: []ScenarioTransform{
			&MaxRetirementContribution{Limit: limits.RetirementLimit, IncomeFraction: limits.RetirementIncomeFraction},
		},
	})

	registry.Register(Template{
		Name:        "home_office",
		Description: "Claim a home office",
		Transforms: []ScenarioTransform{
			&SetHomeOffice{Enabled: true},
		},
	})

	registry.Register(Template{
		Name:        "file_jointly",
		Description: "File married filing jointly",
		Transforms: []ScenarioTransform{
			&SetFilingStatus{Status: domain.FilingMarriedJoint},
		},
	})

	registry.Register(Template{
		Name:        "file_separately",
		Description: "File married filing separately",
		Transforms: []ScenarioTransform{
			&SetFilingStatus{Status: domain.FilingMarriedSeparate},
		},
	})

	registry.Register(Template{
		Name:        "head_of_household",
		Description: "File as head of household",
		Transforms: []ScenarioTransform{
			&SetFilingStatus{Status: domain.FilingHeadOfHousehold},
		},
	})

	registry.Register(Template{
		Name:        "trim_expenses_10pct",
		Description: "Cut business expenses by 10%",
		Transforms: []ScenarioTransform{
			&ScaleBusinessExpenses{Factor: decimal.RequireFromString("0.9")},
		},
	})

	registry.Register(Template{
		Name:        "w2_employee",
		Description: "Earn the same income as wages instead of self-employment",
		Transforms: []ScenarioTransform{
			&SetSelfEmployed{Enabled: false},
		},
	})

	return registry
}
