package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustIncome adds Delta (which may be negative) to gross income
type AdjustIncome struct {
	Delta decimal.Decimal
}

func (t *AdjustIncome) Name() string { return "adjust_income" }

func (t *AdjustIncome) Description() string {
	if t.Delta.IsNegative() {
		return fmt.Sprintf("Lower income by $%s", t.Delta.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Raise income by $%s", t.Delta.StringFixed(0))
}

func (t *AdjustIncome) Validate(base domain.TaxScenario) error {
	if base.Income.Add(t.Delta).IsNegative() {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("income would become negative (%s)", base.Income.Add(t.Delta).String()), nil)
	}
	return nil
}

func (t *AdjustIncome) Apply(base domain.TaxScenario) (domain.TaxScenario, error) {
	base.Income = base.Income.Add(t.Delta)
	return base, nil
}

// SetAmount replaces one non-negative money field of the scenario
type SetAmount struct {
	Field  string // deductions, businessExpenses or retirementContributions
	Amount decimal.Decimal
}

var amountFields = map[string]string{
	"deductions":              "set_deductions",
	"businessExpenses":        "set_business_expenses",
	"retirementContributions": "set_retirement",
}

func (t *SetAmount) Name() string {
	if name, ok := amountFields[t.Field]; ok {
		return name
	}
	return "set_" + t.Field
}

func (t *SetAmount) Description() string {
	return fmt.Sprintf("Set %s to $%s", t.Field, t.Amount.StringFixed(0))
}

func (t *SetAmount) Validate(domain.TaxScenario) error {
	if _, ok := amountFields[t.Field]; !ok {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown field %q", t.Field), nil)
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount must not be negative", nil)
	}
	return nil
}

func (t *SetAmount) Apply(base domain.TaxScenario) (domain.TaxScenario, error) {
	switch t.Field {
	case "deductions":
		base.Deductions = t.Amount
	case "businessExpenses":
		base.BusinessExpenses = t.Amount
	case "retirementContributions":
		base.RetirementContributions = t.Amount
	default:
		return base, NewTransformError(t.Name(), "apply", fmt.Sprintf("unknown field %q", t.Field), nil)
	}
	return base, nil
}

// ScaleBusinessExpenses multiplies business expenses by Factor
type ScaleBusinessExpenses struct {
	Factor decimal.Decimal
}

func (t *ScaleBusinessExpenses) Name() string { return "scale_business_expenses" }

func (t *ScaleBusinessExpenses) Description() string {
	return fmt.Sprintf("Scale business expenses by %s", t.Factor.String())
}

func (t *ScaleBusinessExpenses) Validate(domain.TaxScenario) error {
	if t.Factor.IsNegative() {
		return NewTransformError(t.Name(), "validate", "factor must not be negative", nil)
	}
	return nil
}

func (t *ScaleBusinessExpenses) Apply(base domain.TaxScenario) (domain.TaxScenario, error) {
	base.BusinessExpenses = base.BusinessExpenses.Mul(t.Factor).Round(2)
	return base, nil
}

// MaxRetirementContribution raises pre-tax contributions to
// min(Limit, income * IncomeFraction). Contributions already above that are kept.
type MaxRetirementContribution struct {
	Limit          decimal.Decimal
	IncomeFraction decimal.Decimal
}

func (t *MaxRetirementContribution) Name() string { return "max_retirement" }

func (t *MaxRetirementContribution) Description() string {
	return fmt.Sprintf("Contribute the maximum pre-tax amount (up to $%s)", t.Limit.StringFixed(0))
}

func (t *MaxRetirementContribution) Validate(domain.TaxScenario) error {
	if t.Limit.IsNegative() || t.IncomeFraction.IsNegative() {
		return NewTransformError(t.Name(), "validate", "limit and income fraction must not be negative", nil)
	}
	return nil
}

func (t *MaxRetirementContribution) Apply(base domain.TaxScenario) (domain.TaxScenario, error) {
	target := decimal.Min(t.Limit, base.Income.Mul(t.IncomeFraction))
	base.RetirementContributions = decimal.Max(base.RetirementContributions, target)
	return base, nil
}

// SetFilingStatus switches the filing status
type SetFilingStatus struct {
	Status domain.FilingStatus
}

func (t *SetFilingStatus) Name() string { return "set_filing_status" }

func (t *SetFilingStatus) Description() string {
	return fmt.Sprintf("File as %s", t.Status)
}

func (t *SetFilingStatus) Validate(domain.TaxScenario) error {
	if !t.Status.Valid() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown filing status %q", t.Status), nil)
	}
	return nil
}

func (t *SetFilingStatus) Apply(base domain.TaxScenario) (domain.TaxScenario, error) {
	base.FilingStatus = t.Status
	return base, nil
}

// SetHomeOffice claims or drops the home office. Claiming one requires
// self-employment.
type SetHomeOffice struct {
	Enabled bool
}

func (t *SetHomeOffice) Name() string { return "set_home_office" }

func (t *SetHomeOffice) Description() string {
	if t.Enabled {
		return "Claim a home office"
	}
	return "Drop the home office claim"
}

func (t *SetHomeOffice) Validate(base domain.TaxScenario) error {
	if t.Enabled && !base.SelfEmployed {
		return NewTransformError(t.Name(), "validate", "a home office requires self-employment", nil)
	}
	return nil
}

func (t *SetHomeOffice) Apply(base domain.TaxScenario) (domain.TaxScenario, error) {
	base.HomeOffice = t.Enabled
	return base, nil
}

// SetSelfEmployed toggles self-employment. Turning it off also drops any home
// office claim.
type SetSelfEmployed struct {
	Enabled bool
}

func (t *SetSelfEmployed) Name() string { return "set_self_employed" }

func (t *SetSelfEmployed) Description() string {
	if t.Enabled {
		return "Treat income as self-employment"
	}
	return "Treat income as wages"
}

func (t *SetSelfEmployed) Validate(domain.TaxScenario) error { return nil }

func (t *SetSelfEmployed) Apply(base domain.TaxScenario) (domain.TaxScenario, error) {
	base.SelfEmployed = t.Enabled
	if !t.Enabled {
		base.HomeOffice = false
	}
	return base, nil
}
