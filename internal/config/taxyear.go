package config

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidBracketTable is wrapped by every bracket table validation failure
var ErrInvalidBracketTable = errors.New("invalid bracket table")

// Bracket is one half-open [Min, Max) slice of taxable income taxed at Rate.
// A nil Max means the bracket is unbounded.
type Bracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit
func (b Bracket) Unbounded() bool {
	return b.Max == nil
}

// Contains reports whether amount falls inside [Min, Max)
func (b Bracket) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(b.Min) {
		return false
	}
	return b.Unbounded() || amount.LessThan(*b.Max)
}

// BracketTable is an ordered, contiguous schedule covering [0, +inf)
type BracketTable []Bracket

// SETaxConfig holds the self-employment tax parameters.
// ApplyWageBaseCap is off by default so results match the simplified formula
// income * BaseFactor * Rate; when on, the Social Security portion is capped
// at WageBase.
type SETaxConfig struct {
	BaseFactor         decimal.Decimal `yaml:"base_factor" json:"base_factor"`
	Rate               decimal.Decimal `yaml:"rate" json:"rate"`
	SocialSecurityRate decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"`
	MedicareRate       decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
	WageBase           decimal.Decimal `yaml:"wage_base" json:"wage_base"`
	ApplyWageBaseCap   bool            `yaml:"apply_wage_base_cap" json:"apply_wage_base_cap"`
}

// AdvisorThresholds carries every literal used by the optimization rules
type AdvisorThresholds struct {
	HomeOfficeMinIncome      decimal.Decimal `yaml:"home_office_min_income" json:"home_office_min_income"`
	HomeOfficeMaxDeduction   decimal.Decimal `yaml:"home_office_max_deduction" json:"home_office_max_deduction"`
	HomeOfficeIncomeFraction decimal.Decimal `yaml:"home_office_income_fraction" json:"home_office_income_fraction"`
	HomeOfficeConfidence     int             `yaml:"home_office_confidence" json:"home_office_confidence"`

	RetirementLimit          decimal.Decimal `yaml:"retirement_limit" json:"retirement_limit"`
	RetirementIncomeFraction decimal.Decimal `yaml:"retirement_income_fraction" json:"retirement_income_fraction"`
	RetirementMaxAdditional  decimal.Decimal `yaml:"retirement_max_additional" json:"retirement_max_additional"`
	RetirementConfidence     int             `yaml:"retirement_confidence" json:"retirement_confidence"`

	QuarterlyPeriods    int64 `yaml:"quarterly_periods" json:"quarterly_periods"`
	QuarterlyConfidence int   `yaml:"quarterly_confidence" json:"quarterly_confidence"`

	ExpenseRatioWarning    decimal.Decimal `yaml:"expense_ratio_warning" json:"expense_ratio_warning"`
	ExpenseRatioConfidence int             `yaml:"expense_ratio_confidence" json:"expense_ratio_confidence"`

	BracketProximityGap        decimal.Decimal `yaml:"bracket_proximity_gap" json:"bracket_proximity_gap"`
	BracketProximityImpactRate decimal.Decimal `yaml:"bracket_proximity_impact_rate" json:"bracket_proximity_impact_rate"`
	BracketProximityConfidence int             `yaml:"bracket_proximity_confidence" json:"bracket_proximity_confidence"`
}

// RiskThresholds carries the audit risk weights and bucket edges
type RiskThresholds struct {
	ExpenseRatio       decimal.Decimal `yaml:"expense_ratio" json:"expense_ratio"`
	ExpenseRatioWeight int             `yaml:"expense_ratio_weight" json:"expense_ratio_weight"`
	HighIncome         decimal.Decimal `yaml:"high_income" json:"high_income"`
	HighIncomeWeight   int             `yaml:"high_income_weight" json:"high_income_weight"`
	SelfEmployedWeight int             `yaml:"self_employed_weight" json:"self_employed_weight"`
	LowMax             int             `yaml:"low_max" json:"low_max"`
	MediumMax          int             `yaml:"medium_max" json:"medium_max"`
}

// TaxYearConfig is the immutable configuration for one tax year. It is loaded
// once at start-up and shared read-only by every computation.
type TaxYearConfig struct {
	Year           int                                  `yaml:"year" json:"year"`
	Version        string                               `yaml:"version" json:"version"`
	Description    string                               `yaml:"description" json:"description"`
	Brackets       map[domain.FilingStatus]BracketTable `yaml:"brackets" json:"brackets"`
	SelfEmployment SETaxConfig                          `yaml:"self_employment" json:"self_employment"`
	Advisor        AdvisorThresholds                    `yaml:"advisor" json:"advisor"`
	Risk           RiskThresholds                       `yaml:"risk" json:"risk"`
}

// BracketsFor returns the table for status. When the status has no table the
// single table is returned with ok=false so the caller can log the fallback.
func (c *TaxYearConfig) BracketsFor(status domain.FilingStatus) (table BracketTable, used domain.FilingStatus, ok bool) {
	if t, found := c.Brackets[status]; found && len(t) > 0 {
		return t, status, true
	}
	return c.Brackets[domain.FilingSingle], domain.FilingSingle, false
}

// HasTable reports whether status is modeled by this year's configuration
func (c *TaxYearConfig) HasTable(status domain.FilingStatus) bool {
	t, ok := c.Brackets[status]
	return ok && len(t) > 0
}

// Validate checks the structural invariants of every bracket table
func (c *TaxYearConfig) Validate() error {
	if c.Year <= 0 {
		return fmt.Errorf("tax year must be positive, got %d", c.Year)
	}
	if !c.HasTable(domain.FilingSingle) {
		return fmt.Errorf("%w: tax year %d has no single table", ErrInvalidBracketTable, c.Year)
	}
	for status, table := range c.Brackets {
		if !status.Valid() {
			return fmt.Errorf("%w: unknown filing status %q", ErrInvalidBracketTable, status)
		}
		if err := table.Validate(); err != nil {
			return fmt.Errorf("%s table: %w", status, err)
		}
	}
	if c.SelfEmployment.BaseFactor.LessThanOrEqual(decimal.Zero) || c.SelfEmployment.Rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("self-employment base factor and rate must be positive")
	}
	if c.Advisor.QuarterlyPeriods <= 0 {
		return fmt.Errorf("quarterly periods must be positive")
	}
	if c.Risk.LowMax >= c.Risk.MediumMax {
		return fmt.Errorf("risk low_max (%d) must be below medium_max (%d)", c.Risk.LowMax, c.Risk.MediumMax)
	}
	return nil
}

// Validate checks that the table starts at zero, is contiguous and sorted,
// and that only the last bracket is unbounded
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidBracketTable)
	}
	if !t[0].Min.IsZero() {
		return fmt.Errorf("%w: first bracket starts at %s, want 0", ErrInvalidBracketTable, t[0].Min)
	}
	one := decimal.NewFromInt(1)
	for i, b := range t {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1]", ErrInvalidBracketTable, i, b.Rate)
		}
		last := i == len(t)-1
		if b.Unbounded() {
			if !last {
				return fmt.Errorf("%w: bracket %d is unbounded but not last", ErrInvalidBracketTable, i)
			}
			continue
		}
		if last {
			return fmt.Errorf("%w: final bracket must be unbounded", ErrInvalidBracketTable)
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%w: bracket %d max %s not above min %s", ErrInvalidBracketTable, i, b.Max, b.Min)
		}
		if next := t[i+1]; !next.Min.Equal(*b.Max) {
			return fmt.Errorf("%w: gap or overlap between bracket %d (max %s) and %d (min %s)",
				ErrInvalidBracketTable, i, b.Max, i+1, next.Min)
		}
	}
	return nil
}

// TopRate returns the rate of the final bracket
func (t BracketTable) TopRate() decimal.Decimal {
	if len(t) == 0 {
		return decimal.Zero
	}
	return t[len(t)-1].Rate
}
