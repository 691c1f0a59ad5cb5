package calculation

import (
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal tax uses the configured tax year's ordinary brackets only.
//    No AMT, no credits, no itemized phase-outs, no state or local tax.
//
// 2. AGI = income - retirement contributions (floored at 0). Deductions are
//    supplied by the scenario; no standard deduction is assumed.
//
// 3. Federal tax is summed unrounded across brackets and rounded once to the
//    nearest whole currency unit (half away from zero).
//
// 4. Self-employment tax = round(income * 0.9235 * 0.153). The Social Security
//    wage base is NOT applied unless the tax-year config sets
//    apply_wage_base_cap.

var hundred = decimal.NewFromInt(100)

// FederalTaxCalculator computes bracket-based federal income tax
type FederalTaxCalculator struct {
	Config *config.TaxYearConfig
	Logger Logger
}

// NewFederalTaxCalculator creates a calculator bound to a tax-year config
func NewFederalTaxCalculator(cfg *config.TaxYearConfig, logger Logger) *FederalTaxCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &FederalTaxCalculator{Config: cfg, Logger: logger}
}

// FederalTaxBreakdown is the intermediate output of the bracket calculation
type FederalTaxBreakdown struct {
	AdjustedGrossIncome decimal.Decimal
	TaxableIncome       decimal.Decimal
	FederalTax          decimal.Decimal
	Brackets            config.BracketTable
	BracketStatus       domain.FilingStatus
}

// AdjustedGrossIncome subtracts above-the-line retirement contributions
func AdjustedGrossIncome(s domain.TaxScenario) decimal.Decimal {
	return floorZero(s.Income.Sub(s.RetirementContributions))
}

// TaxableIncome subtracts deductions from AGI, floored at zero
func TaxableIncome(agi, deductions decimal.Decimal) decimal.Decimal {
	return floorZero(agi.Sub(deductions))
}

// BracketTax sums the tax owed on taxable across every bracket without rounding.
// The portion in each bracket is clamp(taxable - min, 0, max - min).
func BracketTax(taxable decimal.Decimal, brackets config.BracketTable) decimal.Decimal {
	total := decimal.Zero
	for _, b := range brackets {
		if taxable.LessThanOrEqual(b.Min) {
			break
		}
		portion := taxable.Sub(b.Min)
		if !b.Unbounded() {
			portion = decimal.Min(portion, b.Max.Sub(b.Min))
		}
		total = total.Add(portion.Mul(b.Rate))
	}
	return total
}

// Calculate computes AGI, taxable income and rounded federal tax for s.
// An unmodeled filing status falls back to the single table and is logged.
func (ftc *FederalTaxCalculator) Calculate(s domain.TaxScenario) FederalTaxBreakdown {
	table, used, ok := ftc.Config.BracketsFor(s.FilingStatus)
	if !ok {
		ftc.Logger.Warnf("unsupported filing status %q for tax year %d, falling back to %s table",
			s.FilingStatus, ftc.Config.Year, used)
	}

	agi := AdjustedGrossIncome(s)
	taxable := TaxableIncome(agi, s.Deductions)

	return FederalTaxBreakdown{
		AdjustedGrossIncome: agi,
		TaxableIncome:       taxable,
		FederalTax:          BracketTax(taxable, table).Round(0),
		Brackets:            table,
		BracketStatus:       used,
	}
}

// SelfEmploymentTaxCalculator computes SE tax for self-employed scenarios
type SelfEmploymentTaxCalculator struct {
	Config config.SETaxConfig
}

// NewSelfEmploymentTaxCalculator creates a new SE tax calculator
func NewSelfEmploymentTaxCalculator(cfg config.SETaxConfig) *SelfEmploymentTaxCalculator {
	return &SelfEmploymentTaxCalculator{Config: cfg}
}

// Calculate returns the rounded SE tax, zero when the scenario is not self-employed
func (se *SelfEmploymentTaxCalculator) Calculate(s domain.TaxScenario) decimal.Decimal {
	if !s.SelfEmployed {
		return decimal.Zero
	}
	base := s.Income.Mul(se.Config.BaseFactor)
	if !se.Config.ApplyWageBaseCap {
		return base.Mul(se.Config.Rate).Round(0)
	}

	// Social Security portion stops at the wage base, Medicare has no cap
	ssBase := decimal.Min(base, se.Config.WageBase)
	ss := ssBase.Mul(se.Config.SocialSecurityRate)
	medicare := base.Mul(se.Config.MedicareRate)
	return ss.Add(medicare).Round(0)
}

// MarginalRate returns the rate of the bracket whose [min, max) contains
// taxable. Amounts past every finite bound get the top rate.
func MarginalRate(taxable decimal.Decimal, brackets config.BracketTable) decimal.Decimal {
	for _, b := range brackets {
		if b.Contains(taxable) {
			return b.Rate
		}
	}
	return brackets.TopRate()
}

// NextThreshold returns the upper bound of the bracket containing amount.
// It reports false when amount is already in the unbounded bracket.
func NextThreshold(amount decimal.Decimal, brackets config.BracketTable) (decimal.Decimal, bool) {
	for _, b := range brackets {
		if b.Contains(amount) {
			if b.Unbounded() {
				return decimal.Zero, false
			}
			return *b.Max, true
		}
	}
	return decimal.Zero, false
}

// ComprehensiveTaxCalculator combines the federal and SE calculators
type ComprehensiveTaxCalculator struct {
	Year           int
	FederalTaxCalc *FederalTaxCalculator
	SETaxCalc      *SelfEmploymentTaxCalculator
}

// NewComprehensiveTaxCalculator creates a calculator for one tax year
func NewComprehensiveTaxCalculator(cfg *config.TaxYearConfig, logger Logger) *ComprehensiveTaxCalculator {
	return &ComprehensiveTaxCalculator{
		Year:           cfg.Year,
		FederalTaxCalc: NewFederalTaxCalculator(cfg, logger),
		SETaxCalc:      NewSelfEmploymentTaxCalculator(cfg.SelfEmployment),
	}
}

// Calculate produces the full TaxComputationResult plus the bracket table
// that was applied (needed downstream by the advisor)
func (ctc *ComprehensiveTaxCalculator) Calculate(s domain.TaxScenario) (domain.TaxComputationResult, config.BracketTable) {
	fed := ctc.FederalTaxCalc.Calculate(s)
	seTax := ctc.SETaxCalc.Calculate(s)
	total := fed.FederalTax.Add(seTax)

	return domain.TaxComputationResult{
		AdjustedGrossIncome: fed.AdjustedGrossIncome,
		TaxableIncome:       fed.TaxableIncome,
		FederalTax:          fed.FederalTax,
		SelfEmploymentTax:   seTax,
		TotalTax:            total,
		EffectiveRate:       EffectiveRate(total, s.Income),
		MarginalRate:        MarginalRate(fed.TaxableIncome, fed.Brackets),
		TaxYear:             ctc.Year,
		BracketStatus:       fed.BracketStatus,
	}, fed.Brackets
}

// EffectiveRate is total tax as a percentage of gross income, 2 places
func EffectiveRate(totalTax, income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalTax.Div(income).Mul(hundred).Round(2)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
