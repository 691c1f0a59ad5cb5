package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

// JSONFormatter renders a comparison set as JSON. Money, rates and deltas are
// JSON numbers.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Name() string { return "json" }

// Format marshals the comparison set, indented when Pretty is set
func (jf *JSONFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(compSet, "", "  ")
	}
	return json.Marshal(compSet)
}

func (r ComparisonResult) MarshalJSON() ([]byte, error) {
	type plain ComparisonResult
	return json.Marshal(struct {
		plain
		FederalTax        json.Number `json:"federalTax"`
		SelfEmploymentTax json.Number `json:"selfEmploymentTax"`
		TotalTax          json.Number `json:"totalTax"`
		EffectiveRate     json.Number `json:"effectiveRate"`
		MarginalRate      json.Number `json:"marginalRate"`
		PotentialSavings  json.Number `json:"potentialSavings"`
		TaxDiffFromBase   json.Number `json:"taxDiffFromBase"`
		TaxPctFromBase    json.Number `json:"taxPctFromBase"`
	}{
		plain:             plain(r),
		FederalTax:        domain.Number(r.FederalTax),
		SelfEmploymentTax: domain.Number(r.SelfEmploymentTax),
		TotalTax:          domain.Number(r.TotalTax),
		EffectiveRate:     domain.Number(r.EffectiveRate),
		MarginalRate:      domain.Number(r.MarginalRate),
		PotentialSavings:  domain.Number(r.PotentialSavings),
		TaxDiffFromBase:   domain.Number(r.TaxDiffFromBase),
		TaxPctFromBase:    domain.Number(r.TaxPctFromBase),
	})
}
