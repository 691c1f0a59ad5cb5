package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

// CSVFormatter writes one row per insight, each carrying the scenario totals
// so the file stands alone in a spreadsheet
type CSVFormatter struct{}

func (cf CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"TaxYear",
	"TotalTax",
	"EffectiveRate",
	"MarginalRate",
	"Rank",
	"Rule",
	"Type",
	"Priority",
	"Title",
	"ImpactAmount",
	"ConfidencePercent",
	"ActionRequired",
	"Category",
}

// Format generates CSV output for one result
func (cf CSVFormatter) Format(result *domain.AdvisoryResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	c := result.Calculations
	for i, in := range result.Insights {
		row := []string{
			strconv.Itoa(c.TaxYear),
			c.TotalTax.StringFixed(2),
			c.EffectiveRate.StringFixed(2),
			c.MarginalRate.String(),
			strconv.Itoa(i + 1),
			in.Rule,
			string(in.Type),
			string(in.Priority),
			in.Title,
			in.ImpactAmount.StringFixed(2),
			strconv.Itoa(in.ConfidencePercent),
			strconv.FormatBool(in.ActionRequired),
			in.Category,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
