package output

// DefaultAssumptions lists key modeling assumptions rendered in text output.
var DefaultAssumptions = []string{
	"Federal ordinary income brackets only; no state or local tax",
	"Self-employment tax uses income x 0.9235 x 15.3% with no wage base cap unless configured",
	"Deductions are supplied by the caller; no standard deduction is applied automatically",
	"No credits, AMT, capital gains or payroll withholding",
	"Insight savings are estimates at the current marginal rate",
}
