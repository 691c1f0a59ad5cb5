package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

// TextFormatter renders a result as styled, human-readable text that fits an
// 80-column terminal
type TextFormatter struct {
	Styles      Styles
	Assumptions bool // append the modeling assumptions
}

func (tf TextFormatter) Name() string { return "text" }

// Format generates the text report
func (tf TextFormatter) Format(result *domain.AdvisoryResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := tf.Write(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the text report to w
func (tf TextFormatter) Write(w io.Writer, result *domain.AdvisoryResult) error {
	if result == nil {
		return fmt.Errorf("nil advisory result")
	}
	s := tf.Styles
	c := result.Calculations

	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== Federal tax summary (%d) ===", c.TaxYear)))
	fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf("    brackets: %s", c.BracketStatus)))
	fmt.Fprintln(w)

	tf.summaryLine(w, "Adjusted gross income", FormatCurrency(c.AdjustedGrossIncome))
	tf.summaryLine(w, "Taxable income", FormatCurrency(c.TaxableIncome))
	tf.summaryLine(w, "Federal income tax", FormatCurrency(c.FederalTax))
	tf.summaryLine(w, "Self-employment tax", FormatCurrency(c.SelfEmploymentTax))
	tf.summaryLine(w, "Total tax", FormatCurrency(c.TotalTax))
	tf.summaryLine(w, "Effective rate", FormatPercentage(c.EffectiveRate))
	tf.summaryLine(w, "Marginal rate", FormatRate(c.MarginalRate))
	fmt.Fprintln(w)

	tf.writeInsights(w, result.Insights)
	tf.writeRisk(w, result.RiskAssessment)

	fmt.Fprintf(w, "\n%s\n", s.Header.Render(fmt.Sprintf(
		"%d insight(s), %d optimization(s), overall confidence %d%%",
		len(result.Insights), len(result.Optimizations), result.AIConfidence)))

	if len(result.SkippedRules) > 0 {
		fmt.Fprintln(w, s.Muted.Render("Skipped rules: "+strings.Join(result.SkippedRules, ", ")))
	}

	if tf.Assumptions {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.SubHeader.Render("Assumptions:"))
		for _, a := range DefaultAssumptions {
			fmt.Fprintln(w, s.Muted.Render(wrap(a, 76, "    ")))
		}
	}
	return nil
}

func (tf TextFormatter) summaryLine(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s%s\n", tf.Styles.SummaryLabel.Render(label), tf.Styles.SummaryValue.Render(value))
}

func (tf TextFormatter) writeInsights(w io.Writer, insights []domain.Insight) {
	s := tf.Styles
	if len(insights) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No insights for this scenario."))
		return
	}

	// PRIORITY=8, TYPE=12, IMPACT=10, CONF=5, TITLE gets the rest of 76 cols.
	const maxTitle = 30
	rows := make([][]string, 0, len(insights))
	for _, in := range insights {
		title := in.Title
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}
		rows = append(rows, []string{
			string(in.Priority),
			string(in.Type),
			title,
			FormatCurrency(in.ImpactAmount),
			fmt.Sprintf("%d%%", in.ConfidencePercent),
		})
	}

	t := table.New().
		Width(76).
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 0 && row >= 0 && row < len(rows) {
				return s.PriorityStyle(domain.Priority(rows[row][0]))
			}
			if col == 3 && row >= 0 && row < len(insights) && insights[row].ImpactAmount.IsPositive() {
				return s.Saving
			}
			return s.TableCell
		}).
		Headers("PRIORITY", "TYPE", "INSIGHT", "SAVINGS", "CONF").
		Rows(rows...)

	fmt.Fprintln(w, t)

	for i, in := range insights {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s.PriorityStyle(in.Priority).Render(in.Title))
		fmt.Fprintln(w, s.Muted.Render(wrap(in.Description, 72, "     ")))
	}
}

func (tf TextFormatter) writeRisk(w io.Writer, ra domain.AuditRiskAssessment) {
	s := tf.Styles
	level := s.RiskStyle(ra.Level).Render(strings.ToUpper(string(ra.Level)))
	fmt.Fprintf(w, "\n%s %s (score %d)\n", s.Header.Render("Audit risk:"), level, ra.Score)
	for i, f := range ra.Factors {
		fmt.Fprintf(w, "  - %s\n", f)
		if i < len(ra.Recommendations) {
			fmt.Fprintln(w, s.Muted.Render(wrap(ra.Recommendations[i], 76, "    ")))
		}
	}
}

// wrap breaks text on spaces so no line exceeds width, prefixing each line
func wrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := indent + words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = indent + word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
