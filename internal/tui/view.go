package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/tui/components"
)

// View renders the current state
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	return m.renderApp()
}

// renderApp stacks the title bar, body and status bar
func (m Model) renderApp() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderControls(),
		"  ",
		m.renderResults(),
	)

	sections := []string{m.renderTitleBar(), body}
	if m.err != nil {
		sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections, m.renderStatusBar())

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderTitleBar() string {
	year := m.engine.Config.Year
	title := TitleStyle.Render(fmt.Sprintf("Tax what-if explorer (%d)", year))
	if m.sourcePath != "" {
		title += " " + SubtitleStyle.Render(m.sourcePath)
	}
	title += "\n" + SubtitleStyle.Render(ScenarioSummary(m.Scenario()))
	if m.pending {
		title += " " + SubtitleStyle.Render("recalculating…")
	}
	return title + "\n"
}

// renderControls draws the sliders followed by the discrete fields
func (m Model) renderControls() string {
	var b strings.Builder
	for _, s := range m.sliders {
		b.WriteString(s.Render())
		b.WriteString("\n")
	}
	s := m.scenario
	b.WriteString(m.renderChoice(FieldFilingStatus, "Filing status", string(s.FilingStatus)))
	b.WriteString(m.renderChoice(FieldSelfEmployed, "Self-employed", yesNo(s.SelfEmployed)))
	b.WriteString(m.renderChoice(FieldHomeOffice, "Home office", yesNo(s.HomeOffice)))

	return ActiveBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderChoice(field int, label, value string) string {
	marker := "  "
	labelStyle := ParameterLabelStyle.Width(26)
	if m.focus == field {
		marker = SelectedItemStyle.Render("› ")
		labelStyle = labelStyle.Foreground(ColorPrimary)
	}
	return marker + labelStyle.Render(label) + ParameterValueStyle.Render(value) + "\n"
}

// renderResults draws metric cards, bracket usage, risk and insights
func (m Model) renderResults() string {
	if m.result == nil {
		return SubtitleStyle.Render("Calculating…")
	}
	c := m.result.Calculations

	total := components.NewMetricCard("Total tax", FormatCurrency(c.TotalTax))
	effective := components.NewMetricCard("Effective rate", c.EffectiveRate.StringFixed(2)+"%")
	marginal := components.NewMetricCard("Marginal rate", c.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(0)+"%")
	confidence := components.NewMetricCard("Confidence", fmt.Sprintf("%d%%", m.result.AIConfidence))

	if m.baseline != nil && m.baseline != m.result {
		b := m.baseline.Calculations
		addTrend(total, c.TotalTax.Sub(b.TotalTax), FormatCurrency)
		addTrend(effective, c.EffectiveRate.Sub(b.EffectiveRate), func(d decimal.Decimal) string {
			return d.StringFixed(2) + " pts"
		})
	}

	sections := []string{
		components.MetricRow(total, effective, marginal, confidence),
	}

	if table, _, ok := m.engine.Config.BracketsFor(c.BracketStatus); ok {
		sections = append(sections, components.NewBracketFill(table, c.TaxableIncome).Render())
	}

	risk := m.result.RiskAssessment
	riskLine := "Audit risk: " + LevelStyle(string(risk.Level)).Render(strings.ToUpper(string(risk.Level))) +
		SubtitleStyle.Render(fmt.Sprintf(" (score %d)", risk.Score))
	if len(risk.Factors) > 0 {
		riskLine += SubtitleStyle.Render(" " + strings.Join(risk.Factors, ", "))
	}
	sections = append(sections, riskLine)

	sections = append(sections, components.InsightList(m.result.Insights, m.resultsWidth()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// addTrend attaches a baseline delta to a card; lower tax is good
func addTrend(card *components.MetricCard, delta decimal.Decimal, format func(decimal.Decimal) string) {
	if delta.IsZero() {
		return
	}
	sign := "+"
	if delta.IsNegative() {
		sign = ""
	}
	card.WithTrend(delta.IsPositive(), delta.IsNegative(), sign+format(delta))
}

func (m Model) resultsWidth() int {
	w := m.width - 70
	if w < 40 {
		return 40
	}
	return w
}

func (m Model) renderStatusBar() string {
	if m.showHelp {
		return StatusBarStyle.Render(m.help.View(m.keys))
	}
	left := m.help.View(m.keys)
	if m.baseline != nil && m.result != nil && m.baseline != m.result {
		saved := m.baseline.Calculations.TotalTax.Sub(m.result.Calculations.TotalTax)
		left += SubtitleStyle.Render(fmt.Sprintf("  vs baseline: %s", FormatCurrency(saved.Neg())))
	}
	return StatusBarStyle.Render(left)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// ScenarioSummary is a one-line description of a scenario
func ScenarioSummary(s domain.TaxScenario) string {
	return fmt.Sprintf("%s income=%s deductions=%s selfEmployed=%t homeOffice=%t",
		s.FilingStatus, s.Income.StringFixed(0), s.Deductions.StringFixed(0), s.SelfEmployed, s.HomeOffice)
}
