package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// BracketFill shows how much of each bracket the taxable income uses. The
// unbounded top bracket is drawn full once income reaches it.
type BracketFill struct {
	Brackets config.BracketTable
	Taxable  decimal.Decimal
	Width    int
}

// NewBracketFill creates a bracket chart
func NewBracketFill(brackets config.BracketTable, taxable decimal.Decimal) *BracketFill {
	return &BracketFill{Brackets: brackets, Taxable: taxable, Width: 24}
}

// WithWidth sets the bar width
func (b *BracketFill) WithWidth(width int) *BracketFill {
	b.Width = width
	return b
}

// Fill returns the used fraction (0..1) of bracket i
func (b *BracketFill) Fill(i int) float64 {
	br := b.Brackets[i]
	if !b.Taxable.GreaterThan(br.Min) {
		return 0
	}
	if br.Unbounded() {
		return 1
	}
	span := br.Max.Sub(br.Min)
	used := decimal.Min(b.Taxable.Sub(br.Min), span)
	return used.Div(span).InexactFloat64()
}

// Render draws one bar per bracket
func (b *BracketFill) Render() string {
	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Bold(true).Render("Bracket usage"))

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)
	rateStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Width(5)

	for i, br := range b.Brackets {
		filled := int(float64(b.Width)*b.Fill(i) + 0.5)
		if filled > b.Width {
			filled = b.Width
		}
		rate := br.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"

		content.WriteString("\n")
		content.WriteString(rateStyle.Render(rate))
		content.WriteString("[")
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		content.WriteString(emptyStyle.Render(strings.Repeat("░", b.Width-filled)))
		content.WriteString("] ")
		content.WriteString(tuistyles.SubtitleStyle.Render(b.rangeLabel(br)))
	}

	return content.String()
}

func (b *BracketFill) rangeLabel(br config.Bracket) string {
	if br.Unbounded() {
		return fmt.Sprintf("%s+", tuistyles.FormatCurrency(br.Min))
	}
	return fmt.Sprintf("%s-%s", tuistyles.FormatCurrency(br.Min), tuistyles.FormatCurrency(*br.Max))
}
