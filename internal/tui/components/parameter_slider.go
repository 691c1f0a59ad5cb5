package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxadvisor/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider edits one money field of a scenario in fixed steps
type ParameterSlider struct {
	Field       string // scenario field the slider drives
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Width       int // width of the slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider; value is clamped into [min, max]
func NewParameterSlider(field, label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Field: field,
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
	p.SetValue(value)
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment raises the value by one step, stopping at Max.
// It reports whether the value changed.
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value.Add(p.Step))
}

// Decrement lowers the value by one step, stopping at Min.
// It reports whether the value changed.
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value.Sub(p.Step))
}

// SetValue sets the value, clamping to [Min, Max], and reports whether it changed
func (p *ParameterSlider) SetValue(value decimal.Decimal) bool {
	clamped := decimal.Max(p.Min, decimal.Min(p.Max, value))
	if clamped.Equal(p.Value) {
		return false
	}
	p.Value = clamped
	return true
}

// Fraction returns the value's position in the range as 0..1
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// Render returns the single-line styled slider
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle.Width(26)
	valueStyle := tuistyles.ParameterValueStyle.Width(12)
	marker := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		marker = tuistyles.SelectedItemStyle.Render("› ")
	}

	line := marker + labelStyle.Render(p.Label) + valueStyle.Render(tuistyles.FormatCurrency(p.Value)) + p.renderSliderBar()
	if p.IsFocused && p.Description != "" {
		descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)
		line += "\n    " + descStyle.Render(p.Description)
	}
	return line
}

// renderSliderBar draws the track with the thumb at the current value
func (p *ParameterSlider) renderSliderBar() string {
	if p.Width < 2 {
		return ""
	}
	filled := int(float64(p.Width-1)*p.Fraction() + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width-1 {
		filled = p.Width - 1
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled) + "●"))
	bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", p.Width-1-filled)))
	bar.WriteString("]")
	return bar.String()
}

// String is the plain label=value form used in logs and tests
func (p *ParameterSlider) String() string {
	return fmt.Sprintf("%s=%s", p.Field, p.Value.String())
}
