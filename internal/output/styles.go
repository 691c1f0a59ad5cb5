package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

// Styles defines the visual theme for terminal output.
// Lipgloss degrades to no-color when output is not a TTY.
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style

	// High, Medium and Low color-code insight priority and risk level.
	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style

	SummaryLabel lipgloss.Style
	SummaryValue lipgloss.Style

	Saving lipgloss.Style
	Border lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns the default color scheme
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		High:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Medium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Low:    lipgloss.NewStyle().Foreground(lipgloss.Color("40")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		SummaryLabel: lipgloss.NewStyle().Bold(true).Width(24),
		SummaryValue: lipgloss.NewStyle(),

		Saving: lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// PriorityStyle returns the style for an insight priority
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.High
	case domain.PriorityMedium:
		return s.Medium
	case domain.PriorityLow:
		return s.Low
	default:
		return s.Muted
	}
}

// RiskStyle returns the style for an audit risk level
func (s Styles) RiskStyle(l domain.RiskLevel) lipgloss.Style {
	switch l {
	case domain.RiskHigh:
		return s.High
	case domain.RiskMedium:
		return s.Medium
	case domain.RiskLow:
		return s.Low
	default:
		return s.Muted
	}
}
