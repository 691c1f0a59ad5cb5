package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/tui/tuistyles"
)

// InsightCard displays one ranked advisor insight
type InsightCard struct {
	Rank    int
	Insight domain.Insight
	Width   int
}

// NewInsightCard creates a new insight card
func NewInsightCard(rank int, insight domain.Insight) *InsightCard {
	return &InsightCard{Rank: rank, Insight: insight, Width: 60}
}

// WithWidth sets the card width
func (c *InsightCard) WithWidth(width int) *InsightCard {
	c.Width = width
	return c
}

// Render returns the styled insight with its description
func (c *InsightCard) Render() string {
	in := c.Insight
	var content strings.Builder

	priority := tuistyles.LevelStyle(string(in.Priority)).Render(strings.ToUpper(string(in.Priority)))
	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground).Render(in.Title)
	content.WriteString(fmt.Sprintf("%d. %s %s", c.Rank, priority, title))

	var facts []string
	if in.ImpactAmount.IsPositive() {
		facts = append(facts, lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess).Render("saves ~"+tuistyles.FormatCurrency(in.ImpactAmount)))
	}
	facts = append(facts, fmt.Sprintf("%d%% confidence", in.ConfidencePercent))
	if in.ActionRequired {
		facts = append(facts, "action required")
	}
	content.WriteString("\n   ")
	content.WriteString(tuistyles.SubtitleStyle.Render(strings.Join(facts, " • ")))

	desc := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(c.Width - 3).
		Render(in.Description)
	for _, line := range strings.Split(desc, "\n") {
		content.WriteString("\n   " + line)
	}

	return content.String()
}

// InsightList renders the insights in rank order
func InsightList(insights []domain.Insight, width int) string {
	if len(insights) == 0 {
		return tuistyles.SubtitleStyle.Render("No insights for this scenario.")
	}
	cards := make([]string, 0, len(insights))
	for i, in := range insights {
		cards = append(cards, NewInsightCard(i+1, in).WithWidth(width).Render())
	}
	return strings.Join(cards, "\n\n")
}
