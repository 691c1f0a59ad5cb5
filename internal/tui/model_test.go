package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxadvisor/internal/advisor"
	"github.com/rgehrsitz/taxadvisor/internal/advisory"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
)

func selfEmployedScenario() domain.TaxScenario {
	return domain.TaxScenario{
		Income:                  decimal.NewFromInt(85000),
		FilingStatus:            domain.FilingSingle,
		Deductions:              decimal.NewFromInt(13850),
		RetirementContributions: decimal.NewFromInt(6000),
		SelfEmployed:            true,
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	engine, err := advisory.NewDefaultEngine()
	require.NoError(t, err)

	m := NewModel(engine, selfEmployedScenario(), "scenario_b.yaml")
	return run(t, m, m.Init())
}

// run executes cmd synchronously and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel_InitComputesAdvice(t *testing.T) {
	m := newTestModel(t)

	require.NotNil(t, m.Result())
	assert.Equal(t, "21651", m.Result().Calculations.TotalTax.String())
	assert.Same(t, m.Result(), m.Baseline(), "first result becomes the baseline")
	assert.Len(t, m.Result().Insights, 3)
}

func TestModel_SliderRecomputes(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	assert.Equal(t, "90000", m.Scenario().Income.String())

	m = run(t, m, cmd)
	assert.Equal(t, "84000", m.Result().Calculations.AdjustedGrossIncome.String())
	assert.True(t, m.Result().Calculations.TotalTax.GreaterThan(m.Baseline().Calculations.TotalTax))

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = run(t, m, cmd)
	assert.Equal(t, "79000", m.Result().Calculations.AdjustedGrossIncome.String())
}

func TestModel_SliderStopsAtZero(t *testing.T) {
	engine, err := advisory.NewDefaultEngine()
	require.NoError(t, err)
	s := selfEmployedScenario()
	s.Deductions = decimal.Zero
	m := NewModel(engine, s, "")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, FieldDeductions, m.Focus())

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd, "no recompute when the value cannot move")
}

func TestModel_StaleResultIgnored(t *testing.T) {
	m := newTestModel(t)

	m, first := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, second := press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	staleMsg := first()
	m = run(t, m, second)
	assert.Equal(t, "89000", m.Result().Calculations.AdjustedGrossIncome.String())

	next, _ := m.Update(staleMsg)
	m = next.(Model)
	assert.Equal(t, "89000", m.Result().Calculations.AdjustedGrossIncome.String())
}

func TestModel_ToggleFields(t *testing.T) {
	m := newTestModel(t)

	for i := 0; i < FieldFilingStatus; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)
	assert.Equal(t, domain.FilingMarriedJoint, m.Scenario().FilingStatus)
	assert.Equal(t, domain.FilingMarriedJoint, m.Result().Calculations.BracketStatus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, FieldHomeOffice, m.Focus())
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)
	assert.True(t, m.Scenario().HomeOffice)
	for _, in := range m.Result().Insights {
		assert.NotEqual(t, advisor.RuleHomeOffice, in.Rule)
	}

	// focus wraps around
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, FieldIncome, m.Focus())
}

func TestModel_BaselineAndReset(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = run(t, m, cmd)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.Same(t, m.Result(), m.Baseline())

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = run(t, m, cmd)
	assert.Equal(t, "85000", m.Scenario().Income.String())
	assert.Equal(t, "21651", m.Result().Calculations.TotalTax.String())
	assert.NotSame(t, m.Result(), m.Baseline())
}

func TestModel_ErrorResult(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(ErrorMsg{Err: assert.AnError})
	m = next.(Model)
	assert.Contains(t, m.View(), "Error: ")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Tax what-if explorer (2023)")
	assert.Contains(t, view, "scenario_b.yaml")
	assert.Contains(t, view, "Total tax")
	assert.Contains(t, view, "$21,651")
	assert.Contains(t, view, "Home office deduction opportunity")
	assert.Contains(t, view, "Bracket usage")
	assert.Contains(t, view, "Audit risk")
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t)
	short := m.View()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Contains(t, m.View(), "set baseline")
	assert.NotContains(t, short, "set baseline")
}
