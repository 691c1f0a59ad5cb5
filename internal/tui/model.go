// Package tui is an interactive what-if explorer: the user adjusts a tax
// scenario and the advice is recomputed on every edit.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxadvisor/internal/advisory"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/tui/components"
)

// Field indexes in focus order. The first four are sliders.
const (
	FieldIncome = iota
	FieldDeductions
	FieldBusinessExpenses
	FieldRetirement
	FieldFilingStatus
	FieldSelfEmployed
	FieldHomeOffice

	fieldCount
	sliderCount = FieldFilingStatus
)

// Model is the main application model
type Model struct {
	engine     *advisory.Engine
	sourcePath string

	// scenario holds the non-slider fields; slider values are merged in by Scenario()
	scenario domain.TaxScenario
	initial  domain.TaxScenario
	sliders  []*components.ParameterSlider
	focus    int

	result   *domain.AdvisoryResult
	baseline *domain.AdvisoryResult
	seq      int
	pending  bool

	width  int
	height int

	keys     keyMap
	help     help.Model
	showHelp bool
	err      error
}

// NewModel creates the model for a scenario. path is only shown in the title bar.
func NewModel(engine *advisory.Engine, scenario domain.TaxScenario, path string) Model {
	m := Model{
		engine:     engine,
		sourcePath: path,
		scenario:   scenario,
		initial:    scenario,
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      100,
		height:     40,
	}
	m.sliders = newSliders(scenario)
	m.setFocus(FieldIncome)
	return m
}

func newSliders(s domain.TaxScenario) []*components.ParameterSlider {
	mk := func(field, label string, value decimal.Decimal, max, step int64, desc string) *components.ParameterSlider {
		upper := decimal.Max(decimal.NewFromInt(max), value)
		return components.NewParameterSlider(field, label, value, decimal.Zero, upper, decimal.NewFromInt(step)).
			WithDescription(desc)
	}
	return []*components.ParameterSlider{
		mk("income", "Gross income", s.Income, 500000, 5000, "Annual gross income before any adjustment"),
		mk("deductions", "Deductions", s.Deductions, 100000, 1000, "Standard or itemized deduction total"),
		mk("businessExpenses", "Business expenses", s.BusinessExpenses, 250000, 2500, "Deductible business expenses"),
		mk("retirementContributions", "Retirement contributions", s.RetirementContributions, 30000, 500, "Pre-tax retirement contributions"),
	}
}

// Init kicks off the first computation
func (m Model) Init() tea.Cmd {
	return computeCmd(m.engine, m.Scenario(), m.seq)
}

// Scenario returns the scenario currently described by the controls
func (m Model) Scenario() domain.TaxScenario {
	s := m.scenario
	s.Income = m.sliders[FieldIncome].Value
	s.Deductions = m.sliders[FieldDeductions].Value
	s.BusinessExpenses = m.sliders[FieldBusinessExpenses].Value
	s.RetirementContributions = m.sliders[FieldRetirement].Value
	return s
}

// Result returns the latest computed advice, nil before the first one arrives
func (m Model) Result() *domain.AdvisoryResult {
	return m.result
}

// Baseline returns the pinned comparison result, if any
func (m Model) Baseline() *domain.AdvisoryResult {
	return m.baseline
}

// Focus returns the focused field index
func (m Model) Focus() int {
	return m.focus
}

func (m *Model) setFocus(i int) {
	m.focus = (i + fieldCount) % fieldCount
	for idx, s := range m.sliders {
		s.SetFocused(idx == m.focus)
	}
}

// recompute bumps the sequence and returns a command for the current scenario
func (m *Model) recompute() tea.Cmd {
	m.seq++
	m.pending = true
	return computeCmd(m.engine, m.Scenario(), m.seq)
}

// computeCmd returns a command that runs the advisory pipeline
func computeCmd(engine *advisory.Engine, s domain.TaxScenario, seq int) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.ComputeTaxAdvice(s)
		return AdviceComputedMsg{Seq: seq, Result: result, Err: err}
	}
}
