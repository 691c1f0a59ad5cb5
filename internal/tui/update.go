package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case AdviceComputedMsg:
		if msg.Seq != m.seq {
			// superseded by a later edit
			return m, nil
		}
		m.pending = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.result = msg.Result
		if m.baseline == nil {
			m.baseline = msg.Result
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.adjust(true) {
			return m, m.recompute()
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.adjust(false) {
			return m, m.recompute()
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.toggle() {
			return m, m.recompute()
		}
		return m, nil

	case key.Matches(msg, m.keys.Baseline):
		if m.result != nil {
			m.baseline = m.result
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.scenario = m.initial
		m.sliders = newSliders(m.initial)
		m.setFocus(m.focus)
		return m, m.recompute()
	}

	return m, nil
}

// adjust moves the focused control one step and reports whether anything changed.
// Left and right also work on the non-slider fields.
func (m *Model) adjust(up bool) bool {
	if m.focus < sliderCount {
		if up {
			return m.sliders[m.focus].Increment()
		}
		return m.sliders[m.focus].Decrement()
	}
	return m.toggle()
}

// toggle flips the focused boolean field or cycles the filing status
func (m *Model) toggle() bool {
	switch m.focus {
	case FieldFilingStatus:
		m.scenario.FilingStatus = m.scenario.FilingStatus.Next()
	case FieldSelfEmployed:
		m.scenario.SelfEmployed = !m.scenario.SelfEmployed
	case FieldHomeOffice:
		m.scenario.HomeOffice = !m.scenario.HomeOffice
	default:
		return false
	}
	return true
}
