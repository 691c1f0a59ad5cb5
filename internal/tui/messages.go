package tui

import "github.com/rgehrsitz/taxadvisor/internal/domain"

// Message types for the Bubble Tea update cycle

// AdviceComputedMsg carries the result of one recomputation. Seq identifies
// the edit that triggered it so that results arriving out of order can be
// discarded.
type AdviceComputedMsg struct {
	Seq    int
	Result *domain.AdvisoryResult
	Err    error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
