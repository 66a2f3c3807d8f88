package model

import "time"

// State is the roll-up of counts, time and success over a result subtree.
// States form a commutative monoid under Merge with Identity as the neutral element.
type State struct {
	Success      bool
	Time         time.Duration
	Total        int
	Errors       int
	Failures     int
	Inconclusive int
	NotRun       int
	Ignored      int
	Skipped      int
	Invalid      int
}

// Identity returns the neutral State.
func Identity() State {
	return State{Success: true}
}

// LeafState returns the State contributed by a single test.
// Skipped tests never affect Success.
func LeafState(t Test) State {
	s := Identity()
	s.Total = 1
	s.Time = t.Elapsed()
	switch {
	case t.Skipped:
		s.Skipped = 1
	case !t.Passed:
		s.Failures = 1
		s.Success = false
	}
	return s
}

// Merge combines two States.
func Merge(a, b State) State {
	return State{
		Success:      a.Success && b.Success,
		Time:         a.Time + b.Time,
		Total:        a.Total + b.Total,
		Errors:       a.Errors + b.Errors,
		Failures:     a.Failures + b.Failures,
		Inconclusive: a.Inconclusive + b.Inconclusive,
		NotRun:       a.NotRun + b.NotRun,
		Ignored:      a.Ignored + b.Ignored,
		Skipped:      a.Skipped + b.Skipped,
		Invalid:      a.Invalid + b.Invalid,
	}
}

// MergeAll folds states into a single State, starting from Identity.
func MergeAll(states ...State) State {
	acc := Identity()
	for _, s := range states {
		acc = Merge(acc, s)
	}
	return acc
}

// Executed reports whether at least one non-skipped test was visited.
func (s State) Executed() bool {
	return s.Total-s.Skipped > 0
}

// Passed returns the number of tests that ran without failing.
func (s State) Passed() int {
	passed := s.Total - s.Skipped - s.Failures - s.Errors - s.Inconclusive - s.NotRun - s.Ignored - s.Invalid
	if passed < 0 {
		return 0
	}
	return passed
}
