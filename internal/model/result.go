// Package model defines the test result tree consumed by the reporter and the
// aggregate State rolled up from it.
package model

import (
	"math"
	"time"
)

// TestError describes a failure raised by a test or by the test environment.
// Every field is optional.
type TestError struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Stack   string `json:"stack,omitempty" yaml:"stack,omitempty"`
}

// Test is a single test outcome.
type Test struct {
	Name     string     `json:"name" yaml:"name"`
	Passed   bool       `json:"passed" yaml:"passed"`
	Skipped  bool       `json:"skipped" yaml:"skipped"`
	Duration float64    `json:"duration,omitempty" yaml:"duration,omitempty"` // milliseconds
	Error    *TestError `json:"error,omitempty" yaml:"error,omitempty"`
}

// Suite groups tests and nested suites in definition order.
type Suite struct {
	Name   string  `json:"name" yaml:"name"`
	Suites []Suite `json:"suites,omitempty" yaml:"suites,omitempty"`
	Tests  []Test  `json:"tests,omitempty" yaml:"tests,omitempty"`
}

// Session is one execution of a test file under a given browser.
type Session struct {
	Browser  string      `json:"browser" yaml:"browser"`
	TestFile string      `json:"testFile" yaml:"testFile"`
	Result   *Suite      `json:"testResults,omitempty" yaml:"testResults,omitempty"`
	Errors   []TestError `json:"errors,omitempty" yaml:"errors,omitempty"`
	Logs     []string    `json:"logs,omitempty" yaml:"logs,omitempty"`
}

// Failed reports whether the test ran and did not pass.
func (t Test) Failed() bool {
	return !t.Skipped && !t.Passed
}

// Elapsed converts Duration to a time.Duration rounded to the nanosecond.
// Missing, negative and NaN durations are zero.
func (t Test) Elapsed() time.Duration {
	ns := t.Duration * float64(time.Millisecond)
	switch {
	case !(ns > 0):
		return 0
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(math.Round(ns))
}
