package report

import (
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
)

const (
	suiteTypeAssembly = "Assembly"
	suiteTypeFixture  = "TestFixture"
)

// processTest renders a test-case element and returns the test's own State.
func processTest(t model.Test) (*etree.Element, model.State) {
	state := model.LeafState(t)

	el := etree.NewElement("test-case")
	el.CreateAttr("name", xmlText(t.Name))
	el.CreateAttr("executed", formatBool(!t.Skipped))
	el.CreateAttr("result", testResult(t))
	el.CreateAttr("success", formatBool(t.Passed))
	el.CreateAttr("time", formatSeconds(state.Time))

	if t.Failed() {
		el.AddChild(newFailureElement(t.Error))
	}
	return el, state
}

// processSuite renders a test-suite element for s and every descendant and
// returns the merged State of the subtree.
func processSuite(s model.Suite) (*etree.Element, model.State) {
	el := newSuiteElement(suiteTypeFixture, s.Name)
	state := processChildren(el.CreateElement("results"), s.Suites, s.Tests)
	stampSuite(el, state)
	return el, state
}

// processSession renders a session as a suite-like element. Environment errors
// are appended as failure elements without touching the returned State.
func processSession(s model.Session, opts Options) (*etree.Element, model.State) {
	el := newSuiteElement(suiteTypeAssembly, SessionName(s, opts.RootDir))

	if opts.ReportLogs && len(s.Logs) > 0 {
		props := el.CreateElement("properties")
		for _, line := range s.Logs {
			prop := props.CreateElement("property")
			prop.CreateAttr("name", "log")
			prop.CreateAttr("value", xmlText(line))
		}
	}

	results := el.CreateElement("results")
	state := model.Identity()
	if s.Result != nil {
		state = processChildren(results, s.Result.Suites, s.Result.Tests)
	}
	stampSuite(el, state)

	for i := range s.Errors {
		el.AddChild(newFailureElement(&s.Errors[i]))
	}
	return el, state
}

// processChildren appends child suites, then child tests, in declaration order.
func processChildren(results *etree.Element, suites []model.Suite, tests []model.Test) model.State {
	states := make([]model.State, 0, len(suites)+len(tests))
	for _, child := range suites {
		el, childState := processSuite(child)
		results.AddChild(el)
		states = append(states, childState)
	}
	for _, t := range tests {
		el, testState := processTest(t)
		results.AddChild(el)
		states = append(states, testState)
	}
	return model.MergeAll(states...)
}

func newSuiteElement(kind, name string) *etree.Element {
	el := etree.NewElement("test-suite")
	el.CreateAttr("type", kind)
	el.CreateAttr("name", xmlText(name))
	return el
}

func stampSuite(el *etree.Element, state model.State) {
	el.CreateAttr("executed", formatBool(state.Executed()))
	el.CreateAttr("result", suiteResult(state))
	el.CreateAttr("success", formatBool(state.Success))
	el.CreateAttr("time", formatSeconds(state.Time))
	// assertion counts are not reported by the test runner
	el.CreateAttr("asserts", "0")
}

func testResult(t model.Test) string {
	switch {
	case t.Skipped:
		return ResultNotRunnable
	case t.Passed:
		return ResultSuccess
	default:
		return ResultFailure
	}
}

func suiteResult(state model.State) string {
	switch {
	case !state.Executed():
		return ResultNotRunnable
	case state.Success:
		return ResultSuccess
	default:
		return ResultFailure
	}
}

// SessionName combines the browser with the test file path, relative to rootDir
// when the file lives beneath it.
func SessionName(s model.Session, rootDir string) string {
	file := s.TestFile
	if rootDir != "" && filepath.IsAbs(file) {
		if rel, err := filepath.Rel(rootDir, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
	}
	file = filepath.ToSlash(file)

	if s.Browser == "" {
		return file
	}
	if file == "" {
		return s.Browser
	}
	return s.Browser + " " + file
}
