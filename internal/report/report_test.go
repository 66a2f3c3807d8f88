package report

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
)

var (
	fixedHost = HostSnapshot{
		Platform:    "linux",
		OSVersion:   "6.1.0",
		Cwd:         "/work",
		MachineName: "ci-runner",
		User:        "builder",
		UserDomain:  "CI",
	}
	fixedTime = time.Date(2024, time.March, 5, 7, 4, 9, 0, time.Local)
)

func parseDocument(t *testing.T, d *Document) *etree.Document {
	t.Helper()

	data, err := d.Bytes()
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(data))
	return parsed
}

func attr(t *testing.T, el *etree.Element, key string) string {
	t.Helper()
	require.NotNil(t, el)
	a := el.SelectAttr(key)
	require.NotNil(t, a, "missing attribute %q on <%s>", key, el.Tag)
	return a.Value
}

func mathSession() model.Session {
	return model.Session{
		Browser:  "Chromium",
		TestFile: "/work/test/math.test.js",
		Result: &model.Suite{
			Suites: []model.Suite{{
				Name: "Math",
				Tests: []model.Test{
					{Name: "adds", Passed: true, Duration: 10},
					{
						Name:     "subtracts",
						Duration: 5,
						Error: &model.TestError{
							Name:    "AssertionError",
							Message: "expected 1 got 2",
							Stack:   "AssertionError: expected 1 got 2\n    at http://localhost:8000/test/math.test.js:5:3",
						},
					},
				},
			}},
		},
	}
}

func TestProcessTestPassed(t *testing.T) {
	t.Parallel()

	el, state := processTest(model.Test{Name: "adds", Passed: true, Duration: 1500})

	require.Equal(t, "test-case", el.Tag)
	require.Equal(t, "adds", attr(t, el, "name"))
	require.Equal(t, "True", attr(t, el, "executed"))
	require.Equal(t, ResultSuccess, attr(t, el, "result"))
	require.Equal(t, "True", attr(t, el, "success"))
	require.Equal(t, "1.5", attr(t, el, "time"))
	require.Nil(t, el.SelectElement("failure"))
	require.Equal(t, model.State{Success: true, Time: 1500 * time.Millisecond, Total: 1}, state)
}

func TestProcessTestAttributeOrder(t *testing.T) {
	t.Parallel()

	el, _ := processTest(model.Test{Name: "adds", Passed: true})
	keys := make([]string, 0, len(el.Attr))
	for _, a := range el.Attr {
		keys = append(keys, a.Key)
	}
	require.Equal(t, []string{"name", "executed", "result", "success", "time"}, keys)
}

func TestProcessTestFailed(t *testing.T) {
	t.Parallel()

	el, state := processTest(model.Test{
		Name:     "subtracts",
		Duration: 5,
		Error:    &model.TestError{Name: "AssertionError", Message: "expected 1 got 2", Stack: "at foo (http://127.0.0.1:9876/a.js:1:2)"},
	})

	require.Equal(t, "True", attr(t, el, "executed"))
	require.Equal(t, ResultFailure, attr(t, el, "result"))
	require.Equal(t, "False", attr(t, el, "success"))
	require.Equal(t, "0.005", attr(t, el, "time"))

	failure := el.SelectElement("failure")
	require.NotNil(t, failure)
	require.Equal(t, "AssertionError: expected 1 got 2", failure.SelectElement("message").Text())
	require.Equal(t, "at foo (/a.js:1:2)", failure.SelectElement("stack-trace").Text())
	require.Equal(t, model.State{Success: false, Time: 5 * time.Millisecond, Total: 1, Failures: 1}, state)
}

func TestProcessTestFailedWithoutErrorDetail(t *testing.T) {
	t.Parallel()

	el, _ := processTest(model.Test{Name: "broken"})

	failure := el.SelectElement("failure")
	require.NotNil(t, failure)
	require.Equal(t, "", failure.SelectElement("message").Text())
	require.Nil(t, failure.SelectElement("stack-trace"))
}

func TestProcessTestSkippedNeverFails(t *testing.T) {
	t.Parallel()

	el, state := processTest(model.Test{
		Name:    "later",
		Skipped: true,
		Error:   &model.TestError{Name: "Error", Message: "latent"},
	})

	require.Equal(t, "False", attr(t, el, "executed"))
	require.Equal(t, ResultNotRunnable, attr(t, el, "result"))
	require.Equal(t, "False", attr(t, el, "success"))
	require.Equal(t, "0", attr(t, el, "time"))
	require.Nil(t, el.SelectElement("failure"))
	require.Equal(t, model.State{Success: true, Total: 1, Skipped: 1}, state)
}

func TestProcessSuiteDerivation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		suite        model.Suite
		wantExecuted string
		wantResult   string
		wantSuccess  string
	}{
		{
			name:         "only skipped tests",
			suite:        model.Suite{Name: "s", Tests: []model.Test{{Name: "a", Skipped: true}, {Name: "b", Skipped: true}}},
			wantExecuted: "False",
			wantResult:   ResultNotRunnable,
			wantSuccess:  "True",
		},
		{
			name:         "one failure",
			suite:        model.Suite{Name: "s", Tests: []model.Test{{Name: "a", Passed: true}, {Name: "b"}}},
			wantExecuted: "True",
			wantResult:   ResultFailure,
			wantSuccess:  "False",
		},
		{
			name:         "all executed pass alongside a skip",
			suite:        model.Suite{Name: "s", Tests: []model.Test{{Name: "a", Passed: true}, {Name: "b", Skipped: true}}},
			wantExecuted: "True",
			wantResult:   ResultSuccess,
			wantSuccess:  "True",
		},
		{
			name:         "empty suite",
			suite:        model.Suite{Name: "s"},
			wantExecuted: "False",
			wantResult:   ResultNotRunnable,
			wantSuccess:  "True",
		},
		{
			name: "failure deep in a nested suite",
			suite: model.Suite{Name: "outer", Suites: []model.Suite{{
				Name:   "middle",
				Suites: []model.Suite{{Name: "inner", Tests: []model.Test{{Name: "x"}}}},
			}}},
			wantExecuted: "True",
			wantResult:   ResultFailure,
			wantSuccess:  "False",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			el, _ := processSuite(tt.suite)
			require.Equal(t, "test-suite", el.Tag)
			require.Equal(t, suiteTypeFixture, attr(t, el, "type"))
			require.Equal(t, tt.wantExecuted, attr(t, el, "executed"))
			require.Equal(t, tt.wantResult, attr(t, el, "result"))
			require.Equal(t, tt.wantSuccess, attr(t, el, "success"))
			require.Equal(t, "0", attr(t, el, "asserts"))
			require.NotNil(t, el.SelectElement("results"))
		})
	}
}

func TestProcessSuiteOrderAndRollUp(t *testing.T) {
	t.Parallel()

	el, state := processSuite(model.Suite{
		Name: "root",
		Suites: []model.Suite{
			{Name: "first", Tests: []model.Test{{Name: "f1", Passed: true, Duration: 100}}},
			{Name: "second", Tests: []model.Test{{Name: "s1", Skipped: true}}},
		},
		Tests: []model.Test{{Name: "t1", Passed: true, Duration: 250}, {Name: "t2", Duration: 1}},
	})

	children := el.SelectElement("results").ChildElements()
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Tag+":"+attr(t, child, "name"))
	}
	require.Equal(t, []string{"test-suite:first", "test-suite:second", "test-case:t1", "test-case:t2"}, names)

	require.Equal(t, model.State{Success: false, Time: 351 * time.Millisecond, Total: 4, Failures: 1, Skipped: 1}, state)
	require.Equal(t, "0.351", attr(t, el, "time"))

	keys := make([]string, 0, len(el.Attr))
	for _, a := range el.Attr {
		keys = append(keys, a.Key)
	}
	require.Equal(t, []string{"type", "name", "executed", "result", "success", "time", "asserts"}, keys)
}

func TestProcessSessionEnvironmentErrorsDoNotCount(t *testing.T) {
	t.Parallel()

	session := model.Session{
		Browser:  "Firefox",
		TestFile: "test/net.test.js",
		Result: &model.Suite{Tests: []model.Test{
			{Name: "loads", Passed: true, Duration: 20},
		}},
		Errors: []model.TestError{
			{Message: "Request failed: /missing.js", Stack: "TypeError: Failed to fetch\n at http://localhost:8123/net.test.js"},
			{Name: "NetworkError", Message: "404 /favicon.ico"},
		},
	}

	el, state := processSession(session, Options{})

	require.Equal(t, suiteTypeAssembly, attr(t, el, "type"))
	require.Equal(t, "Firefox test/net.test.js", attr(t, el, "name"))
	require.Equal(t, ResultSuccess, attr(t, el, "result"))
	require.Equal(t, model.State{Success: true, Time: 20 * time.Millisecond, Total: 1}, state)

	failures := el.SelectElements("failure")
	require.Len(t, failures, 2)
	require.Equal(t, "TypeError: Request failed: /missing.js", failures[0].SelectElement("message").Text())
	require.Equal(t, "TypeError: Failed to fetch\n at /net.test.js", failures[0].SelectElement("stack-trace").Text())
	require.Equal(t, "NetworkError: 404 /favicon.ico", failures[1].SelectElement("message").Text())
	require.Nil(t, failures[1].SelectElement("stack-trace"))

	// results precede the environment failures
	children := el.ChildElements()
	require.Equal(t, "results", children[0].Tag)
}

func TestProcessSessionWithoutResults(t *testing.T) {
	t.Parallel()

	el, state := processSession(model.Session{Browser: "Webkit", TestFile: "a.js"}, Options{})

	require.Equal(t, model.Identity(), state)
	require.Equal(t, ResultNotRunnable, attr(t, el, "result"))
	require.Equal(t, "False", attr(t, el, "executed"))
	require.Empty(t, el.SelectElement("results").ChildElements())
}

func TestProcessSessionReportLogs(t *testing.T) {
	t.Parallel()

	session := model.Session{Browser: "Chromium", TestFile: "a.js", Logs: []string{"hello", "world"}}

	el, _ := processSession(session, Options{})
	require.Nil(t, el.SelectElement("properties"))

	el, _ = processSession(session, Options{ReportLogs: true})
	props := el.SelectElement("properties")
	require.NotNil(t, props)
	values := []string{}
	for _, p := range props.SelectElements("property") {
		require.Equal(t, "log", attr(t, p, "name"))
		values = append(values, attr(t, p, "value"))
	}
	require.Equal(t, []string{"hello", "world"}, values)
	require.Equal(t, "properties", el.ChildElements()[0].Tag)
}

func TestSessionName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Chromium test/a.test.js", SessionName(model.Session{Browser: "Chromium", TestFile: "/repo/test/a.test.js"}, "/repo"))
	require.Equal(t, "Chromium /elsewhere/a.test.js", SessionName(model.Session{Browser: "Chromium", TestFile: "/elsewhere/a.test.js"}, "/repo"))
	require.Equal(t, "Chromium rel/a.js", SessionName(model.Session{Browser: "Chromium", TestFile: "rel/a.js"}, "/repo"))
	require.Equal(t, "a.js", SessionName(model.Session{TestFile: "a.js"}, ""))
	require.Equal(t, "Chromium", SessionName(model.Session{Browser: "Chromium"}, ""))
}

func TestGenerateEndToEnd(t *testing.T) {
	t.Parallel()

	d := Generate([]model.Session{mathSession()}, fixedHost, fixedTime, Options{RootDir: "/work"})
	parsed := parseDocument(t, d)

	root := parsed.Root()
	require.Equal(t, "test-results", root.Tag)
	require.Equal(t, "", attr(t, root, "name"))
	require.Equal(t, "2", attr(t, root, "total"))
	require.Equal(t, "1", attr(t, root, "failures"))
	require.Equal(t, "0", attr(t, root, "errors"))
	require.Equal(t, "0", attr(t, root, "skipped"))
	require.Equal(t, "0", attr(t, root, "not-run"))
	require.Equal(t, "2024-3-5", attr(t, root, "date"))
	require.Equal(t, "7:4:9", attr(t, root, "time"))

	session := parsed.FindElement("/test-results/results/test-suite")
	require.Equal(t, "Chromium test/math.test.js", attr(t, session, "name"))
	require.Equal(t, ResultFailure, attr(t, session, "result"))

	suite := parsed.FindElement("//test-suite[@name='Math']")
	require.Equal(t, ResultFailure, attr(t, suite, "result"))
	require.Equal(t, "0.015", attr(t, suite, "time"))

	failing := parsed.FindElement("//test-case[@name='subtracts']")
	require.Equal(t, "AssertionError: expected 1 got 2", failing.FindElement("failure/message").Text())
	require.Equal(t, "AssertionError: expected 1 got 2\n    at /test/math.test.js:5:3", failing.FindElement("failure/stack-trace").Text())

	passing := parsed.FindElement("//test-case[@name='adds']")
	require.Nil(t, passing.SelectElement("failure"))

	require.Equal(t, model.State{Success: false, Time: 15 * time.Millisecond, Total: 2, Failures: 1}, d.Totals)
	require.Len(t, d.Sessions, 1)
	require.Equal(t, "Chromium test/math.test.js", d.Sessions[0].Name)
}

func TestGenerateEnvelope(t *testing.T) {
	t.Parallel()

	parsed := parseDocument(t, Generate(nil, fixedHost, fixedTime, Options{Name: "web"}))
	root := parsed.Root()

	children := root.ChildElements()
	require.Len(t, children, 3)
	require.Equal(t, "environment", children[0].Tag)
	require.Equal(t, "culture-info", children[1].Tag)
	require.Equal(t, "results", children[2].Tag)

	env := children[0]
	require.Equal(t, "2.5.8.0", attr(t, env, "nunit-version"))
	require.Equal(t, "2.0.50727.1433", attr(t, env, "clr-version"))
	require.Equal(t, "6.1.0", attr(t, env, "os-version"))
	require.Equal(t, "linux", attr(t, env, "platform"))
	require.Equal(t, "/work", attr(t, env, "cwd"))
	require.Equal(t, "ci-runner", attr(t, env, "machine-name"))
	require.Equal(t, "builder", attr(t, env, "user"))
	require.Equal(t, "CI", attr(t, env, "user-domain"))

	require.Equal(t, "en-US", attr(t, children[1], "current-culture"))
	require.Equal(t, "en-US", attr(t, children[1], "current-uiculture"))

	require.Equal(t, "web", attr(t, root, "name"))
}

func TestGenerateEmptyInput(t *testing.T) {
	t.Parallel()

	d := Generate([]model.Session{}, fixedHost, fixedTime, Options{})
	parsed := parseDocument(t, d)

	root := parsed.Root()
	require.Equal(t, "0", attr(t, root, "total"))
	require.Equal(t, "0", attr(t, root, "failures"))
	require.Empty(t, root.SelectElement("results").ChildElements())
	require.Equal(t, model.Identity(), d.Totals)
}

func TestGeneratePreservesSessionOrderAndMergesTotals(t *testing.T) {
	t.Parallel()

	sessions := []model.Session{
		{Browser: "Chromium", TestFile: "b.js", Result: &model.Suite{Tests: []model.Test{{Name: "x", Passed: true, Duration: 1}}}},
		{Browser: "Firefox", TestFile: "a.js", Result: &model.Suite{Tests: []model.Test{{Name: "y", Skipped: true}}}},
		mathSession(),
	}

	d := Generate(sessions, fixedHost, fixedTime, Options{RootDir: "/work"})
	parsed := parseDocument(t, d)

	names := []string{}
	for _, s := range parsed.FindElements("/test-results/results/test-suite") {
		names = append(names, attr(t, s, "name"))
	}
	require.Equal(t, []string{"Chromium b.js", "Firefox a.js", "Chromium test/math.test.js"}, names)

	root := parsed.Root()
	require.Equal(t, "4", attr(t, root, "total"))
	require.Equal(t, "1", attr(t, root, "failures"))
	require.Equal(t, "1", attr(t, root, "skipped"))
}

func TestGenerateSerializesDeclarationAndCData(t *testing.T) {
	t.Parallel()

	data, err := Generate([]model.Session{mathSession()}, fixedHost, fixedTime, Options{}).Bytes()
	require.NoError(t, err)

	out := string(data)
	require.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8" standalone="no"?>`))
	require.Contains(t, out, "<message><![CDATA[AssertionError: expected 1 got 2]]></message>")
}

func TestGenerateSplitsCDataTerminators(t *testing.T) {
	t.Parallel()

	session := model.Session{
		Browser:  "Chromium",
		TestFile: "a.js",
		Result: &model.Suite{Tests: []model.Test{{
			Name: "quotes",
			Error: &model.TestError{
				Name:    "AssertionError",
				Message: "expected ']]>' to equal 'x'",
				Stack:   "AssertionError: ]]>]]>\n    at a.js:1:1",
			},
		}}},
		Errors: []model.TestError{{Message: "request ]]> failed"}},
	}

	parsed := parseDocument(t, Generate([]model.Session{session}, fixedHost, fixedTime, Options{}))

	failing := parsed.FindElement("//test-case[@name='quotes']")
	require.Equal(t, "AssertionError: expected ']]>' to equal 'x'", failing.FindElement("failure/message").Text())
	require.Equal(t, "AssertionError: ]]>]]>\n    at a.js:1:1", failing.FindElement("failure/stack-trace").Text())

	envFailure := parsed.FindElement("/test-results/results/test-suite/failure/message")
	require.Equal(t, "request ]]> failed", envFailure.Text())
}

func TestGenerateDropsCharactersXMLDisallows(t *testing.T) {
	t.Parallel()

	session := model.Session{
		Browser:  "Chromium\x00",
		TestFile: "a.js",
		Logs:     []string{"\x1b[32mgreen\x1b[0m \x07bell"},
		Result: &model.Suite{
			Name: "suite\x01",
			Suites: []model.Suite{{
				Name: "nested \x1b[1mbold\x1b[22m",
				Tests: []model.Test{{
					Name:  "ansi \x1b[31m",
					Error: &model.TestError{Message: "\x1b[31mexpected\x1b[39m\x0b", Stack: "Error\x08\n\tat a.js:1:1"},
				}},
			}},
		},
	}

	parsed := parseDocument(t, Generate([]model.Session{session}, fixedHost, fixedTime, Options{ReportLogs: true}))

	sessionEl := parsed.FindElement("/test-results/results/test-suite")
	require.Equal(t, "Chromium a.js", attr(t, sessionEl, "name"))
	require.Equal(t, "green bell", attr(t, sessionEl.FindElement("properties/property"), "value"))
	require.NotNil(t, parsed.FindElement("//test-suite[@name='nested bold']"))

	failing := parsed.FindElement("//test-case[@name='ansi ']")
	require.NotNil(t, failing)
	require.Equal(t, "expected", failing.FindElement("failure/message").Text())
	require.Equal(t, "Error\n\tat a.js:1:1", failing.FindElement("failure/stack-trace").Text())
}

func TestGenerateSumsFractionalDurationsExactly(t *testing.T) {
	t.Parallel()

	session := model.Session{
		Browser:  "Chromium",
		TestFile: "a.js",
		Result: &model.Suite{Suites: []model.Suite{{
			Name:  "fast",
			Tests: []model.Test{{Name: "a", Passed: true, Duration: 0.1}, {Name: "b", Passed: true, Duration: 0.2}},
		}}},
	}

	parsed := parseDocument(t, Generate([]model.Session{session}, fixedHost, fixedTime, Options{}))
	require.Equal(t, "0.0003", attr(t, parsed.FindElement("//test-suite[@name='fast']"), "time"))
	require.Equal(t, "0.0001", attr(t, parsed.FindElement("//test-case[@name='a']"), "time"))
}

func TestXMLText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "plain", xmlText("plain"))
	require.Equal(t, "tab\tnl\ncr\r", xmlText("tab\tnl\ncr\r"))
	require.Equal(t, "red", xmlText("\x1b[31mred\x1b[0m"))
	require.Equal(t, "ab", xmlText("a\x00\x1f\ufffeb"))
	require.Equal(t, "x\ufffdy", xmlText("x\xffy"))
	require.Equal(t, "emoji \U0001F600", xmlText("emoji \U0001F600"))
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Generate([]model.Session{mathSession()}, fixedHost, fixedTime, Options{}).Bytes()
	require.NoError(t, err)
	second, err := Generate([]model.Session{mathSession()}, fixedHost, fixedTime, Options{}).Bytes()
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
}

func TestGeneratorUsesInjectedHostAndClock(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Options{}, WithHost(fixedHost), WithClock(func() time.Time { return fixedTime }))
	d := g.Generate([]model.Session{mathSession()})

	require.Equal(t, fixedTime, d.GeneratedAt)
	require.Equal(t, "ci-runner", attr(t, d.Root().SelectElement("environment"), "machine-name"))
}

func TestSanitizeStack(t *testing.T) {
	t.Parallel()

	sessionID := uuid.NewString()
	tests := []struct {
		name  string
		stack string
		want  string
	}{
		{
			name:  "strips dev server origin",
			stack: "at http://localhost:8000/test/a.js:1:1",
			want:  "at /test/a.js:1:1",
		},
		{
			name:  "strips session id query",
			stack: "at http://127.0.0.1:9000/a.js?wtr-session-id=abc_DEF-123:4:5",
			want:  "at /a.js:4:5",
		},
		{
			name:  "strips bare session ids",
			stack: "session " + sessionID + " crashed",
			want:  "session  crashed",
		},
		{
			name:  "strips bare loopback origin",
			stack: "at foo (localhost:8000/test/a.js:3:5)",
			want:  "at foo (/test/a.js:3:5)",
		},
		{
			name:  "strips bare ipv4 origin",
			stack: "    at 127.0.0.1:9876/b.js:1:1",
			want:  "    at /b.js:1:1",
		},
		{
			name:  "strips bracketed ipv6 origin with scheme",
			stack: "at http://[::1]:8000/c.js:2:3",
			want:  "at /c.js:2:3",
		},
		{
			name:  "strips bare bracketed ipv6 loopback",
			stack: "at [::1]:8000/c.js:2:3",
			want:  "at /c.js:2:3",
		},
		{
			name:  "keeps file positions",
			stack: "at Context.<anonymous> (test/a.js:10:5)\n    at b.js:3:1",
			want:  "at Context.<anonymous> (test/a.js:10:5)\n    at b.js:3:1",
		},
		{
			name:  "leaves ordinary hyphenated words",
			stack: "at web-test-runner-nunit-reporter/a.js",
			want:  "at web-test-runner-nunit-reporter/a.js",
		},
		{
			name:  "empty stays empty",
			stack: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, SanitizeStack(tt.stack))
		})
	}
}

func TestSanitizeStackIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Error: boom\n    at http://localhost:8000/a.js?wtr-session-id=x-y:1:2",
		"http://localhost:1http://localhost:2/",
		"id " + uuid.NewString() + "/" + uuid.NewString(),
		"plain text",
		"at foo (localhost:8000/test/a.js:3:5)\n    at 127.0.0.1:9876/b.js:1:1",
		"[::1]:8000[::1]:9000/x.js",
		"localhost:1localhost:2/",
	}
	for _, in := range inputs {
		once := SanitizeStack(in)
		require.Equal(t, once, SanitizeStack(once), "input %q", in)
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", ErrorKind(nil))
	require.Equal(t, "AssertionError", ErrorKind(&model.TestError{Name: "AssertionError", Stack: "TypeError: x"}))
	require.Equal(t, "TypeError", ErrorKind(&model.TestError{Stack: "TypeError: x is not a function\n at a.js"}))
	require.Equal(t, "", ErrorKind(&model.TestError{Stack: "at a.js:1:1"}))
	require.Equal(t, "", ErrorKind(&model.TestError{Stack: "Failure: x"}))
}

func TestFailureMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", FailureMessage(nil))
	require.Equal(t, "AssertionError: expected 1 got 2", FailureMessage(&model.TestError{Name: "AssertionError", Message: "expected 1 got 2"}))
	require.Equal(t, "RangeError: too big", FailureMessage(&model.TestError{Message: "too big", Stack: "RangeError: too big"}))
	require.Equal(t, "no kind", FailureMessage(&model.TestError{Message: "no kind"}))
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0", formatSeconds(0))
	require.Equal(t, "0", formatSeconds(-time.Second))
	require.Equal(t, "1.5", formatSeconds(1500*time.Millisecond))
	require.Equal(t, "0.01", formatSeconds(10*time.Millisecond))
	require.Equal(t, "0.0125", formatSeconds(12500*time.Microsecond))
	require.Equal(t, "0.0003", formatSeconds(300*time.Microsecond))
	require.Equal(t, "0.000000001", formatSeconds(time.Nanosecond))
	require.Equal(t, "90", formatSeconds(90*time.Second))
	require.Equal(t, "2024-12-31", formatDate(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "0:0:0", formatClock(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "23:59:58", formatClock(time.Date(2024, time.January, 1, 23, 59, 58, 0, time.UTC)))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	data, err := Generate([]model.Session{mathSession()}, fixedHost, fixedTime, Options{}).Bytes()
	require.NoError(t, err)

	other := fixedHost
	other.MachineName = "laptop"
	other.User = "someone"
	other.Cwd = "/home/someone"
	otherData, err := Generate([]model.Session{mathSession()}, other, fixedTime.Add(90*time.Minute), Options{}).Bytes()
	require.NoError(t, err)

	require.NotEqual(t, string(data), string(otherData))
	require.Equal(t, string(Normalize(data)), string(Normalize(otherData)))
	require.Contains(t, string(Normalize(data)), `user-domain="<<computed>>"`)
}
