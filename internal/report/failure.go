package report

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
)

var (
	// stackKindPattern matches a leading "<Word>Error:" token such as "TypeError:".
	stackKindPattern = regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*Error):`)

	// volatilePattern matches text that changes between runs: host:port origins
	// with or without a scheme, session id query parameters and bare hex
	// xxxx-xxxx-xxxx-xxxx-xxxx session ids. Without a scheme only loopback names,
	// IPv4 addresses and bracketed IPv6 addresses count as hosts, so file:line
	// positions survive.
	volatilePattern = regexp.MustCompile(
		`https?://(?:\[[0-9A-Fa-f:.]+\]|[^/\s:\[\]]+):\d+` +
			`|(?:\blocalhost|\b\d{1,3}(?:\.\d{1,3}){3}|\[[0-9A-Fa-f.]*:[0-9A-Fa-f:.]*\]):\d+` +
			`|[?&]wtr-session-id=[\w-]+` +
			`|\b[0-9A-Fa-f]{4,}(?:-[0-9A-Fa-f]{4,}){4}\b`,
	)
)

// SanitizeStack removes host:port origins and session identifiers from a stack trace.
// It is idempotent.
func SanitizeStack(stack string) string {
	for {
		next := volatilePattern.ReplaceAllString(stack, "")
		if next == stack {
			return next
		}
		stack = next
	}
}

// ErrorKind returns the declared error name, falling back to the kind that
// prefixes the stack trace.
func ErrorKind(e *model.TestError) string {
	if e == nil {
		return ""
	}
	if e.Name != "" {
		return e.Name
	}
	if m := stackKindPattern.FindStringSubmatch(e.Stack); m != nil {
		return m[1]
	}
	return ""
}

// FailureMessage formats an error as "<Kind>: <message>". An unknown kind leaves
// the message on its own.
func FailureMessage(e *model.TestError) string {
	if e == nil {
		return ""
	}
	kind := ErrorKind(e)
	if kind == "" {
		return e.Message
	}
	return kind + ": " + e.Message
}

// newFailureElement builds a failure element for the given error. The
// stack-trace child is omitted when no stack is available.
func newFailureElement(e *model.TestError) *etree.Element {
	failure := etree.NewElement("failure")
	createCData(failure.CreateElement("message"), FailureMessage(e))

	if e != nil && strings.TrimSpace(e.Stack) != "" {
		createCData(failure.CreateElement("stack-trace"), SanitizeStack(e.Stack))
	}
	return failure
}
