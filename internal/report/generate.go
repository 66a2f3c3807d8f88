// Package report assembles NUnit-2 XML reports from test session results.
//
// The assembly is a pure function of the sessions, a HostSnapshot and a clock
// reading: every session is walked recursively, each node's element is stamped
// with attributes derived from the State rolled up from its children, and the
// grand total is written to the root element.
package report

import (
	"bytes"
	"io"
	"time"

	"github.com/beevik/etree"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
)

const (
	nunitVersion = "2.5.8.0"
	clrVersion   = "2.0.50727.1433"
	cultureName  = "en-US"

	xmlDeclaration = `version="1.0" encoding="utf-8" standalone="no"`
)

// Options tunes report assembly.
type Options struct {
	// Name is written to the root name attribute.
	Name string
	// RootDir shortens session test file paths that live beneath it.
	RootDir string
	// ReportLogs emits session logs as properties of the session suite.
	ReportLogs bool
}

// SessionSummary is the roll-up of a single session.
type SessionSummary struct {
	Name     string
	State    model.State
	EnvFails int
}

// Document is a generated report. It is not modified after Generate returns.
type Document struct {
	doc         *etree.Document
	Totals      model.State
	Sessions    []SessionSummary
	GeneratedAt time.Time
}

// Generate builds the report for sessions, preserving their order.
func Generate(sessions []model.Session, host HostSnapshot, now time.Time, opts Options) *Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDeclaration)

	root := doc.CreateElement("test-results")
	appendEnvironment(root, host)

	culture := root.CreateElement("culture-info")
	culture.CreateAttr("current-culture", cultureName)
	culture.CreateAttr("current-uiculture", cultureName)

	results := root.CreateElement("results")
	states := make([]model.State, 0, len(sessions))
	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		el, state := processSession(session, opts)
		results.AddChild(el)
		states = append(states, state)
		summaries = append(summaries, SessionSummary{
			Name:     SessionName(session, opts.RootDir),
			State:    state,
			EnvFails: len(session.Errors),
		})
	}

	totals := model.MergeAll(states...)
	stampRoot(root, opts.Name, totals, now)
	doc.Indent(2)

	return &Document{
		doc:         doc,
		Totals:      totals,
		Sessions:    summaries,
		GeneratedAt: now,
	}
}

func appendEnvironment(root *etree.Element, host HostSnapshot) {
	env := root.CreateElement("environment")
	env.CreateAttr("nunit-version", nunitVersion)
	env.CreateAttr("clr-version", clrVersion)
	env.CreateAttr("os-version", xmlText(host.OSVersion))
	env.CreateAttr("platform", xmlText(host.Platform))
	env.CreateAttr("cwd", xmlText(host.Cwd))
	env.CreateAttr("machine-name", xmlText(host.MachineName))
	env.CreateAttr("user", xmlText(host.User))
	env.CreateAttr("user-domain", xmlText(host.UserDomain))
}

func stampRoot(root *etree.Element, name string, totals model.State, now time.Time) {
	root.CreateAttr("name", name)
	root.CreateAttr("total", formatCount(totals.Total))
	root.CreateAttr("errors", formatCount(totals.Errors))
	root.CreateAttr("failures", formatCount(totals.Failures))
	root.CreateAttr("inconclusive", formatCount(totals.Inconclusive))
	root.CreateAttr("not-run", formatCount(totals.NotRun))
	root.CreateAttr("ignored", formatCount(totals.Ignored))
	root.CreateAttr("skipped", formatCount(totals.Skipped))
	root.CreateAttr("invalid", formatCount(totals.Invalid))
	root.CreateAttr("date", formatDate(now))
	root.CreateAttr("time", formatClock(now))
}

// Root returns the test-results element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// WriteTo serializes the report to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

// Bytes serializes the report.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Generator binds host facts and a clock to Generate.
type Generator struct {
	opts  Options
	host  func() HostSnapshot
	clock func() time.Time
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithHost pins the host snapshot instead of reading it from the process.
func WithHost(host HostSnapshot) GeneratorOption {
	return func(g *Generator) {
		g.host = func() HostSnapshot { return host }
	}
}

// WithClock replaces the wall clock.
func WithClock(clock func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.clock = clock
	}
}

// NewGenerator creates a Generator that captures the host and reads the local
// clock at generation time unless overridden.
func NewGenerator(opts Options, options ...GeneratorOption) *Generator {
	g := &Generator{
		opts:  opts,
		host:  CaptureHost,
		clock: time.Now,
	}
	for _, apply := range options {
		apply(g)
	}
	return g
}

// Generate builds a report for sessions.
func (g *Generator) Generate(sessions []model.Session) *Document {
	return Generate(sessions, g.host(), g.clock(), g.opts)
}
