// Package summary prints a per-session overview of a generated report.
package summary

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
	domainreport "github.com/romanresh/test-runner-nunit-reporter/internal/report"
)

// Data is what the summary shows.
type Data struct {
	Sessions []domainreport.SessionSummary
	Totals   model.State
}

// Options control rendering.
type Options struct {
	// Color enables ANSI styling. See ColorEnabled.
	Color bool
}

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	skipped lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, success: plain, failure: plain, skipped: plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		skipped: r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// Render writes the session table and a headline with the totals to w.
func Render(w io.Writer, data Data, opts Options) error {
	st := newStyles(w, opts.Color)

	if _, err := fmt.Fprintln(w, st.title.Render("Test report")); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Session", "Total", "Passed", "Failed", "Skipped", "Env errors", "Time (s)", "Result"})
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	envTotal := 0
	for _, s := range data.Sessions {
		envTotal += s.EnvFails
		table.Append(row(st, s.Name, s.State, s.EnvFails))
	}
	table.SetFooter(row(st, "All sessions", data.Totals, envTotal))
	table.Render()

	headline := fmt.Sprintf("%d tests, %d passed, %d failed, %d skipped",
		data.Totals.Total, data.Totals.Passed(), data.Totals.Failures, data.Totals.Skipped)
	_, err := fmt.Fprintln(w, headline)
	return err
}

func row(st styles, name string, s model.State, envFails int) []string {
	return []string{
		name,
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Passed()),
		strconv.Itoa(s.Failures),
		strconv.Itoa(s.Skipped),
		strconv.Itoa(envFails),
		strconv.FormatFloat(s.Time.Seconds(), 'f', 3, 64),
		resultLabel(st, s, envFails),
	}
}

func resultLabel(st styles, s model.State, envFails int) string {
	switch {
	case !s.Success || envFails > 0:
		return st.failure.Render("failed")
	case !s.Executed():
		return st.skipped.Render("not run")
	default:
		return st.success.Render("passed")
	}
}

// ColorEnabled reports whether w is an interactive terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
