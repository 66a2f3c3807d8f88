// Package diff renders line-oriented unified diffs of report documents.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Stats counts changed lines.
type Stats struct {
	Added   int
	Removed int
}

// Changed reports whether any line differs.
func (s Stats) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

// Lines diffs expected against actual line by line and returns a unified
// diff body together with change counts. Identical input yields "" and zero Stats.
// Output longer than 10,000 lines is truncated with a marker.
func Lines(expected, actual []byte, expectedLabel, actualLabel string) (string, Stats) {
	if bytes.Equal(expected, actual) {
		return "", Stats{}
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(string(expected), string(actual))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", expectedLabel)
	fmt.Fprintf(&buf, "+++ %s\n", actualLabel)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", countLines(expected), countLines(actual))

	var stats Stats
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				stats.Removed++
			case diffmatchpatch.DiffInsert:
				stats.Added++
			}
		}
	}

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		return strings.Join(lines[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n", stats
	}
	return result, stats
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func countLines(data []byte) int {
	return len(splitLines(string(data)))
}
