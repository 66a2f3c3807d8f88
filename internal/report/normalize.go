package report

import "regexp"

const computedPlaceholder = "<<computed>>"

var normalizers = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\btime="[0-9.:]*"`), `time="` + computedPlaceholder + `"`},
	{regexp.MustCompile(`\bdate="[0-9-]*"`), `date="` + computedPlaceholder + `"`},
	{
		regexp.MustCompile(`\b(os-version|platform|cwd|machine-name|user|user-domain)="[^"]*"`),
		`${1}="` + computedPlaceholder + `"`,
	},
}

// Normalize replaces host facts, timestamps and durations in a serialized
// report so that reports from different runs can be compared.
func Normalize(data []byte) []byte {
	out := data
	for _, n := range normalizers {
		out = n.pattern.ReplaceAll(out, []byte(n.replacement))
	}
	return out
}
