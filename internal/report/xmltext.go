package report

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

const cdataEnd = "]]>"

// ansiPattern matches terminal escape sequences such as colour codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// xmlText removes terminal escape sequences and every rune XML 1.0 does not
// allow. Invalid UTF-8 becomes U+FFFD.
func xmlText(s string) string {
	s = ansiPattern.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// createCData appends text to el as CDATA. A "]]>" inside text is split across
// two sections so that the first one does not end early.
func createCData(el *etree.Element, text string) {
	text = xmlText(text)
	for {
		i := strings.Index(text, cdataEnd)
		if i < 0 {
			el.CreateCData(text)
			return
		}
		el.CreateCData(text[:i+2])
		text = text[i+2:]
	}
}
