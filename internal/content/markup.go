package content

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// Block-level tags become line breaks before everything else is stripped.
	paragraphBreak = regexp.MustCompile(`(?i)</\s*(p|div|h[1-6]|ul|ol|blockquote)\s*>`)
	lineBreak      = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>|</\s*li\s*>`)
	listItem       = regexp.MustCompile(`(?i)<\s*li(\s[^>]*)?>`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
	spaceRuns      = regexp.MustCompile(`[ \t\r\f\v]+`)

	stripPolicy = bluemonday.StrictPolicy()
)

// PlainText turns topic markup into terminal-safe text. The markup is
// treated as untrusted: every tag is removed by a strict policy, so no
// escape sequence or control markup from the content file reaches the screen.
func PlainText(markup string) string {
	s := paragraphBreak.ReplaceAllString(markup, "\n\n")
	s = lineBreak.ReplaceAllString(s, "\n")
	s = listItem.ReplaceAllString(s, "\n• ")
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = stripControl(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// PlainContent is the topic body as terminal-safe text.
func (t Topic) PlainContent() string {
	return PlainText(t.Content)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return -1
		}
		return r
	}, s)
}
