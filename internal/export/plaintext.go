package export

import "strings"

// PlainText renders a markdown resume body as bare text: heading and
// bullet markers dropped, bold markers dropped, each line trimmed.
func PlainText(body string) string {
	blocks := Parse(body)
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = strings.TrimSpace(b.Text())
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
