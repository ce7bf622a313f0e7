package workflow

import (
	"regexp"
	"strings"
)

// cleanupRules is the ordered chain of annotation-removal patterns applied
// to the final document. The generator is asked to omit these at the
// source; the chain removes any that leak through regardless. Order is an
// invariant: the inline span rule runs first so the label-line rule never
// sees a dangling closing tag, and the bare label rule runs before the
// bracketed/bold forms it would otherwise truncate mid-pattern.
var cleanupRules = []*regexp.Regexp{
	// Inline match-indicator markup spans.
	regexp.MustCompile(`(?i)<span class="match-tag">.*?</span>`),
	// "label: value" match annotations, bilingual label set, to end of line.
	regexp.MustCompile(`(?i)(匹配|Match)[:：\s]*[^\n]*`),
	// Bracketed match annotations.
	regexp.MustCompile(`(?i)\[\s*(匹配|Match)[:：\s]*.*?\]`),
	// Heading lines with trailing match annotations.
	regexp.MustCompile(`(?i)#[^\n]+(匹配|Match)[:：\s][^\n]*`),
	// Bold-emphasized match annotations.
	regexp.MustCompile(`(?i)\*\*(匹配|Match)[:：\s]*.*?\*\*`),
}

// Cleanup strips every alignment annotation from a final document body and
// trims surrounding whitespace. It is idempotent: running it over already
// clean text returns the text unchanged.
func Cleanup(body string) string {
	for _, rule := range cleanupRules {
		body = rule.ReplaceAllString(body, "")
	}
	return strings.TrimSpace(body)
}
