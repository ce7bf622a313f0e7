package export

import (
	"regexp"
	"strings"
)

// BlockKind classifies one line of a markdown resume body.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading1
	BlockHeading2
	BlockBullet
	BlockBlank
)

// Span is a run of text with a single emphasis state.
type Span struct {
	Text string
	Bold bool
}

// Block is one rendered line of the resume.
type Block struct {
	Kind  BlockKind
	Spans []Span
}

// Text returns the block's content with emphasis markers removed.
func (b Block) Text() string {
	var out strings.Builder
	for _, s := range b.Spans {
		out.WriteString(s.Text)
	}
	return out.String()
}

var boldPattern = regexp.MustCompile(`(\*\*.*?\*\*)`)

// Parse splits a markdown resume body into line blocks. Only the
// subset the drafts actually use is understood: two heading levels,
// dash or star bullets, and bold runs inside any line.
func Parse(body string) []Block {
	lines := strings.Split(body, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blocks = append(blocks, Block{Kind: BlockBlank})
		case strings.HasPrefix(trimmed, "## "):
			blocks = append(blocks, Block{Kind: BlockHeading2, Spans: spans(strings.TrimPrefix(trimmed, "## "))})
		case strings.HasPrefix(trimmed, "# "):
			blocks = append(blocks, Block{Kind: BlockHeading1, Spans: spans(strings.TrimPrefix(trimmed, "# "))})
		case strings.HasPrefix(trimmed, "- "):
			blocks = append(blocks, Block{Kind: BlockBullet, Spans: spans(strings.TrimPrefix(trimmed, "- "))})
		case strings.HasPrefix(trimmed, "* "):
			blocks = append(blocks, Block{Kind: BlockBullet, Spans: spans(strings.TrimPrefix(trimmed, "* "))})
		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Spans: spans(trimmed)})
		}
	}
	return blocks
}

// spans splits a line on bold runs, keeping plain and bold pieces in
// order.
func spans(line string) []Span {
	parts := boldPattern.Split(line, -1)
	matches := boldPattern.FindAllString(line, -1)
	out := make([]Span, 0, len(parts)+len(matches))
	for i, p := range parts {
		if p != "" {
			out = append(out, Span{Text: p})
		}
		if i < len(matches) {
			out = append(out, Span{Text: strings.Trim(matches[i], "*"), Bold: true})
		}
	}
	return out
}
