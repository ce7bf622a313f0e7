package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// Half-point font sizes for the generated document.
const (
	sizeHeading1 = "32"
	sizeHeading2 = "26"
	sizeBody     = "22"
)

// Docx renders a markdown resume body as a Word document.
func Docx(body string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, b := range Parse(body) {
		para := doc.AddParagraph()
		switch b.Kind {
		case BlockBlank:
			para.AddText("")
		case BlockHeading1:
			para.AddText(b.Text()).Size(sizeHeading1).Bold()
		case BlockHeading2:
			para.AddText(b.Text()).Size(sizeHeading2).Bold()
		case BlockBullet:
			para.AddText("• ").Size(sizeBody)
			addSpans(para, b.Spans)
		default:
			addSpans(para, b.Spans)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("export: failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}

func addSpans(para *docx.Paragraph, spans []Span) {
	for _, s := range spans {
		run := para.AddText(s.Text).Size(sizeBody)
		if s.Bold {
			run.Bold()
		}
	}
}
