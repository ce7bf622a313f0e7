package export

import (
	"fmt"

	"github.com/jonathan/resume-aligner/internal/types"
)

// Kind names one export format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDocx Kind = "docx"
	KindText Kind = "txt"
)

// Valid reports whether k names a supported format.
func (k Kind) Valid() bool {
	switch k {
	case KindPDF, KindDocx, KindText:
		return true
	}
	return false
}

// ContentType returns the media type served for this format.
func (k Kind) ContentType() string {
	switch k {
	case KindPDF:
		return "application/pdf"
	case KindDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Filename returns the download name for an export in the given
// language.
func Filename(k Kind, lang types.Language) string {
	return fmt.Sprintf("aligned-resume-%s.%s", lang, k)
}
