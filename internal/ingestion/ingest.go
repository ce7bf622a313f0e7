package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-aligner/internal/types"
)

// Media types accepted as supporting documents.
const (
	MimePlainText = "text/plain"
	MimeMarkdown  = "text/markdown"
	MimePDF       = "application/pdf"
	MimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePNG       = "image/png"
	MimeJPEG      = "image/jpeg"
	MimeWebP      = "image/webp"
)

// MaxDocumentBytes caps uploaded document size.
const MaxDocumentBytes = 10 << 20

var accepted = map[string]bool{
	MimePlainText: true,
	MimeMarkdown:  true,
	MimePDF:       true,
	MimeDocx:      true,
	MimePNG:       true,
	MimeJPEG:      true,
	MimeWebP:      true,
}

// Accepted reports whether a media type is in the supported set.
func Accepted(mimeType string) bool {
	return accepted[normalize(mimeType)]
}

// Probe validates an upload and returns it as an attachment. When the
// declared media type is missing or generic, the type is sniffed from
// content and the filename extension.
func Probe(filename, declaredType string, data []byte) (*types.Attachment, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("ingestion: empty document")
	}
	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("ingestion: document exceeds %d bytes", MaxDocumentBytes)
	}

	mimeType := normalize(declaredType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = sniff(filename, data)
	}
	if !accepted[mimeType] {
		return nil, &UnsupportedTypeError{MimeType: mimeType}
	}
	return &types.Attachment{
		Data:     data,
		MimeType: mimeType,
		Filename: filepath.Base(filename),
	}, nil
}

var errNoText = errors.New("document contains no extractable text")

// Verify parses the attachment up front so a corrupt or blank document
// is rejected at upload time instead of surfacing later as a confusing
// extraction failure. Text-bearing documents must yield non-blank text;
// PDFs only need to parse, since a scanned resume carries its content as
// page images; plain images are passed through untouched.
func Verify(att *types.Attachment) error {
	switch att.MimeType {
	case MimePlainText, MimeMarkdown, MimeDocx:
		text, err := ExtractText(att)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return &ExtractError{MimeType: att.MimeType, Cause: errNoText}
		}
	case MimePDF:
		if _, err := ExtractText(att); err != nil {
			return err
		}
	}
	return nil
}

// TextBearing reports whether an attachment's text can be pulled out
// locally. Image and PDF documents go to the model as inline bytes
// instead.
func TextBearing(att *types.Attachment) bool {
	switch att.MimeType {
	case MimePlainText, MimeMarkdown, MimeDocx:
		return true
	}
	return false
}

// ExtractText decodes a text-bearing attachment into plain text.
func ExtractText(att *types.Attachment) (string, error) {
	switch att.MimeType {
	case MimePlainText, MimeMarkdown:
		return string(att.Data), nil
	case MimeDocx:
		text, err := extractDocxText(att.Data)
		if err != nil {
			return "", &ExtractError{MimeType: att.MimeType, Cause: err}
		}
		return text, nil
	case MimePDF:
		text, err := extractPDFText(att.Data)
		if err != nil {
			return "", &ExtractError{MimeType: att.MimeType, Cause: err}
		}
		return text, nil
	default:
		return "", &UnsupportedTypeError{MimeType: att.MimeType}
	}
}

func normalize(mimeType string) string {
	parsed, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return parsed
}

func sniff(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return MimePlainText
	case ".md":
		return MimeMarkdown
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDocx
	}
	detected := normalize(http.DetectContentType(data))
	// DOCX containers sniff as bare zip archives.
	if detected == "application/zip" && bytes.Contains(data, []byte("word/document.xml")) {
		return MimeDocx
	}
	return detected
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagPattern.ReplaceAllString(content, "")
	return strings.TrimSpace(content), nil
}
