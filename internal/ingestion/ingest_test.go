package ingestion

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-aligner/internal/types"
)

func TestProbeAcceptsDeclaredType(t *testing.T) {
	att, err := Probe("resume.pdf", "application/pdf", []byte("%PDF-1.7 fake"))
	require.NoError(t, err)
	assert.Equal(t, MimePDF, att.MimeType)
	assert.Equal(t, "resume.pdf", att.Filename)
	assert.Equal(t, []byte("%PDF-1.7 fake"), att.Data)
}

func TestProbeNormalizesTypeParameters(t *testing.T) {
	att, err := Probe("notes.txt", "text/plain; charset=utf-8", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, MimePlainText, att.MimeType)
}

func TestProbeSniffsByExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.txt", MimePlainText},
		{"resume.md", MimeMarkdown},
		{"resume.PDF", MimePDF},
		{"resume.docx", MimeDocx},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			att, err := Probe(tt.filename, "application/octet-stream", []byte("content"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, att.MimeType)
		})
	}
}

func TestProbeSniffsDocxContainer(t *testing.T) {
	// Zip local-file header followed by the docx marker entry name.
	data := append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0}, 26)...)
	data = append(data, []byte("word/document.xml")...)

	att, err := Probe("upload.bin", "", data)
	require.NoError(t, err)
	assert.Equal(t, MimeDocx, att.MimeType)
}

func TestProbeRejects(t *testing.T) {
	_, err := Probe("a.txt", "text/plain", nil)
	assert.Error(t, err, "empty documents are rejected")

	_, err = Probe("a.bin", "application/x-msdownload", []byte{0x4d, 0x5a})
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "application/x-msdownload", unsupported.MimeType)

	big := make([]byte, MaxDocumentBytes+1)
	_, err = Probe("a.txt", "text/plain", big)
	assert.Error(t, err, "oversize documents are rejected")
}

func TestVerifyAcceptsReadableText(t *testing.T) {
	err := Verify(&types.Attachment{MimeType: MimePlainText, Data: []byte("ten years of backend work")})
	assert.NoError(t, err)
}

func TestVerifyRejectsBlankText(t *testing.T) {
	err := Verify(&types.Attachment{MimeType: MimePlainText, Data: []byte("  \n\t\n")})
	var extract *ExtractError
	require.ErrorAs(t, err, &extract)
	assert.Equal(t, MimePlainText, extract.MimeType)
}

func TestVerifyRejectsCorruptDocx(t *testing.T) {
	err := Verify(&types.Attachment{MimeType: MimeDocx, Data: []byte("not a zip")})
	var extract *ExtractError
	require.ErrorAs(t, err, &extract)
	assert.Equal(t, MimeDocx, extract.MimeType)
}

func TestVerifyRejectsCorruptPDF(t *testing.T) {
	err := Verify(&types.Attachment{MimeType: MimePDF, Data: []byte("%PDF-1.4 truncated")})
	var extract *ExtractError
	require.ErrorAs(t, err, &extract)
	assert.Equal(t, MimePDF, extract.MimeType)
}

func TestVerifySkipsImages(t *testing.T) {
	assert.NoError(t, Verify(&types.Attachment{MimeType: MimePNG, Data: []byte{0x89}}))
	assert.NoError(t, Verify(&types.Attachment{MimeType: MimeJPEG, Data: []byte{0xff}}))
}

func TestAccepted(t *testing.T) {
	assert.True(t, Accepted("application/pdf"))
	assert.True(t, Accepted("image/png"))
	assert.True(t, Accepted("text/plain; charset=utf-8"))
	assert.False(t, Accepted("application/zip"))
	assert.False(t, Accepted(""))
}

func TestTextBearing(t *testing.T) {
	assert.True(t, TextBearing(&types.Attachment{MimeType: MimePlainText}))
	assert.True(t, TextBearing(&types.Attachment{MimeType: MimeMarkdown}))
	assert.True(t, TextBearing(&types.Attachment{MimeType: MimeDocx}))
	assert.False(t, TextBearing(&types.Attachment{MimeType: MimePDF}))
	assert.False(t, TextBearing(&types.Attachment{MimeType: MimePNG}))
}

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText(&types.Attachment{MimeType: MimePlainText, Data: []byte("raw experience")})
	require.NoError(t, err)
	assert.Equal(t, "raw experience", text)
}

func TestExtractTextCorruptDocx(t *testing.T) {
	_, err := ExtractText(&types.Attachment{MimeType: MimeDocx, Data: []byte("not a zip")})
	var extract *ExtractError
	require.ErrorAs(t, err, &extract)
	assert.Equal(t, MimeDocx, extract.MimeType)
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ExtractText(&types.Attachment{MimeType: MimePNG, Data: []byte{1}})
	var unsupported *UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}
