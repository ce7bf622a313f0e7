package types

// DnaProfile is the structured "professional DNA" extracted from the raw
// interview text and/or an uploaded document. It is immutable once
// produced; discarding it (back action during Discovery) permits a fresh
// extraction over the same raw input.
type DnaProfile struct {
	Traits   []string     `json:"traits"`
	Sections []DnaSection `json:"sections"`
}

// DnaSection is one titled group of claim strings, in presentation order.
type DnaSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Attachment is an uploaded source document passed inline to the
// extraction call. At most one attachment exists per session.
type Attachment struct {
	Data     []byte `json:"-"`
	MimeType string `json:"mime_type"`
	Filename string `json:"filename"`
}
