package ingestion

import "fmt"

// UnsupportedTypeError indicates an uploaded document's media type is
// outside the accepted set.
type UnsupportedTypeError struct {
	MimeType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported document type: %s", e.MimeType)
}

// ExtractError indicates a document of an accepted type could not be
// decoded.
type ExtractError struct {
	MimeType string
	Cause    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to extract text from %s document: %v", e.MimeType, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
