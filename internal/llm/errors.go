package llm

import "fmt"

// APICallError represents a transport or provider-side failure of a
// generator call.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a generator response that could not be decoded as
// the expected JSON document.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SchemaError represents a response that parsed as JSON but does not
// satisfy the expected shape. Shape mismatches are hard failures; fields
// are never coerced or guessed.
type SchemaError struct {
	Artifact string
	Cause    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response for %s does not match the expected shape: %v", e.Artifact, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
