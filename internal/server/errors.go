package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/llm"
	"github.com/jonathan/resume-aligner/internal/session"
)

// retryNotice is what clients see when a model call fails. The real
// cause is logged; transcripts and state are untouched, so retrying is
// always safe.
const retryNotice = "The process hit a snag and was stopped. Your progress is intact, please try the step again."

// httpStatus maps a domain error to a status code and a client-safe
// message.
func httpStatus(err error) (int, string) {
	var precondition *session.PreconditionError
	var unsupported *ingestion.UnsupportedTypeError
	var extract *ingestion.ExtractError
	var apiCall *llm.APICallError
	var parse *llm.ParseError
	var schema *llm.SchemaError

	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "Session not found"
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict, "Another action is already running for this session"
	case errors.As(err, &precondition):
		return http.StatusConflict, precondition.Message
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType, unsupported.Error()
	case errors.As(err, &extract):
		return http.StatusUnprocessableEntity, "The document could not be read"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, retryNotice
	case errors.As(err, &apiCall), errors.As(err, &parse), errors.As(err, &schema):
		return http.StatusBadGateway, retryNotice
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}
