// Package extraction turns the raw interview text and optional uploaded
// document into a structured DNA profile via one generator call.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/jonathan/resume-aligner/internal/llm"
	"github.com/jonathan/resume-aligner/internal/prompts"
	"github.com/jonathan/resume-aligner/internal/schemas"
	"github.com/jonathan/resume-aligner/internal/types"
)

// ErrNoInput is returned when neither dialogue text nor a document is
// available. The controller prevents this at the interaction layer; the
// check here is a defensive backstop.
var ErrNoInput = errors.New("extraction requires dialogue text or an uploaded document")

// responseSchema constrains the generator reply on the request side. The
// reply is still validated against the embedded JSON Schema afterwards.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"traits": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"sections": {Type: genai.TypeArray, Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {Type: genai.TypeString},
				"items": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"title", "items"},
		}},
	},
	Required: []string{"traits", "sections"},
}

// Extractor runs the Discovery-stage profile extraction.
type Extractor struct {
	gen llm.Generator
}

// New creates an Extractor on the given generator.
func New(gen llm.Generator) *Extractor {
	return &Extractor{gen: gen}
}

// Extract produces a DnaProfile from the raw experience text and the
// optional attachment. Any transport, parse, or schema failure aborts the
// step without producing a partial result.
func (e *Extractor) Extract(ctx context.Context, rawText string, att *types.Attachment, lang types.Language) (*types.DnaProfile, error) {
	if strings.TrimSpace(rawText) == "" && att == nil {
		return nil, ErrNoInput
	}

	req := llm.Request{
		System: prompts.Format(prompts.MustGet("system.json", "recruiter"), map[string]string{
			"Language": lang.Directive(),
		}),
		Prompt: prompts.Format(prompts.MustGet("extraction.json", "structure-experience"), map[string]string{
			"Language": lang.Directive(),
			"RawText":  rawText,
		}),
		Schema: responseSchema,
		Tier:   llm.TierStandard,
	}
	if att != nil {
		req.Attachment = &llm.Attachment{Data: att.Data, MimeType: att.MimeType}
	}

	data, err := e.gen.GenerateJSON(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.DnaProfile, data); err != nil {
		return nil, &llm.SchemaError{Artifact: "dna profile", Cause: err}
	}

	var profile types.DnaProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, &llm.ParseError{Message: "failed to decode dna profile", Cause: err}
	}

	return &profile, nil
}
