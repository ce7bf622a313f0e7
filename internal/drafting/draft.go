// Package drafting generates and refines the résumé document. Both entry
// points share one response contract: a markdown document plus a critique
// list, always replaced together as a matched pair.
package drafting

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

// ErrEmptyFeedback is returned when Refine is called without feedback
// text; refinement is always driven by a user note.
var ErrEmptyFeedback = errors.New("refine requires non-empty feedback")

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"resume": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"content": {Type: genai.TypeString},
			},
			Required: []string{"content"},
		},
		"diagnosis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"reasons": {Type: genai.TypeArray, Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"action":      {Type: genai.TypeString},
						"severity":    {Type: genai.TypeString, Enum: []string{"critical", "major", "minor"}},
					},
					Required: []string{"title", "description", "action", "severity"},
				}},
			},
			Required: []string{"reasons"},
		},
	},
	Required: []string{"resume", "diagnosis"},
}

// draftResponse is the wire shape shared by Generate and Refine.
type draftResponse struct {
	Resume struct {
		Content string `json:"content"`
	} `json:"resume"`
	Diagnosis struct {
		Reasons []types.Finding `json:"reasons"`
	} `json:"diagnosis"`
}

// Drafter runs draft generation and refinement.
type Drafter struct {
	gen llm.Generator
}

// New creates a Drafter on the given generator.
func New(gen llm.Generator) *Drafter {
	return &Drafter{gen: gen}
}

// Generate produces a fresh draft from the profile and job description.
// final=false requests the annotated internal-review draft; final=true
// requests a clean draft with indicators suppressed at the source (the
// workflow's cleanup transform still runs afterwards regardless).
func (d *Drafter) Generate(ctx context.Context, profile *types.DnaProfile, jobDescription string, lang types.Language, final bool) (*types.ResumeDocument, []types.Finding, error) {
	key := "generate-annotated"
	if final {
		key = "generate-final"
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, nil, &llm.ParseError{Message: "failed to encode profile", Cause: err}
	}

	prompt := prompts.Format(prompts.MustGet("drafting.json", key), map[string]string{
		"Language":       lang.Directive(),
		"Profile":        string(profileJSON),
		"JobDescription": jobDescription,
	})

	doc, critique, err := d.call(ctx, prompt, lang)
	if err != nil {
		return nil, nil, err
	}
	doc.Annotated = !final
	return doc, critique, nil
}

// Refine produces a new revision of the current document from free-text
// feedback, preserving contact identity and the existing annotation
// convention.
func (d *Drafter) Refine(ctx context.Context, currentBody string, profile *types.DnaProfile, jobDescription, feedback string, lang types.Language) (*types.ResumeDocument, []types.Finding, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, nil, ErrEmptyFeedback
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, nil, &llm.ParseError{Message: "failed to encode profile", Cause: err}
	}

	prompt := prompts.Format(prompts.MustGet("drafting.json", "refine"), map[string]string{
		"Language":       lang.Directive(),
		"Feedback":       feedback,
		"Resume":         currentBody,
		"Profile":        string(profileJSON),
		"JobDescription": jobDescription,
	})

	doc, critique, err := d.call(ctx, prompt, lang)
	if err != nil {
		return nil, nil, err
	}
	// The refined document keeps whatever convention the input carried.
	doc.Annotated = strings.Contains(currentBody, "match-tag")
	return doc, critique, nil
}

func (d *Drafter) call(ctx context.Context, prompt string, lang types.Language) (*types.ResumeDocument, []types.Finding, error) {
	req := llm.Request{
		System: prompts.Format(prompts.MustGet("system.json", "recruiter"), map[string]string{
			"Language": lang.Directive(),
		}),
		Prompt: prompt,
		Schema: responseSchema,
		Tier:   llm.TierAdvanced,
	}

	data, err := d.gen.GenerateJSON(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if err := schemas.Validate(schemas.Draft, data); err != nil {
		return nil, nil, &llm.SchemaError{Artifact: "draft", Cause: err}
	}

	var resp draftResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, nil, &llm.ParseError{Message: "failed to decode draft", Cause: err}
	}

	return &types.ResumeDocument{Content: resp.Resume.Content}, resp.Diagnosis.Reasons, nil
}
