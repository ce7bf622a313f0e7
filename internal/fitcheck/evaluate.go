// Package fitcheck scores a DNA profile against one job description via a
// generator call, producing the requirement/evidence comparison table and
// the categorical verdict.
package fitcheck

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

// Defensive backstops; the controller enforces both preconditions before
// dispatching.
var (
	ErrNoProfile        = errors.New("fit check requires an extracted profile")
	ErrBlankDescription = errors.New("fit check requires a non-blank job description")
)

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score": {Type: genai.TypeNumber},
		"comparisonTable": {Type: genai.TypeArray, Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"requirement": {Type: genai.TypeString},
				"evidence":    {Type: genai.TypeString},
				"match":       {Type: genai.TypeString, Enum: []string{"high", "mid", "low"}},
			},
			Required: []string{"requirement", "evidence", "match"},
		}},
		"whyMatch":         {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"gaps":             {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"conclusion":       {Type: genai.TypeString, Enum: []string{"Go for it", "Stretch goal", "Pivot needed"}},
		"alternativeRoles": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"score", "comparisonTable", "whyMatch", "gaps", "conclusion"},
}

// Evaluator runs the FitCheck-stage comparison.
type Evaluator struct {
	gen llm.Generator
}

// New creates an Evaluator on the given generator.
func New(gen llm.Generator) *Evaluator {
	return &Evaluator{gen: gen}
}

// Evaluate scores the profile against the job description. Failures leave
// no partial result.
func (e *Evaluator) Evaluate(ctx context.Context, profile *types.DnaProfile, jobDescription string, lang types.Language) (*types.FitResult, error) {
	if profile == nil {
		return nil, ErrNoProfile
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrBlankDescription
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, &llm.ParseError{Message: "failed to encode profile", Cause: err}
	}

	req := llm.Request{
		System: prompts.Format(prompts.MustGet("system.json", "recruiter"), map[string]string{
			"Language": lang.Directive(),
		}),
		Prompt: prompts.Format(prompts.MustGet("fitcheck.json", "compare-dna-jd"), map[string]string{
			"Language":       lang.Directive(),
			"Profile":        string(profileJSON),
			"JobDescription": jobDescription,
		}),
		Schema: responseSchema,
		Tier:   llm.TierStandard,
	}

	data, err := e.gen.GenerateJSON(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.FitResult, data); err != nil {
		return nil, &llm.SchemaError{Artifact: "fit result", Cause: err}
	}

	var result types.FitResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &llm.ParseError{Message: "failed to decode fit result", Cause: err}
	}

	return &result, nil
}
