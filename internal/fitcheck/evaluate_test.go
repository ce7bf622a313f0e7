package fitcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-aligner/internal/llm"
	"github.com/jonathan/resume-aligner/internal/types"
)

type fakeGenerator struct {
	reply   []byte
	err     error
	lastReq llm.Request
	calls   int
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, req llm.Request) ([]byte, error) {
	f.calls++
	f.lastReq = req
	return f.reply, f.err
}

const validFitJSON = `{
	"score": 72,
	"comparisonTable": [{"requirement": "Go experience", "evidence": "Five years of Go services", "match": "high"}],
	"whyMatch": ["backend depth"],
	"gaps": ["no fintech background"],
	"conclusion": "Go for it"
}`

func sampleProfile() *types.DnaProfile {
	return &types.DnaProfile{
		Traits:   []string{"direct"},
		Sections: []types.DnaSection{{Title: "Backend", Items: []string{"Go services"}}},
	}
}

func TestEvaluateBuildsFitResult(t *testing.T) {
	gen := &fakeGenerator{reply: []byte(validFitJSON)}
	ev := New(gen)

	result, err := ev.Evaluate(context.Background(), sampleProfile(), "Backend engineer, Go", types.LanguageEnglish)
	require.NoError(t, err)
	assert.InDelta(t, 72.0, result.Score, 0.001)
	require.Len(t, result.ComparisonTable, 1)
	assert.Equal(t, types.MatchHigh, result.ComparisonTable[0].Match)
	assert.Equal(t, types.ConclusionGoForIt, result.Conclusion)
	assert.Empty(t, result.AlternativeRoles)

	assert.Equal(t, llm.TierStandard, gen.lastReq.Tier)
	assert.Contains(t, gen.lastReq.Prompt, "Backend engineer, Go")
	assert.Contains(t, gen.lastReq.Prompt, "Go services", "profile JSON is embedded in the prompt")
}

func TestEvaluatePreconditions(t *testing.T) {
	gen := &fakeGenerator{reply: []byte(validFitJSON)}
	ev := New(gen)
	ctx := context.Background()

	_, err := ev.Evaluate(ctx, nil, "jd", types.LanguageEnglish)
	assert.ErrorIs(t, err, ErrNoProfile)

	_, err = ev.Evaluate(ctx, sampleProfile(), "   ", types.LanguageEnglish)
	assert.ErrorIs(t, err, ErrBlankDescription)

	assert.Zero(t, gen.calls)
}

func TestEvaluateRejectsShapeMismatch(t *testing.T) {
	gen := &fakeGenerator{reply: []byte(`{"score": 150, "comparisonTable": [], "whyMatch": [], "gaps": [], "conclusion": "Go for it"}`)}
	ev := New(gen)

	_, err := ev.Evaluate(context.Background(), sampleProfile(), "jd", types.LanguageEnglish)
	var schemaErr *llm.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "fit result", schemaErr.Artifact)
}
