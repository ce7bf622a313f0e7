package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-aligner/internal/session"
	"github.com/jonathan/resume-aligner/internal/types"
)

type fakeExtractor struct {
	profile *types.DnaProfile
	err     error
	calls   int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, _ *types.Attachment, _ types.Language) (*types.DnaProfile, error) {
	f.calls++
	return f.profile, f.err
}

type fakeEvaluator struct {
	result *types.FitResult
	err    error
	calls  int
}

func (f *fakeEvaluator) Evaluate(_ context.Context, _ *types.DnaProfile, _ string, _ types.Language) (*types.FitResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeDrafter struct {
	doc      *types.ResumeDocument
	critique []types.Finding
	err      error

	generateCalls int
	refineCalls   int
	lastFinal     bool
	lastBody      string
	lastFeedback  string
}

func (f *fakeDrafter) Generate(_ context.Context, _ *types.DnaProfile, _ string, _ types.Language, final bool) (*types.ResumeDocument, []types.Finding, error) {
	f.generateCalls++
	f.lastFinal = final
	if f.err != nil {
		return nil, nil, f.err
	}
	doc := *f.doc
	return &doc, f.critique, nil
}

func (f *fakeDrafter) Refine(_ context.Context, body string, _ *types.DnaProfile, _ string, feedback string, _ types.Language) (*types.ResumeDocument, []types.Finding, error) {
	f.refineCalls++
	f.lastBody = body
	f.lastFeedback = feedback
	if f.err != nil {
		return nil, nil, f.err
	}
	doc := *f.doc
	return &doc, f.critique, nil
}

func newTestController(ex *fakeExtractor, ev *fakeEvaluator, dr *fakeDrafter) *Controller {
	if ex == nil {
		ex = &fakeExtractor{profile: &types.DnaProfile{Traits: []string{"direct"}}}
	}
	if ev == nil {
		ev = &fakeEvaluator{result: &types.FitResult{Score: 72, Conclusion: types.ConclusionGoForIt}}
	}
	if dr == nil {
		dr = &fakeDrafter{doc: &types.ResumeDocument{Content: "# Draft", Annotated: true}}
	}
	return New(ex, ev, dr, 0, nil)
}

func capturedSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(types.LanguageEnglish)
	require.NoError(t, s.AppendDialogueTurn("\nUser: I build services\nAI: tell me more", nil))
	return s
}

func TestAdvanceWalksEveryPhase(t *testing.T) {
	ex := &fakeExtractor{profile: &types.DnaProfile{}}
	ev := &fakeEvaluator{result: &types.FitResult{Score: 60}}
	dr := &fakeDrafter{doc: &types.ResumeDocument{Content: "# Body Match: JD", Annotated: true}}
	c := newTestController(ex, ev, dr)
	s := capturedSession(t)
	ctx := context.Background()

	require.NoError(t, c.Advance(ctx, s))
	assert.Equal(t, types.PhaseDiscoveryReview, s.Phase())
	assert.Equal(t, 1, ex.calls)

	require.NoError(t, c.Advance(ctx, s))
	assert.Equal(t, types.PhaseFitCheckInput, s.Phase())

	require.NoError(t, s.SetJobDescription("Backend engineer"))
	require.NoError(t, c.Advance(ctx, s))
	assert.Equal(t, types.PhaseFitCheckReview, s.Phase())
	assert.Equal(t, 1, ev.calls)

	require.NoError(t, c.Advance(ctx, s))
	assert.Equal(t, types.PhaseDiagnosis, s.Phase())
	assert.False(t, dr.lastFinal)
	assert.True(t, s.Resume().Annotated)

	require.NoError(t, c.Advance(ctx, s))
	assert.Equal(t, types.PhasePolish, s.Phase())
	assert.True(t, dr.lastFinal)

	// The final document is cleaned even when the generator leaks
	// annotations, and is never marked annotated.
	assert.Equal(t, "# Body", s.Resume().Content)
	assert.False(t, s.Resume().Annotated)

	// Advancing past the end is a precondition error.
	var precondition *session.PreconditionError
	assert.ErrorAs(t, c.Advance(ctx, s), &precondition)
}

func TestAdvanceRequiresInput(t *testing.T) {
	c := newTestController(nil, nil, nil)
	s := session.New(types.LanguageEnglish)

	var precondition *session.PreconditionError
	require.ErrorAs(t, c.Advance(context.Background(), s), &precondition)
	assert.Equal(t, types.PhaseDiscoveryCapture, s.Phase())
	assert.False(t, s.Busy())
}

func TestAdvanceRequiresJobDescription(t *testing.T) {
	ev := &fakeEvaluator{result: &types.FitResult{}}
	c := newTestController(nil, ev, nil)
	s := capturedSession(t)
	ctx := context.Background()

	require.NoError(t, c.Advance(ctx, s))
	require.NoError(t, c.Advance(ctx, s))
	require.Equal(t, types.PhaseFitCheckInput, s.Phase())

	var precondition *session.PreconditionError
	require.ErrorAs(t, c.Advance(ctx, s), &precondition)
	assert.Equal(t, 0, ev.calls)
	assert.Equal(t, types.PhaseFitCheckInput, s.Phase())
}

func TestAdvanceFailureKeepsState(t *testing.T) {
	boom := errors.New("upstream unavailable")
	ex := &fakeExtractor{err: boom}
	c := newTestController(ex, nil, nil)
	s := capturedSession(t)

	err := c.Advance(context.Background(), s)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, types.PhaseDiscoveryCapture, s.Phase())
	assert.Nil(t, s.Profile())
	assert.False(t, s.Busy())
	assert.NotEmpty(t, s.RawExperience(), "raw input survives a failed extraction")
}

func TestAdvanceClosesDialogueBeforeExtraction(t *testing.T) {
	c := newTestController(nil, nil, nil)
	s := capturedSession(t)
	closed := false
	s.SetDialogue(closerFunc(func() error { closed = true; return nil }))

	require.NoError(t, c.Advance(context.Background(), s))
	assert.True(t, closed)
	assert.False(t, s.DialogueActive())
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestAdvanceIsSingleFlight(t *testing.T) {
	c := newTestController(nil, nil, nil)
	s := capturedSession(t)
	require.NoError(t, s.BeginAction())

	assert.ErrorIs(t, c.Advance(context.Background(), s), session.ErrBusy)
}

func toDiagnosis(t *testing.T, c *Controller, s *session.Session) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.Advance(ctx, s))
	require.NoError(t, c.Advance(ctx, s))
	require.NoError(t, s.SetJobDescription("Backend engineer"))
	require.NoError(t, c.Advance(ctx, s))
	require.NoError(t, c.Advance(ctx, s))
	require.Equal(t, types.PhaseDiagnosis, s.Phase())
}

func TestRefineReplacesDraftAndClearsNote(t *testing.T) {
	dr := &fakeDrafter{doc: &types.ResumeDocument{Content: "# Revised", Annotated: true}}
	c := newTestController(nil, nil, dr)
	s := capturedSession(t)
	toDiagnosis(t, c, s)

	require.NoError(t, c.Refine(context.Background(), s, "tighten the summary"))
	assert.Equal(t, 1, dr.refineCalls)
	assert.Equal(t, "tighten the summary", dr.lastFeedback)
	assert.Equal(t, "# Revised", s.Resume().Content)
	assert.Empty(t, s.RefinementNote())
	assert.Equal(t, types.PhaseDiagnosis, s.Phase())
}

func TestRefineFailurePreservesDraftAndNote(t *testing.T) {
	dr := &fakeDrafter{doc: &types.ResumeDocument{Content: "# Draft", Annotated: true}}
	c := newTestController(nil, nil, dr)
	s := capturedSession(t)
	toDiagnosis(t, c, s)
	before := s.Resume().Content

	dr.err = errors.New("model error")
	err := c.Refine(context.Background(), s, "tighten the summary")
	require.Error(t, err)
	assert.Equal(t, before, s.Resume().Content)
	assert.Equal(t, "tighten the summary", s.RefinementNote(), "feedback survives a failed refine")
	assert.False(t, s.Busy())
}

func TestRefineRejectsWrongPhaseAndEmptyFeedback(t *testing.T) {
	c := newTestController(nil, nil, nil)
	s := capturedSession(t)

	var precondition *session.PreconditionError
	assert.ErrorAs(t, c.Refine(context.Background(), s, "feedback"), &precondition)

	toDiagnosis(t, c, s)
	assert.ErrorAs(t, c.Refine(context.Background(), s, "   "), &precondition)
}

func TestResetClosesDialogue(t *testing.T) {
	c := newTestController(nil, nil, nil)
	s := capturedSession(t)
	closed := false
	s.SetDialogue(closerFunc(func() error { closed = true; return nil }))

	c.Reset(s)
	assert.True(t, closed)
	assert.Equal(t, types.PhaseDiscoveryCapture, s.Phase())
	assert.False(t, s.HasInput())
}
