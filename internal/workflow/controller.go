// Package workflow implements the four-stage alignment state machine: the
// per-phase advance dispatch, the refine loop, the back and reset actions,
// and the final annotation cleanup.
package workflow

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-aligner/internal/session"
	"github.com/jonathan/resume-aligner/internal/types"
)

// DefaultTimeout bounds every generator sub-step call so a stalled call
// cannot leave the session busy indefinitely.
const DefaultTimeout = 120 * time.Second

// ProfileExtractor is the Discovery sub-step.
type ProfileExtractor interface {
	Extract(ctx context.Context, rawText string, att *types.Attachment, lang types.Language) (*types.DnaProfile, error)
}

// FitEvaluator is the FitCheck sub-step.
type FitEvaluator interface {
	Evaluate(ctx context.Context, profile *types.DnaProfile, jobDescription string, lang types.Language) (*types.FitResult, error)
}

// DraftGenerator is the Diagnosis/Polish sub-step pair.
type DraftGenerator interface {
	Generate(ctx context.Context, profile *types.DnaProfile, jobDescription string, lang types.Language, final bool) (*types.ResumeDocument, []types.Finding, error)
	Refine(ctx context.Context, currentBody string, profile *types.DnaProfile, jobDescription, feedback string, lang types.Language) (*types.ResumeDocument, []types.Finding, error)
}

// Controller drives a session through the workflow. All session mutation
// happens through the session's named transition operations; the
// controller decides which sub-step to dispatch from the current phase.
type Controller struct {
	extractor ProfileExtractor
	evaluator FitEvaluator
	drafter   DraftGenerator
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a Controller. A zero timeout falls back to DefaultTimeout;
// a nil logger is replaced with a no-op one.
func New(extractor ProfileExtractor, evaluator FitEvaluator, drafter DraftGenerator, timeout time.Duration, logger *zap.Logger) *Controller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		extractor: extractor,
		evaluator: evaluator,
		drafter:   drafter,
		timeout:   timeout,
		logger:    logger,
	}
}

// Advance runs the next sub-step for the session's current phase. On any
// failure the session keeps its prior state so the user can retry; no
// partial artifact is ever committed.
func (c *Controller) Advance(ctx context.Context, s *session.Session) error {
	if err := s.BeginAction(); err != nil {
		return err
	}
	defer s.EndAction()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	phase := s.Phase()
	c.logger.Info("advance", zap.String("session", s.ID().String()), zap.Stringer("phase", phase))

	switch phase {
	case types.PhaseDiscoveryCapture:
		return c.extract(ctx, s)
	case types.PhaseDiscoveryReview:
		return s.ConfirmProfile()
	case types.PhaseFitCheckInput:
		return c.evaluate(ctx, s)
	case types.PhaseFitCheckReview:
		return c.generateAnnotated(ctx, s)
	case types.PhaseDiagnosis:
		return c.finalize(ctx, s)
	default:
		return &session.PreconditionError{Op: "advance", Message: "workflow already complete"}
	}
}

func (c *Controller) extract(ctx context.Context, s *session.Session) error {
	if !s.HasInput() {
		return &session.PreconditionError{Op: "advance", Message: "no dialogue text or uploaded document to extract from"}
	}

	// The dialogue channel must not feed the buffer mid-extraction: close
	// it before the extractor reads the folded transcript.
	if err := s.CloseDialogue(); err != nil {
		c.logger.Warn("failed to close dialogue before extraction", zap.Error(err))
	}

	profile, err := c.extractor.Extract(ctx, s.RawExperience(), s.Attachment(), s.Language())
	if err != nil {
		return err
	}
	return s.ApplyProfile(profile)
}

func (c *Controller) evaluate(ctx context.Context, s *session.Session) error {
	jd := s.JobDescription()
	if strings.TrimSpace(jd) == "" {
		return &session.PreconditionError{Op: "advance", Message: "job description is blank"}
	}

	result, err := c.evaluator.Evaluate(ctx, s.Profile(), jd, s.Language())
	if err != nil {
		return err
	}
	return s.ApplyFitResult(result)
}

func (c *Controller) generateAnnotated(ctx context.Context, s *session.Session) error {
	doc, critique, err := c.drafter.Generate(ctx, s.Profile(), s.JobDescription(), s.Language(), false)
	if err != nil {
		return err
	}
	return s.ApplyAnnotatedDraft(doc, critique)
}

// finalize requests the clean draft and then applies the cleanup chain
// unconditionally, independent of generator compliance.
func (c *Controller) finalize(ctx context.Context, s *session.Session) error {
	doc, critique, err := c.drafter.Generate(ctx, s.Profile(), s.JobDescription(), s.Language(), true)
	if err != nil {
		return err
	}
	doc.Content = Cleanup(doc.Content)
	doc.Annotated = false
	return s.ApplyFinalDraft(doc, critique)
}

// Refine applies free-text feedback to the current draft. The pending note
// is stored before the call so a failure never loses the user's edit; the
// session clears it only on success, together with the atomic document +
// critique replacement.
func (c *Controller) Refine(ctx context.Context, s *session.Session, feedback string) error {
	if err := s.BeginAction(); err != nil {
		return err
	}
	defer s.EndAction()

	if s.Phase() != types.PhaseDiagnosis {
		return &session.PreconditionError{Op: "refine", Message: "refinement is only available during diagnosis"}
	}
	if strings.TrimSpace(feedback) == "" {
		return &session.PreconditionError{Op: "refine", Message: "feedback is empty"}
	}

	s.SetRefinementNote(feedback)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	doc, critique, err := c.drafter.Refine(ctx, s.Resume().Content, s.Profile(), s.JobDescription(), feedback, s.Language())
	if err != nil {
		return err
	}
	return s.ApplyRefinedDraft(doc, critique)
}

// Back reverts one sub-step, per the session's back semantics.
func (c *Controller) Back(s *session.Session) error {
	return s.Back()
}

// Reset unconditionally restores the initial empty session state, closing
// any live dialogue first.
func (c *Controller) Reset(s *session.Session) {
	if err := s.CloseDialogue(); err != nil {
		c.logger.Warn("failed to close dialogue on reset", zap.Error(err))
	}
	s.Reset()
}
