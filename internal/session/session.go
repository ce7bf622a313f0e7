// Package session holds the in-memory state of one alignment session and
// the named transition operations that are the only way to mutate it.
// Every mutation is appended to a transition log so a session's history
// can be replayed and asserted in tests.
package session

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-aligner/internal/types"
)

// Transition is one entry of the session's replayable mutation log.
type Transition struct {
	Op   string      `json:"op"`
	From types.Phase `json:"from"`
	To   types.Phase `json:"to"`
	At   time.Time   `json:"at"`
}

// Session aggregates the full workflow state for one user. All state is
// in-memory and lives for the session only; Reset restores the zero state
// from any phase.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	language types.Language
	phase    types.Phase

	rawExperience strings.Builder
	attachment    *types.Attachment
	transcript    []types.Utterance

	jobDescription string
	profile        *types.DnaProfile
	fit            *types.FitResult
	resume         *types.ResumeDocument
	critique       []types.Finding
	refinementNote string

	busy     bool
	log      []Transition
	dialogue io.Closer
	now      func() time.Time
}

// New creates an empty session in the initial capture phase.
func New(lang types.Language) *Session {
	return &Session{
		id:       uuid.New(),
		language: lang,
		phase:    types.PhaseDiscoveryCapture,
		now:      time.Now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Language returns the session's target language.
func (s *Session) Language() types.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Phase returns the current workflow phase.
func (s *Session) Phase() types.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// BeginAction marks the session busy for the duration of one advancing
// action. It fails with ErrBusy if another action is already in flight.
func (s *Session) BeginAction() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

// EndAction clears the busy flag set by BeginAction.
func (s *Session) EndAction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// Busy reports whether an advancing action is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// record appends a log entry and moves the phase. Callers hold s.mu.
func (s *Session) record(op string, to types.Phase) {
	s.log = append(s.log, Transition{Op: op, From: s.phase, To: to, At: s.now()})
	s.phase = to
}

// AppendDialogueTurn folds one completed interview turn into the raw
// experience buffer and the visible transcript history. The dialogue path
// is the sole writer of interview-derived text. Only legal while the
// session is still capturing input.
func (s *Session) AppendDialogueTurn(block string, utterances []types.Utterance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseDiscoveryCapture {
		return &PreconditionError{Op: "append_dialogue_turn", Message: fmt.Sprintf("not capturing in phase %s", s.phase)}
	}
	s.rawExperience.WriteString(block)
	s.transcript = append(s.transcript, utterances...)
	return nil
}

// AttachDocument stores the uploaded source document. A later upload
// replaces an earlier one; the dialogue text path is unaffected.
func (s *Session) AttachDocument(att *types.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseDiscoveryCapture {
		return &PreconditionError{Op: "attach_document", Message: fmt.Sprintf("not capturing in phase %s", s.phase)}
	}
	s.attachment = att
	return nil
}

// SetJobDescription stores the target job description ahead of the fit
// check.
func (s *Session) SetJobDescription(jd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseFitCheckInput {
		return &PreconditionError{Op: "set_job_description", Message: fmt.Sprintf("not awaiting a job description in phase %s", s.phase)}
	}
	s.jobDescription = jd
	return nil
}

// HasInput reports whether the session carries any extractable source
// material (dialogue text or an attached document).
func (s *Session) HasInput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.rawExperience.String()) != "" || s.attachment != nil
}

// RawExperience returns the accumulated free-text buffer.
func (s *Session) RawExperience() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawExperience.String()
}

// Attachment returns the uploaded document, if any.
func (s *Session) Attachment() *types.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attachment
}

// JobDescription returns the stored job description.
func (s *Session) JobDescription() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobDescription
}

// Profile returns the extracted DNA profile, if any.
func (s *Session) Profile() *types.DnaProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// FitResult returns the fit check result, if any.
func (s *Session) FitResult() *types.FitResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fit
}

// Resume returns the current resume document, if any.
func (s *Session) Resume() *types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume
}

// Critique returns the critique findings for the current document revision.
func (s *Session) Critique() []types.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.critique
}

// Transcript returns the visible utterance history.
func (s *Session) Transcript() []types.Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// RefinementNote returns the pending free-text feedback.
func (s *Session) RefinementNote() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refinementNote
}

// SetRefinementNote stores pending free-text feedback for the next refine
// call. The note survives a failed refine so the user's edit is not lost.
func (s *Session) SetRefinementNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refinementNote = note
}

// Log returns a copy of the transition log.
func (s *Session) Log() []Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Transition, len(s.log))
	copy(out, s.log)
	return out
}

// ApplyProfile commits a freshly extracted profile and moves the session
// into the review sub-state of Discovery.
func (s *Session) ApplyProfile(p *types.DnaProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseDiscoveryCapture {
		return &PreconditionError{Op: "apply_profile", Message: fmt.Sprintf("cannot extract in phase %s", s.phase)}
	}
	s.profile = p
	s.record("apply_profile", types.PhaseDiscoveryReview)
	return nil
}

// ConfirmProfile is the pure confirmation step out of Discovery.
func (s *Session) ConfirmProfile() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseDiscoveryReview {
		return &PreconditionError{Op: "confirm_profile", Message: fmt.Sprintf("no profile to confirm in phase %s", s.phase)}
	}
	s.record("confirm_profile", types.PhaseFitCheckInput)
	return nil
}

// ApplyFitResult commits the fit check result for the stored job
// description.
func (s *Session) ApplyFitResult(r *types.FitResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseFitCheckInput {
		return &PreconditionError{Op: "apply_fit_result", Message: fmt.Sprintf("cannot run fit check in phase %s", s.phase)}
	}
	s.fit = r
	s.record("apply_fit_result", types.PhaseFitCheckReview)
	return nil
}

// ApplyAnnotatedDraft commits the first annotated draft and its critique
// as a matched pair, entering Diagnosis.
func (s *Session) ApplyAnnotatedDraft(doc *types.ResumeDocument, critique []types.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseFitCheckReview {
		return &PreconditionError{Op: "apply_annotated_draft", Message: fmt.Sprintf("cannot generate a draft in phase %s", s.phase)}
	}
	s.resume = doc
	s.critique = critique
	s.record("apply_annotated_draft", types.PhaseDiagnosis)
	return nil
}

// ApplyRefinedDraft replaces the document and critique as a matched pair
// after a successful refine call and clears the pending note. The session
// stays in Diagnosis.
func (s *Session) ApplyRefinedDraft(doc *types.ResumeDocument, critique []types.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseDiagnosis {
		return &PreconditionError{Op: "apply_refined_draft", Message: fmt.Sprintf("cannot refine in phase %s", s.phase)}
	}
	s.resume = doc
	s.critique = critique
	s.refinementNote = ""
	s.record("apply_refined_draft", types.PhaseDiagnosis)
	return nil
}

// ApplyFinalDraft commits the cleaned final document and enters Polish.
func (s *Session) ApplyFinalDraft(doc *types.ResumeDocument, critique []types.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != types.PhaseDiagnosis {
		return &PreconditionError{Op: "apply_final_draft", Message: fmt.Sprintf("cannot finalize in phase %s", s.phase)}
	}
	s.resume = doc
	s.critique = critique
	s.record("apply_final_draft", types.PhasePolish)
	return nil
}

// Back reverts one sub-step. If the current phase holds an artifact from
// its own sub-step, only that artifact is discarded; otherwise the phase
// moves to the previous stage's review state. Back at the very start is a
// precondition error.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case types.PhaseDiscoveryReview:
		s.profile = nil
		s.record("back", types.PhaseDiscoveryCapture)
	case types.PhaseFitCheckReview:
		s.fit = nil
		s.record("back", types.PhaseFitCheckInput)
	case types.PhaseFitCheckInput:
		s.record("back", types.PhaseDiscoveryReview)
	case types.PhaseDiagnosis:
		s.record("back", types.PhaseFitCheckReview)
	case types.PhasePolish:
		s.record("back", types.PhaseDiagnosis)
	default:
		return &PreconditionError{Op: "back", Message: "already at the initial phase"}
	}
	return nil
}

// Reset restores the initial empty state from any phase. The session ID
// and language are kept, and the transition log is append-only: the
// reset is recorded on top of the prior history, not in place of it.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("reset", types.PhaseDiscoveryCapture)
	s.rawExperience.Reset()
	s.attachment = nil
	s.transcript = nil
	s.jobDescription = ""
	s.profile = nil
	s.fit = nil
	s.resume = nil
	s.critique = nil
	s.refinementNote = ""
}

// SetDialogue registers the live interview stream so advancing actions can
// force-close it. Passing nil clears the handle.
func (s *Session) SetDialogue(c io.Closer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogue = c
}

// DialogueActive reports whether a live interview stream is registered.
func (s *Session) DialogueActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialogue != nil
}

// CloseDialogue closes and clears the live interview stream, if any. The
// workflow calls this before leaving the capture phase so the extractor
// always sees the fully folded transcript.
func (s *Session) CloseDialogue() error {
	s.mu.Lock()
	c := s.dialogue
	s.dialogue = nil
	s.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}
