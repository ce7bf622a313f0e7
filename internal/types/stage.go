// Package types provides type definitions for the structured data shared
// across the resume-aligner workflow.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Stage is the coarse four-step progression shown to the user.
type Stage int

// Stage values are strictly ordered; the workflow only moves forward
// except through the explicit back and reset operations.
const (
	StageDiscovery Stage = iota + 1
	StageFitCheck
	StageDiagnosis
	StagePolish
)

// String returns the human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageDiscovery:
		return "discovery"
	case StageFitCheck:
		return "fit_check"
	case StageDiagnosis:
		return "diagnosis"
	case StagePolish:
		return "polish"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Valid reports whether s is one of the four defined stages.
func (s Stage) Valid() bool {
	return s >= StageDiscovery && s <= StagePolish
}

// Phase is the full workflow state. It refines Stage so that artifact
// presence is part of the state itself: a session in PhaseDiscoveryReview
// always holds a DnaProfile, a session in PhaseFitCheckReview always holds
// a FitResult, and so on. This keeps the "which sub-step comes next"
// decision out of nullable-field checks.
type Phase int

// Phase values, in workflow order.
const (
	PhaseDiscoveryCapture Phase = iota + 1
	PhaseDiscoveryReview
	PhaseFitCheckInput
	PhaseFitCheckReview
	PhaseDiagnosis
	PhasePolish
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseDiscoveryCapture:
		return "discovery_capture"
	case PhaseDiscoveryReview:
		return "discovery_review"
	case PhaseFitCheckInput:
		return "fit_check_input"
	case PhaseFitCheckReview:
		return "fit_check_review"
	case PhaseDiagnosis:
		return "diagnosis"
	case PhasePolish:
		return "polish"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Valid reports whether p is a defined phase.
func (p Phase) Valid() bool {
	return p >= PhaseDiscoveryCapture && p <= PhasePolish
}

// Stage maps the phase onto the coarse four-step progression.
func (p Phase) Stage() Stage {
	switch p {
	case PhaseDiscoveryCapture, PhaseDiscoveryReview:
		return StageDiscovery
	case PhaseFitCheckInput, PhaseFitCheckReview:
		return StageFitCheck
	case PhaseDiagnosis:
		return StageDiagnosis
	case PhasePolish:
		return StagePolish
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler so phases serialize as
// their wire names in JSON responses.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// MarshalText implements encoding.TextMarshaler for Stage.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stage %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Phase, the
// inverse of MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "discovery_capture":
		*p = PhaseDiscoveryCapture
	case "discovery_review":
		*p = PhaseDiscoveryReview
	case "fit_check_input":
		*p = PhaseFitCheckInput
	case "fit_check_review":
		*p = PhaseFitCheckReview
	case "diagnosis":
		*p = PhaseDiagnosis
	case "polish":
		*p = PhasePolish
	default:
		return fmt.Errorf("invalid phase %q", text)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Stage, the
// inverse of MarshalText.
func (s *Stage) UnmarshalText(text []byte) error {
	switch string(text) {
	case "discovery":
		*s = StageDiscovery
	case "fit_check":
		*s = StageFitCheck
	case "diagnosis":
		*s = StageDiagnosis
	case "polish":
		*s = StagePolish
	default:
		return fmt.Errorf("invalid stage %q", text)
	}
	return nil
}
