package types

// ResumeDocument is the generated résumé body. Content is markdown
// structured text. Annotated marks the internal-review lifecycle phase in
// which the body carries inline match-tag markers; the final document has
// them stripped.
type ResumeDocument struct {
	Content   string `json:"content"`
	Annotated bool   `json:"annotated"`
}

// Severity ranks a critique finding.
type Severity string

// Severity values.
const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// Valid reports whether s is a defined severity.
func (s Severity) Valid() bool {
	return s == SeverityCritical || s == SeverityMajor || s == SeverityMinor
}

// Finding is one structured critique of the current document revision.
type Finding struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Action      string   `json:"action"`
	Severity    Severity `json:"severity"`
}

// Role identifies the speaker of a transcript utterance.
type Role string

// Transcript roles.
const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Utterance is one complete turn-level entry of the visible transcript
// history.
type Utterance struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
