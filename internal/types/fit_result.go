package types

// MatchLevel grades how well one piece of profile evidence covers a job
// requirement.
type MatchLevel string

// Match levels, strongest first.
const (
	MatchHigh MatchLevel = "high"
	MatchMid  MatchLevel = "mid"
	MatchLow  MatchLevel = "low"
)

// Valid reports whether m is a defined match level.
func (m MatchLevel) Valid() bool {
	return m == MatchHigh || m == MatchMid || m == MatchLow
}

// Conclusion is the categorical verdict of a fit check.
type Conclusion string

// Conclusion values follow the wording of the generator contract: they
// correspond to the proceed / stretch / pivot categories.
const (
	ConclusionGoForIt Conclusion = "Go for it"
	ConclusionStretch Conclusion = "Stretch goal"
	ConclusionPivot   Conclusion = "Pivot needed"
)

// Valid reports whether c is a defined conclusion.
func (c Conclusion) Valid() bool {
	return c == ConclusionGoForIt || c == ConclusionStretch || c == ConclusionPivot
}

// ComparisonRow is one requirement/evidence pairing in the fit table.
type ComparisonRow struct {
	Requirement string     `json:"requirement"`
	Evidence    string     `json:"evidence"`
	Match       MatchLevel `json:"match"`
}

// FitResult scores a DnaProfile against one job description. It is
// immutable once produced and always derived from exactly one profile and
// one job description.
type FitResult struct {
	Score            float64         `json:"score"`
	ComparisonTable  []ComparisonRow `json:"comparisonTable"`
	WhyMatch         []string        `json:"whyMatch"`
	Gaps             []string        `json:"gaps"`
	Conclusion       Conclusion      `json:"conclusion"`
	AlternativeRoles []string        `json:"alternativeRoles,omitempty"`
}
