// Package llm provides the Gemini client wrapper and shared error types
// for every generator sub-step call.
package llm

// ModelTier represents the capability level requested for a call.
type ModelTier string

const (
	// TierStandard is for structured extraction and scoring.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for full document generation and refinement.
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model selection per tier.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, or empty if unconfigured.
func (c *Config) GetModel(tier ModelTier) string {
	if c == nil || c.Models == nil {
		return ""
	}
	return c.Models[tier]
}
