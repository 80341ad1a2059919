// Package llm provides the generative-text client used by keyword extraction
// and content tailoring, plus the shared retry policy for calls to it.
package llm

// ModelTier represents the capability level requested for a generation call.
type ModelTier string

const (
	// TierLite is for cheap structured tasks: keyword extraction, skill suggestions
	TierLite ModelTier = "lite"
	// TierStandard is for moderate tasks: summary generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for nuanced tasks: bullet rewriting
	TierAdvanced ModelTier = "advanced"
)

// Config maps model tiers to concrete Gemini model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default tier-to-model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back down the tier
// chain when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
