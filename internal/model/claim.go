package model

// Claim represents an atomic, checkable assertion extracted from an answer
type Claim struct {
	ID            string    `json:"id"`                       // Unique identifier assigned at extraction
	Text          string    `json:"text"`                     // The claim text itself
	Span          Span      `json:"span"`                     // Best-effort offsets into the source answer
	RawConfidence *float64  `json:"raw_confidence,omitempty"` // Self-reported model confidence, nil if absent
	Type          ClaimType `json:"type,omitempty"`           // Structural classification
	HedgeFlags    []string  `json:"hedge_flags,omitempty"`    // Hedging markers detected in the claim text
}

// Span holds approximate character offsets into the source answer.
// Extraction is not required to produce valid offsets; consumers treat
// a span with Start > End as unknown.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether the span is usable for highlighting
func (s Span) Valid() bool {
	return s.Start >= 0 && s.Start <= s.End
}

// ClaimType categorizes the structure of the claim
type ClaimType string

const (
	ClaimTypeDirect       ClaimType = "direct"       // Simple, directly verifiable: "X is Y"
	ClaimTypeHedged       ClaimType = "hedged"       // Contains hedging: "might", "possibly"
	ClaimTypeMultiHop     ClaimType = "multi_hop"    // Requires chaining facts: "A because B"
	ClaimTypeTemporal     ClaimType = "temporal"     // Time-sensitive: "as of 2023"
	ClaimTypeComparative  ClaimType = "comparative"  // Comparison: "faster than"
	ClaimTypeQuantitative ClaimType = "quantitative" // Numbers/stats: "175 billion parameters"
)

// Confidence returns the raw confidence, substituting the configured
// neutral default when the extractor omitted it.
func (c *Claim) Confidence(defaultConfidence float64) float64 {
	if c.RawConfidence == nil {
		return defaultConfidence
	}
	return *c.RawConfidence
}

// Hedged reports whether hedging language was detected in the claim
func (c *Claim) Hedged() bool {
	return len(c.HedgeFlags) > 0
}
