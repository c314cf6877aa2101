package extract

import (
	"regexp"
	"strings"

	"github.com/ekurganov/claimlens/internal/model"
)

// Hedging markers that indicate the model is uncertain about its own
// assertion. Detected locally on every claim, whether or not an LLM
// did the extraction.
var hedgingRegex = regexp.MustCompile(`(?i)\b(?:might|may|could|possibly|perhaps|probably|likely|unlikely|` +
	`reportedly|allegedly|seems?|appears?|suggests?|arguably|` +
	`generally|typically|usually|often|sometimes)\b`)

var (
	multiHopRegex = regexp.MustCompile(`(?i)\b(?:because|therefore|thus|hence|consequently|as a result|` +
		`since|given that|due to|owing to|which means|this implies|leading to)\b`)
	temporalRegex = regexp.MustCompile(`(?i)\b(?:as of|since|until|before|after|recently|currently|now|` +
		`in \d{4}|during \d{4}|by \d{4}|last year|this year|next year)\b`)
	comparativeRegex = regexp.MustCompile(`(?i)\b(?:faster|slower|better|worse|more|less|larger|smaller)\s+than\b|` +
		`\b(?:compared to|relative to|versus|vs\.?)\b|\b(?:the most|the least|the best|the worst)\b`)
	quantitativeRegex = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:billion|million|thousand|percent|%)\b|` +
		`\b(?:approximately|about|around|roughly)\s*\d+\b`)
)

// DetectHedges returns the distinct hedging markers found in the text,
// lowercased, in order of first appearance.
func DetectHedges(text string) []string {
	seen := make(map[string]bool)
	var flags []string
	for _, m := range hedgingRegex.FindAllString(text, -1) {
		marker := strings.ToLower(m)
		if !seen[marker] {
			seen[marker] = true
			flags = append(flags, marker)
		}
	}
	return flags
}

// ClassifyClaim assigns a structural claim type from surface patterns.
// Hedging dominates; the remaining checks are mutually exclusive by
// priority.
func ClassifyClaim(text string) model.ClaimType {
	switch {
	case hedgingRegex.MatchString(text):
		return model.ClaimTypeHedged
	case multiHopRegex.MatchString(text):
		return model.ClaimTypeMultiHop
	case temporalRegex.MatchString(text):
		return model.ClaimTypeTemporal
	case comparativeRegex.MatchString(text):
		return model.ClaimTypeComparative
	case quantitativeRegex.MatchString(text):
		return model.ClaimTypeQuantitative
	default:
		return model.ClaimTypeDirect
	}
}
