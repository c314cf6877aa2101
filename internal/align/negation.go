package align

import (
	"regexp"
	"strings"
)

// Predicate decides whether evidence text contradicts claim text.
// The default is a negation-mismatch heuristic; callers can plug in a
// stronger implementation (e.g. an NLI model) without touching the
// evaluator's control flow.
type Predicate func(claimText, evidenceText string) bool

var negationRegex = regexp.MustCompile(`(?i)\b(?:not|no|never|none|neither|nor|nothing|nowhere|nobody|` +
	`isn't|aren't|wasn't|weren't|won't|wouldn't|couldn't|shouldn't|` +
	`doesn't|don't|didn't|hasn't|haven't|hadn't|cannot|can't)\b`)

var (
	yearRegex   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	numberRegex = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// ContainsNegation reports whether the text carries an explicit
// negation marker.
func ContainsNegation(text string) bool {
	return negationRegex.MatchString(text)
}

// NegationMismatch is the default contradiction predicate: exactly one
// of the two texts negates. "X removed Y" against "X did NOT remove Y"
// trips it; two negated texts agree and do not.
func NegationMismatch(claimText, evidenceText string) bool {
	return ContainsNegation(claimText) != ContainsNegation(evidenceText)
}

// classifyContradiction picks the contradiction sub-type once the
// predicate has fired. Negation mismatch wins; otherwise disjoint year
// or number sets indicate a temporal or quantitative conflict.
func classifyContradiction(claimText, evidenceText string) ContradictionKind {
	if NegationMismatch(claimText, evidenceText) {
		return KindNegation
	}

	claimYears := matchSet(yearRegex, claimText)
	evidenceYears := matchSet(yearRegex, evidenceText)
	if len(claimYears) > 0 && len(evidenceYears) > 0 && disjoint(claimYears, evidenceYears) {
		return KindTemporal
	}

	claimNumbers := matchSet(numberRegex, claimText)
	evidenceNumbers := matchSet(numberRegex, evidenceText)
	if len(claimNumbers) > 0 && len(evidenceNumbers) > 0 && disjoint(claimNumbers, evidenceNumbers) {
		return KindQuantitative
	}

	return KindNegation
}

// ContradictionKind is the internal classification fed into the
// model-level contradiction type.
type ContradictionKind int

const (
	KindNegation ContradictionKind = iota
	KindTemporal
	KindQuantitative
)

func matchSet(re *regexp.Regexp, text string) map[string]bool {
	set := make(map[string]bool)
	for _, m := range re.FindAllString(text, -1) {
		set[strings.ToLower(m)] = true
	}
	return set
}

func disjoint(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return false
		}
	}
	return true
}
