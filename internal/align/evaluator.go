package align

import (
	"sort"

	"github.com/ekurganov/claimlens/internal/model"
)

// Evaluator assigns a relation label to every (claim, evidence) pair
// and aggregates an evidence-strength score per claim. It is a pure
// function of its inputs plus static configuration: identical claim
// text and an identical evidence sequence always produce an identical
// result.
type Evaluator struct {
	cfg           model.ScoringConfig
	contradiction Predicate
}

// NewEvaluator creates an evaluator with the default negation-mismatch
// contradiction predicate.
func NewEvaluator(cfg model.ScoringConfig) *Evaluator {
	return NewEvaluatorWithPredicate(cfg, NegationMismatch)
}

// NewEvaluatorWithPredicate creates an evaluator with a custom
// contradiction predicate.
func NewEvaluatorWithPredicate(cfg model.ScoringConfig, predicate Predicate) *Evaluator {
	if predicate == nil {
		predicate = NegationMismatch
	}
	return &Evaluator{cfg: cfg, contradiction: predicate}
}

// Evaluate labels each evidence chunk and computes the aggregate
// evidence strength for the claim.
//
// Labeling rules, per chunk:
//   - similarity below similarity_threshold: IRRELEVANT, excluded from
//     aggregation entirely
//   - contradiction predicate fires: CONTRADICTS, regardless of where
//     the chunk ranks among the retained ones
//   - similarity at or above strong_similarity_threshold: SUPPORTS
//   - otherwise: WEAK_SUPPORT
//
// Strength is the mean contribution across retained chunks: SUPPORTS
// contributes its similarity, WEAK_SUPPORT contributes
// weak_support_weight x similarity, CONTRADICTS contributes zero (it
// still dilutes the mean, which is intended: contradicted claims must
// not look well-supported because one other chunk agrees).
func (e *Evaluator) Evaluate(claim model.Claim, evidence []model.EvidenceChunk) model.AlignmentResult {
	result := model.AlignmentResult{
		ClaimID:       claim.ID,
		Contradiction: model.ContradictionNone,
	}
	if len(evidence) == 0 {
		return result
	}

	labeled := make([]model.EvidenceChunk, len(evidence))
	copy(labeled, evidence)

	retained := 0
	var contributions float64
	for i := range labeled {
		chunk := &labeled[i]

		if chunk.SimilarityScore < e.cfg.SimilarityThreshold {
			chunk.Relation = model.RelationIrrelevant
			continue
		}

		if e.contradiction(claim.Text, chunk.Text) {
			chunk.Relation = model.RelationContradicts
			retained++
			if result.Contradiction == model.ContradictionNone {
				result.Contradiction = contradictionType(claim.Text, chunk.Text)
			}
			continue
		}

		if chunk.SimilarityScore >= e.cfg.StrongSimilarityThreshold {
			chunk.Relation = model.RelationSupports
			contributions += chunk.SimilarityScore
		} else {
			chunk.Relation = model.RelationWeakSupport
			contributions += e.cfg.WeakSupportWeight * chunk.SimilarityScore
		}
		retained++
	}

	if retained > 0 {
		result.EvidenceStrength = clamp01(contributions / float64(retained))
	}

	// Rank by similarity descending; ties keep original retrieval
	// order so the output is stable across runs.
	sort.SliceStable(labeled, func(i, j int) bool {
		return labeled[i].SimilarityScore > labeled[j].SimilarityScore
	})
	result.LabeledEvidence = labeled

	return result
}

func contradictionType(claimText, evidenceText string) model.ContradictionType {
	switch classifyContradiction(claimText, evidenceText) {
	case KindTemporal:
		return model.ContradictionTemporal
	case KindQuantitative:
		return model.ContradictionQuantitative
	default:
		return model.ContradictionNegation
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
