package model

// EvidenceChunk represents a retrieved passage from the corpus.
// Retrieval populates Text, SourceID and SimilarityScore; the relation
// is assigned later by alignment evaluation, never by retrieval.
type EvidenceChunk struct {
	ID              string        `json:"id"`
	Text            string        `json:"text"`
	SourceID        string        `json:"source_id"`          // Source document path or identifier
	ChunkIndex      int           `json:"chunk_index"`        // Position in source document
	SimilarityScore float64       `json:"similarity_score"`   // Semantic similarity to the claim, in [0,1]
	Relation        RelationLabel `json:"relation,omitempty"` // Assigned by alignment, empty until then
}

// RelationLabel is the logical stance of one evidence chunk toward one
// claim. Exactly one label per (claim, evidence) pair.
type RelationLabel string

const (
	RelationSupports    RelationLabel = "SUPPORTS"
	RelationWeakSupport RelationLabel = "WEAK_SUPPORT"
	RelationContradicts RelationLabel = "CONTRADICTS"
	RelationIrrelevant  RelationLabel = "IRRELEVANT"
)

// ContradictionType classifies how evidence conflicts with a claim
type ContradictionType string

const (
	ContradictionNone         ContradictionType = "NONE"
	ContradictionNegation     ContradictionType = "DIRECT_NEGATION"       // "X is Y" vs "X is not Y"
	ContradictionTemporal     ContradictionType = "TEMPORAL_MISMATCH"     // Different time periods
	ContradictionQuantitative ContradictionType = "QUANTITATIVE_MISMATCH" // Different numbers
)

// AlignmentResult holds the per-claim outcome of alignment evaluation
type AlignmentResult struct {
	ClaimID          string            `json:"claim_id"`
	EvidenceStrength float64           `json:"evidence_strength"` // Aggregate support in [0,1]
	Contradiction    ContradictionType `json:"contradiction_type"`
	LabeledEvidence  []EvidenceChunk   `json:"labeled_evidence"` // Relation assigned, ranked by similarity desc
}

// Contradicted reports whether any retained chunk contradicts the claim
func (a *AlignmentResult) Contradicted() bool {
	return a.Contradiction != ContradictionNone
}

// Retained returns the chunks that participate in strength aggregation
// (everything except IRRELEVANT), preserving rank order.
func (a *AlignmentResult) Retained() []EvidenceChunk {
	var out []EvidenceChunk
	for _, ev := range a.LabeledEvidence {
		if ev.Relation != RelationIrrelevant {
			out = append(out, ev)
		}
	}
	return out
}

// OnlyWeakSupport reports whether at least one chunk was retained and
// every retained chunk is WEAK_SUPPORT.
func (a *AlignmentResult) OnlyWeakSupport() bool {
	retained := a.Retained()
	if len(retained) == 0 {
		return false
	}
	for _, ev := range retained {
		if ev.Relation != RelationWeakSupport {
			return false
		}
	}
	return true
}

// BestEvidence returns the highest-ranked supporting chunk for
// explanation purposes, preferring SUPPORTS over WEAK_SUPPORT. Returns
// nil when nothing supports the claim.
func (a *AlignmentResult) BestEvidence() *EvidenceChunk {
	for _, label := range []RelationLabel{RelationSupports, RelationWeakSupport} {
		for i := range a.LabeledEvidence {
			if a.LabeledEvidence[i].Relation == label {
				return &a.LabeledEvidence[i]
			}
		}
	}
	return nil
}
