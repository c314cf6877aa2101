package align

import (
	"math"
	"reflect"
	"testing"

	"github.com/ekurganov/claimlens/internal/model"
)

func testScoringConfig() model.ScoringConfig {
	return model.DefaultConfig().Scoring
}

func TestEvaluator_ContradictionScenario(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "Python 3.12 completely removed the GIL"}
	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "The GIL was not removed in Python 3.12.", SimilarityScore: 0.81},
		{ID: "e2", Text: "Python 3.13 offers an optional free-threaded build.", SimilarityScore: 0.55},
	}

	result := evaluator.Evaluate(claim, evidence)

	if len(result.LabeledEvidence) != 2 {
		t.Fatalf("expected 2 labeled chunks, got %d", len(result.LabeledEvidence))
	}

	if result.LabeledEvidence[0].Relation != model.RelationContradicts {
		t.Errorf("expected CONTRADICTS for chunk with negation mismatch, got %s", result.LabeledEvidence[0].Relation)
	}
	if result.LabeledEvidence[1].Relation != model.RelationWeakSupport {
		t.Errorf("expected WEAK_SUPPORT for mid-similarity chunk, got %s", result.LabeledEvidence[1].Relation)
	}

	if result.Contradiction != model.ContradictionNegation {
		t.Errorf("expected DIRECT_NEGATION, got %s", result.Contradiction)
	}

	// Mean contribution over two retained chunks: (0 + 0.5*0.55) / 2
	expected := 0.1375
	if math.Abs(result.EvidenceStrength-expected) > 1e-9 {
		t.Errorf("expected strength %.4f, got %.4f", expected, result.EvidenceStrength)
	}
}

func TestEvaluator_StrongSupport(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "Go was first released in 2009"}
	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "Go was first released in 2009 by Google.", SimilarityScore: 0.9},
	}

	result := evaluator.Evaluate(claim, evidence)

	if result.LabeledEvidence[0].Relation != model.RelationSupports {
		t.Errorf("expected SUPPORTS, got %s", result.LabeledEvidence[0].Relation)
	}
	if math.Abs(result.EvidenceStrength-0.9) > 1e-9 {
		t.Errorf("expected strength 0.9, got %.4f", result.EvidenceStrength)
	}
	if result.Contradicted() {
		t.Error("expected no contradiction")
	}
}

func TestEvaluator_IrrelevantExcluded(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "The cache supports TTL eviction"}
	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "The cache evicts entries after their TTL expires.", SimilarityScore: 0.8},
		{ID: "e2", Text: "Unrelated text about cooking pasta.", SimilarityScore: 0.1},
	}

	result := evaluator.Evaluate(claim, evidence)

	if result.LabeledEvidence[1].Relation != model.RelationIrrelevant {
		t.Errorf("expected IRRELEVANT for low-similarity chunk, got %s", result.LabeledEvidence[1].Relation)
	}

	// The irrelevant chunk must not dilute the mean
	if math.Abs(result.EvidenceStrength-0.8) > 1e-9 {
		t.Errorf("expected strength 0.8, got %.4f", result.EvidenceStrength)
	}

	if len(result.Retained()) != 1 {
		t.Errorf("expected 1 retained chunk, got %d", len(result.Retained()))
	}
}

func TestEvaluator_EmptyEvidence(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	result := evaluator.Evaluate(model.Claim{ID: "c1", Text: "Anything at all"}, nil)

	if result.EvidenceStrength != 0 {
		t.Errorf("expected strength 0, got %.4f", result.EvidenceStrength)
	}
	if result.Contradiction != model.ContradictionNone {
		t.Errorf("expected NONE, got %s", result.Contradiction)
	}
	if len(result.LabeledEvidence) != 0 {
		t.Errorf("expected no labeled evidence, got %d", len(result.LabeledEvidence))
	}
}

func TestEvaluator_AllIrrelevant(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "The moon is made of rock"}
	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "A page about databases.", SimilarityScore: 0.05},
		{ID: "e2", Text: "A page about compilers.", SimilarityScore: 0.12},
	}

	result := evaluator.Evaluate(claim, evidence)

	if result.EvidenceStrength != 0 {
		t.Errorf("expected strength 0 with no retained chunks, got %.4f", result.EvidenceStrength)
	}
	if result.OnlyWeakSupport() {
		t.Error("OnlyWeakSupport must be false when nothing was retained")
	}
}

func TestEvaluator_Deterministic(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "The parser handles UTF-8 input"}
	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "The parser accepts UTF-8 encoded input.", SimilarityScore: 0.75},
		{ID: "e2", Text: "Input validation happens before parsing.", SimilarityScore: 0.45},
	}

	first := evaluator.Evaluate(claim, evidence)
	second := evaluator.Evaluate(claim, evidence)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results for identical inputs")
	}
}

func TestEvaluator_InputNotMutated(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "Some evidence text here.", SimilarityScore: 0.8},
	}

	evaluator.Evaluate(model.Claim{ID: "c1", Text: "Some claim"}, evidence)

	if evidence[0].Relation != "" {
		t.Errorf("input slice was mutated: relation = %s", evidence[0].Relation)
	}
}

func TestEvaluator_StableTieOrder(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "The service retries failed requests"}
	evidence := []model.EvidenceChunk{
		{ID: "first", Text: "Failed requests are retried three times.", SimilarityScore: 0.6},
		{ID: "second", Text: "Retries use exponential backoff.", SimilarityScore: 0.6},
	}

	result := evaluator.Evaluate(claim, evidence)

	if result.LabeledEvidence[0].ID != "first" || result.LabeledEvidence[1].ID != "second" {
		t.Errorf("ties must keep retrieval order, got %s then %s",
			result.LabeledEvidence[0].ID, result.LabeledEvidence[1].ID)
	}
}

func TestEvaluator_RanksBySimilarityDescending(t *testing.T) {
	evaluator := NewEvaluator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "The daemon writes logs to disk"}
	evidence := []model.EvidenceChunk{
		{ID: "low", Text: "Logs rotate daily.", SimilarityScore: 0.4},
		{ID: "high", Text: "The daemon appends log records to a file on disk.", SimilarityScore: 0.85},
	}

	result := evaluator.Evaluate(claim, evidence)

	if result.LabeledEvidence[0].ID != "high" {
		t.Errorf("expected highest-similarity chunk first, got %s", result.LabeledEvidence[0].ID)
	}
}

func TestEvaluator_CustomPredicate(t *testing.T) {
	// A predicate that never fires suppresses all contradictions
	never := func(claimText, evidenceText string) bool { return false }
	evaluator := NewEvaluatorWithPredicate(testScoringConfig(), never)

	claim := model.Claim{ID: "c1", Text: "The GIL was removed"}
	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "The GIL was not removed.", SimilarityScore: 0.9},
	}

	result := evaluator.Evaluate(claim, evidence)

	if result.Contradicted() {
		t.Error("expected no contradiction with never-firing predicate")
	}
	if result.LabeledEvidence[0].Relation != model.RelationSupports {
		t.Errorf("expected SUPPORTS, got %s", result.LabeledEvidence[0].Relation)
	}
}

func TestEvaluator_TemporalContradictionType(t *testing.T) {
	// Predicate fires without a negation mismatch; disjoint years select
	// the temporal sub-type.
	always := func(claimText, evidenceText string) bool { return true }
	evaluator := NewEvaluatorWithPredicate(testScoringConfig(), always)

	claim := model.Claim{ID: "c1", Text: "The standard was ratified in 2015"}
	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "The standard was ratified in 2017.", SimilarityScore: 0.8},
	}

	result := evaluator.Evaluate(claim, evidence)

	if result.Contradiction != model.ContradictionTemporal {
		t.Errorf("expected TEMPORAL_MISMATCH, got %s", result.Contradiction)
	}
}

func TestEvaluator_NilPredicateDefaults(t *testing.T) {
	evaluator := NewEvaluatorWithPredicate(testScoringConfig(), nil)

	claim := model.Claim{ID: "c1", Text: "The flag is enabled by default"}
	evidence := []model.EvidenceChunk{
		{ID: "e1", Text: "The flag is not enabled by default.", SimilarityScore: 0.8},
	}

	result := evaluator.Evaluate(claim, evidence)
	if !result.Contradicted() {
		t.Error("nil predicate must fall back to negation mismatch")
	}
}
