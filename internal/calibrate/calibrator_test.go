package calibrate

import (
	"math"
	"testing"

	"github.com/ekurganov/claimlens/internal/model"
)

func testScoringConfig() model.ScoringConfig {
	return model.DefaultConfig().Scoring
}

func floatPtr(v float64) *float64 { return &v }

func contradictedAlignment() model.AlignmentResult {
	return model.AlignmentResult{
		ClaimID:          "c1",
		EvidenceStrength: 0.1375,
		Contradiction:    model.ContradictionNegation,
		LabeledEvidence: []model.EvidenceChunk{
			{ID: "e1", SimilarityScore: 0.81, Relation: model.RelationContradicts},
			{ID: "e2", SimilarityScore: 0.55, Relation: model.RelationWeakSupport},
		},
	}
}

func TestCalibrator_ContradictionPenalty(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "Python 3.12 completely removed the GIL", RawConfidence: floatPtr(0.92)}
	result := calibrator.Calibrate(claim, contradictedAlignment())

	if len(result.AppliedPenalties) != 1 {
		t.Fatalf("expected 1 penalty, got %d", len(result.AppliedPenalties))
	}
	if result.AppliedPenalties[0].Name != PenaltyContradiction {
		t.Errorf("expected %s, got %s", PenaltyContradiction, result.AppliedPenalties[0].Name)
	}
	if result.AppliedPenalties[0].Magnitude != 0.60 {
		t.Errorf("expected magnitude 0.60, got %.2f", result.AppliedPenalties[0].Magnitude)
	}
	if math.Abs(result.CalibratedConfidence-0.32) > 1e-9 {
		t.Errorf("expected calibrated 0.32, got %.4f", result.CalibratedConfidence)
	}
	if result.RawConfidence != 0.92 {
		t.Errorf("expected raw 0.92, got %.4f", result.RawConfidence)
	}
}

func TestCalibrator_NoEvidencePenalty(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	// No confidence reported: the neutral default (0.5) applies
	claim := model.Claim{ID: "c1", Text: "The sky is green"}
	alignment := model.AlignmentResult{ClaimID: "c1"}

	result := calibrator.Calibrate(claim, alignment)

	if len(result.AppliedPenalties) != 1 || result.AppliedPenalties[0].Name != PenaltyNoEvidence {
		t.Fatalf("expected only %s, got %+v", PenaltyNoEvidence, result.AppliedPenalties)
	}
	if math.Abs(result.CalibratedConfidence-0.10) > 1e-9 {
		t.Errorf("expected calibrated 0.10, got %.4f", result.CalibratedConfidence)
	}
}

func TestCalibrator_NoEvidenceExcludedWhenContradicted(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	// Strength zero because the only retained chunk contradicts; that is
	// a contradiction case, not a no-evidence case.
	alignment := model.AlignmentResult{
		ClaimID:       "c1",
		Contradiction: model.ContradictionNegation,
		LabeledEvidence: []model.EvidenceChunk{
			{ID: "e1", SimilarityScore: 0.8, Relation: model.RelationContradicts},
		},
	}

	claim := model.Claim{ID: "c1", Text: "Claim text", RawConfidence: floatPtr(0.9)}
	result := calibrator.Calibrate(claim, alignment)

	for _, p := range result.AppliedPenalties {
		if p.Name == PenaltyNoEvidence {
			t.Error("no_evidence must not fire alongside a contradiction")
		}
	}
}

func TestCalibrator_WeakEvidencePenalty(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	alignment := model.AlignmentResult{
		ClaimID:          "c1",
		EvidenceStrength: 0.25,
		Contradiction:    model.ContradictionNone,
		LabeledEvidence: []model.EvidenceChunk{
			{ID: "e1", SimilarityScore: 0.5, Relation: model.RelationWeakSupport},
			{ID: "e2", SimilarityScore: 0.4, Relation: model.RelationWeakSupport},
		},
	}

	claim := model.Claim{ID: "c1", Text: "Claim text here", RawConfidence: floatPtr(0.8)}
	result := calibrator.Calibrate(claim, alignment)

	if len(result.AppliedPenalties) != 1 || result.AppliedPenalties[0].Name != PenaltyWeakEvidence {
		t.Fatalf("expected only %s, got %+v", PenaltyWeakEvidence, result.AppliedPenalties)
	}
	if math.Abs(result.CalibratedConfidence-0.65) > 1e-9 {
		t.Errorf("expected calibrated 0.65, got %.4f", result.CalibratedConfidence)
	}
}

func TestCalibrator_VagueLanguagePenalty(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	alignment := model.AlignmentResult{
		ClaimID:          "c1",
		EvidenceStrength: 0.8,
		LabeledEvidence: []model.EvidenceChunk{
			{ID: "e1", SimilarityScore: 0.8, Relation: model.RelationSupports},
		},
	}

	claim := model.Claim{
		ID:            "c1",
		Text:          "The fix might resolve the leak",
		RawConfidence: floatPtr(0.7),
		HedgeFlags:    []string{"might"},
	}

	result := calibrator.Calibrate(claim, alignment)

	if len(result.AppliedPenalties) != 1 || result.AppliedPenalties[0].Name != PenaltyVagueLanguage {
		t.Fatalf("expected only %s, got %+v", PenaltyVagueLanguage, result.AppliedPenalties)
	}
	if math.Abs(result.CalibratedConfidence-0.5) > 1e-9 {
		t.Errorf("expected calibrated 0.5, got %.4f", result.CalibratedConfidence)
	}
}

func TestCalibrator_PenaltyOrderAndClamping(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	// No evidence plus hedging on a low-confidence claim: the running
	// value clamps to zero after the first penalty and stays there, but
	// both penalties are still recorded in order.
	claim := model.Claim{
		ID:            "c1",
		Text:          "This might be true",
		RawConfidence: floatPtr(0.3),
		HedgeFlags:    []string{"might"},
	}
	alignment := model.AlignmentResult{ClaimID: "c1"}

	result := calibrator.Calibrate(claim, alignment)

	if len(result.AppliedPenalties) != 2 {
		t.Fatalf("expected 2 penalties, got %d", len(result.AppliedPenalties))
	}
	if result.AppliedPenalties[0].Name != PenaltyNoEvidence || result.AppliedPenalties[1].Name != PenaltyVagueLanguage {
		t.Errorf("penalty order wrong: %+v", result.AppliedPenalties)
	}
	if result.CalibratedConfidence != 0 {
		t.Errorf("expected calibrated 0, got %.4f", result.CalibratedConfidence)
	}
}

func TestCalibrator_RawConfidenceClamped(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "Overconfident claim", RawConfidence: floatPtr(1.5)}
	alignment := model.AlignmentResult{
		ClaimID:          "c1",
		EvidenceStrength: 0.9,
		LabeledEvidence: []model.EvidenceChunk{
			{ID: "e1", SimilarityScore: 0.9, Relation: model.RelationSupports},
		},
	}

	result := calibrator.Calibrate(claim, alignment)

	if result.RawConfidence != 1.0 {
		t.Errorf("expected raw clamped to 1.0, got %.4f", result.RawConfidence)
	}
}

func TestCalibrator_NoPenalties(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	claim := model.Claim{ID: "c1", Text: "Well supported claim", RawConfidence: floatPtr(0.85)}
	alignment := model.AlignmentResult{
		ClaimID:          "c1",
		EvidenceStrength: 0.85,
		LabeledEvidence: []model.EvidenceChunk{
			{ID: "e1", SimilarityScore: 0.85, Relation: model.RelationSupports},
		},
	}

	result := calibrator.Calibrate(claim, alignment)

	if len(result.AppliedPenalties) != 0 {
		t.Errorf("expected no penalties, got %+v", result.AppliedPenalties)
	}
	if result.CalibratedConfidence != result.RawConfidence {
		t.Errorf("expected calibrated == raw, got %.4f vs %.4f",
			result.CalibratedConfidence, result.RawConfidence)
	}
}

func TestCalibrator_AuditTrailReplayable(t *testing.T) {
	calibrator := NewCalibrator(testScoringConfig())

	claim := model.Claim{
		ID:            "c1",
		Text:          "The release may have shipped",
		RawConfidence: floatPtr(0.9),
		HedgeFlags:    []string{"may"},
	}
	result := calibrator.Calibrate(claim, contradictedAlignment())

	// Replaying the recorded penalties from the raw value must land on
	// the calibrated value exactly.
	replayed := result.RawConfidence
	for _, p := range result.AppliedPenalties {
		replayed -= p.Magnitude
		if replayed < 0 {
			replayed = 0
		}
		if replayed > 1 {
			replayed = 1
		}
	}

	if math.Abs(replayed-result.CalibratedConfidence) > 1e-12 {
		t.Errorf("replay mismatch: %.6f vs %.6f", replayed, result.CalibratedConfidence)
	}
}
