package verdict

import (
	"fmt"

	"github.com/ekurganov/claimlens/internal/model"
)

// Engine combines calibrated confidence and evidence strength into a
// risk score and a discrete label. Pure function of its inputs plus
// configuration.
type Engine struct {
	cfg model.ScoringConfig
}

// NewEngine creates a verdict engine with the given scoring options
func NewEngine(cfg model.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Decide produces the verdict for one claim.
//
// risk = clamp01(risk_confidence_weight x calibrated
//   + risk_evidence_weight x (1 - evidence_strength))
//
// Label precedence, first match wins:
//  1. evidence_strength < hallucination_threshold  -> HALLUCINATED
//  2. evidence_strength > grounded_threshold and no contradiction -> GROUNDED
//  3. otherwise -> WEAK
//
// Rule 1 takes precedence even when the thresholds are reconfigured to
// cross; that is defined behavior, not an error.
func (e *Engine) Decide(claim model.Claim, calibration model.CalibrationResult, alignment model.AlignmentResult) model.Verdict {
	risk := clamp01(e.cfg.RiskConfidenceWeight*calibration.CalibratedConfidence +
		e.cfg.RiskEvidenceWeight*(1-alignment.EvidenceStrength))

	var label model.VerdictLabel
	switch {
	case alignment.EvidenceStrength < e.cfg.HallucinationThreshold:
		label = model.VerdictHallucinated
	case alignment.EvidenceStrength > e.cfg.GroundedThreshold && !alignment.Contradicted():
		label = model.VerdictGrounded
	default:
		label = model.VerdictWeak
	}

	return model.Verdict{
		Claim:       claim,
		Label:       label,
		RiskScore:   risk,
		Alignment:   &alignment,
		Calibration: &calibration,
		Explanation: explain(label, alignment, calibration),
	}
}

// explain builds the human-readable verdict rationale shown in reports
func explain(label model.VerdictLabel, alignment model.AlignmentResult, calibration model.CalibrationResult) string {
	switch label {
	case model.VerdictHallucinated:
		switch {
		case len(alignment.LabeledEvidence) == 0:
			return fmt.Sprintf("confidence %.2f with no evidence found", calibration.RawConfidence)
		case alignment.Contradicted():
			return fmt.Sprintf("confidence %.2f against contradicting evidence (%s)",
				calibration.RawConfidence, alignment.Contradiction)
		default:
			return fmt.Sprintf("confidence %.2f with weak evidence (strength %.2f)",
				calibration.RawConfidence, alignment.EvidenceStrength)
		}
	case model.VerdictWeak:
		if calibration.CalibratedConfidence < calibration.RawConfidence {
			return fmt.Sprintf("partial support (strength %.2f); confidence reduced %.2f -> %.2f",
				alignment.EvidenceStrength, calibration.RawConfidence, calibration.CalibratedConfidence)
		}
		return fmt.Sprintf("partial support (strength %.2f)", alignment.EvidenceStrength)
	default:
		supporting := 0
		for _, ev := range alignment.LabeledEvidence {
			if ev.Relation == model.RelationSupports {
				supporting++
			}
		}
		return fmt.Sprintf("strong support from %d chunk(s) (strength %.2f)",
			supporting, alignment.EvidenceStrength)
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
