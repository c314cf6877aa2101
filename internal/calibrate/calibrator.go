package calibrate

import "github.com/ekurganov/claimlens/internal/model"

// Penalty names as recorded in the audit trail
const (
	PenaltyNoEvidence    = "no_evidence"
	PenaltyContradiction = "contradiction"
	PenaltyWeakEvidence  = "weak_evidence"
	PenaltyVagueLanguage = "vague_language"
)

// Calibrator adjusts a claim's self-reported confidence against the
// alignment result. Penalties are applied in a fixed order, directly in
// confidence space, with the running value clamped to [0,1] after each
// step so stacked penalties never compound below zero. Every triggered
// penalty is recorded with its configured magnitude; the sequence is
// replayable for audit.
type Calibrator struct {
	cfg model.ScoringConfig
}

// NewCalibrator creates a calibrator with the given scoring options
func NewCalibrator(cfg model.ScoringConfig) *Calibrator {
	return &Calibrator{cfg: cfg}
}

// Calibrate applies the penalty sequence for one claim.
//
// Order is authoritative:
//  1. no usable evidence (strength zero, no contradiction)
//  2. contradiction present
//  3. only weak evidence (every retained chunk is WEAK_SUPPORT)
//  4. hedging language in the claim text
func (c *Calibrator) Calibrate(claim model.Claim, alignment model.AlignmentResult) model.CalibrationResult {
	raw := clamp01(claim.Confidence(c.cfg.DefaultRawConfidence))
	result := model.CalibrationResult{
		ClaimID:          claim.ID,
		RawConfidence:    raw,
		AppliedPenalties: []model.Penalty{},
	}

	running := raw
	apply := func(name string, magnitude float64, triggered bool) {
		if !triggered {
			return
		}
		result.AppliedPenalties = append(result.AppliedPenalties, model.Penalty{
			Name:      name,
			Magnitude: magnitude,
		})
		running = clamp01(running - magnitude)
	}

	apply(PenaltyNoEvidence, c.cfg.NoEvidencePenalty,
		alignment.EvidenceStrength == 0 && !alignment.Contradicted())
	apply(PenaltyContradiction, c.cfg.ContradictionPenalty,
		alignment.Contradicted())
	apply(PenaltyWeakEvidence, c.cfg.WeakEvidencePenalty,
		alignment.OnlyWeakSupport())
	apply(PenaltyVagueLanguage, c.cfg.VagueLanguagePenalty,
		claim.Hedged())

	result.CalibratedConfidence = running
	return result
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
