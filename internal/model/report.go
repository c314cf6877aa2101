package model

import "time"

// VerdictLabel is the discrete outcome for a claim
type VerdictLabel string

const (
	VerdictGrounded     VerdictLabel = "GROUNDED"
	VerdictWeak         VerdictLabel = "WEAK"
	VerdictHallucinated VerdictLabel = "HALLUCINATED"

	// VerdictUnverifiable is the sentinel outcome for claims whose
	// evaluation failed or never ran. It carries a failure reason and
	// no scoring state.
	VerdictUnverifiable VerdictLabel = "UNVERIFIABLE"
)

// Penalty records one calibration adjustment for audit purposes
type Penalty struct {
	Name      string  `json:"name"`
	Magnitude float64 `json:"magnitude"` // Configured value at call time
}

// CalibrationResult holds the confidence adjustment for one claim.
// AppliedPenalties is append-only and order-preserving so the
// calibration can be replayed step by step.
type CalibrationResult struct {
	ClaimID              string    `json:"claim_id"`
	RawConfidence        float64   `json:"raw_confidence"`
	CalibratedConfidence float64   `json:"calibrated_confidence"`
	AppliedPenalties     []Penalty `json:"applied_penalties"`
}

// Verdict is the final per-claim outcome. Alignment and Calibration
// are references to the results the verdict was derived from; they are
// read-only context for explainability, never recomputed or copied.
type Verdict struct {
	Claim       Claim              `json:"claim"`
	Label       VerdictLabel       `json:"label"`
	RiskScore   float64            `json:"risk_score"` // 0 = grounded, 1 = hallucinated
	Alignment   *AlignmentResult   `json:"alignment,omitempty"`
	Calibration *CalibrationResult `json:"calibration,omitempty"`
	Explanation string             `json:"explanation,omitempty"`
	FailReason  string             `json:"fail_reason,omitempty"` // Set only for UNVERIFIABLE
}

// Verdicted reports whether the claim was actually scored
func (v *Verdict) Verdicted() bool {
	return v.Label != VerdictUnverifiable
}

// AnswerReport is the complete analysis result for one answer.
// Aggregate fields are computed once at construction and the report is
// immutable afterwards.
type AnswerReport struct {
	AnswerText string    `json:"answer_text"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	Verdicts []Verdict `json:"verdicts"` // Input claim order

	// OverallRisk is the maximum risk across verdicted claims: one
	// confidently hallucinated claim poisons the whole answer. MeanRisk
	// is reported alongside for context.
	OverallRisk float64 `json:"overall_risk"`
	MeanRisk    float64 `json:"mean_risk"`

	// Degraded is set when no claim produced a scored verdict, so the
	// aggregate fields carry no signal.
	Degraded bool `json:"degraded"`

	Counts VerdictCounts `json:"counts"`
}

// VerdictCounts summarizes verdicts by label
type VerdictCounts struct {
	Grounded     int `json:"grounded"`
	Weak         int `json:"weak"`
	Hallucinated int `json:"hallucinated"`
	Unverifiable int `json:"unverifiable"`
}

// NewAnswerReport builds the report and computes aggregates from the
// verdicts that were actually scored.
func NewAnswerReport(answerText string, verdicts []Verdict) *AnswerReport {
	report := &AnswerReport{
		AnswerText: answerText,
		AnalyzedAt: time.Now().UTC(),
		Verdicts:   verdicts,
	}

	scored := 0
	var sum float64
	for i := range verdicts {
		v := &verdicts[i]
		switch v.Label {
		case VerdictGrounded:
			report.Counts.Grounded++
		case VerdictWeak:
			report.Counts.Weak++
		case VerdictHallucinated:
			report.Counts.Hallucinated++
		case VerdictUnverifiable:
			report.Counts.Unverifiable++
		}

		if !v.Verdicted() {
			continue
		}
		scored++
		sum += v.RiskScore
		if v.RiskScore > report.OverallRisk {
			report.OverallRisk = v.RiskScore
		}
	}

	if scored == 0 {
		report.Degraded = true
		return report
	}
	report.MeanRisk = sum / float64(scored)
	return report
}
