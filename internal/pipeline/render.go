package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ekurganov/claimlens/internal/model"
)

// Renderer writes AnswerReports as JSON, Markdown and terminal output.
// It performs no scoring of its own; the report is read-only here.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(report *model.AnswerReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.AnswerReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.AnswerReport, path string) error {
	var b strings.Builder

	b.WriteString("# Epistemic Risk Report\n\n")
	fmt.Fprintf(&b, "Analyzed: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Overall risk: %.2f** (mean %.2f)\n\n", report.OverallRisk, report.MeanRisk)
	if report.Degraded {
		b.WriteString("> ⚠ Degraded report: no claim could be scored; aggregate risk carries no signal.\n\n")
	}
	fmt.Fprintf(&b, "Claims: %d grounded, %d weak, %d hallucinated, %d unverifiable\n\n",
		report.Counts.Grounded, report.Counts.Weak, report.Counts.Hallucinated, report.Counts.Unverifiable)

	b.WriteString("## Claims\n\n")
	for i := range report.Verdicts {
		v := &report.Verdicts[i]
		fmt.Fprintf(&b, "### %d. %s %s\n\n", i+1, labelBadge(v.Label), v.Claim.Text)

		if !v.Verdicted() {
			fmt.Fprintf(&b, "Not scored: %s\n\n", v.FailReason)
			continue
		}

		fmt.Fprintf(&b, "- Risk: %.2f\n", v.RiskScore)
		fmt.Fprintf(&b, "- Evidence strength: %.2f\n", v.Alignment.EvidenceStrength)
		fmt.Fprintf(&b, "- Confidence: %.2f → %.2f\n",
			v.Calibration.RawConfidence, v.Calibration.CalibratedConfidence)
		if v.Alignment.Contradicted() {
			fmt.Fprintf(&b, "- Contradiction: %s\n", v.Alignment.Contradiction)
		}
		for _, penalty := range v.Calibration.AppliedPenalties {
			fmt.Fprintf(&b, "- Penalty: %s (-%.2f)\n", penalty.Name, penalty.Magnitude)
		}
		if v.Explanation != "" {
			fmt.Fprintf(&b, "- %s\n", v.Explanation)
		}
		if best := v.Alignment.BestEvidence(); best != nil {
			fmt.Fprintf(&b, "- Best evidence (%s, %.2f): %s\n",
				best.SourceID, best.SimilarityScore, truncate(best.Text, 200))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by claimlens. Risk reflects evidence support, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints the terminal summary to stdout
func (r *Renderer) RenderSummary(report *model.AnswerReport) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Overall risk: %.2f", report.OverallRisk)
	if report.Degraded {
		fmt.Printf("  (DEGRADED: no claim scored)")
	}
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")

	for i := range report.Verdicts {
		v := &report.Verdicts[i]
		if !v.Verdicted() {
			fmt.Printf("  %-12s  ----  %s (%s)\n", v.Label, truncate(v.Claim.Text, 70), v.FailReason)
			continue
		}
		fmt.Printf("  %-12s  %.2f  %s\n", v.Label, v.RiskScore, truncate(v.Claim.Text, 70))
	}
	fmt.Println()
}

func labelBadge(label model.VerdictLabel) string {
	switch label {
	case model.VerdictGrounded:
		return "✅"
	case model.VerdictWeak:
		return "⚠️"
	case model.VerdictHallucinated:
		return "❌"
	default:
		return "❓"
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
