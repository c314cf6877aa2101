package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ekurganov/claimlens/internal/align"
	"github.com/ekurganov/claimlens/internal/calibrate"
	"github.com/ekurganov/claimlens/internal/model"
	"github.com/ekurganov/claimlens/internal/verdict"
)

// ClaimExtractor decomposes answer text into claims
type ClaimExtractor interface {
	Extract(ctx context.Context, text string) ([]model.Claim, error)
}

// EvidenceRetriever returns ranked, unlabeled evidence for a claim.
// An empty result is valid and expected, not an error.
type EvidenceRetriever interface {
	Retrieve(ctx context.Context, claim model.Claim) ([]model.EvidenceChunk, error)
}

// Pipeline orchestrates claim extraction, evidence retrieval and the
// scoring chain, and aggregates per-claim verdicts into a report.
type Pipeline struct {
	extractor  ClaimExtractor
	retriever  EvidenceRetriever
	evaluator  *align.Evaluator
	calibrator *calibrate.Calibrator
	engine     *verdict.Engine
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline creates a pipeline with the given collaborators and
// configuration. The configuration must already be validated.
func NewPipeline(cfg *model.Config, extractor ClaimExtractor, retriever EvidenceRetriever) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		retriever:  retriever,
		evaluator:  align.NewEvaluator(cfg.Scoring),
		calibrator: calibrate.NewCalibrator(cfg.Scoring),
		engine:     verdict.NewEngine(cfg.Scoring),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}
}

// AnalyzeText runs the full flow for one answer: extract claims,
// retrieve evidence per claim, then score.
func (p *Pipeline) AnalyzeText(ctx context.Context, text string) (*model.AnswerReport, error) {
	claims, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	evidenceByClaim := make(map[string][]model.EvidenceChunk, len(claims))
	for _, claim := range claims {
		chunks, err := p.retriever.Retrieve(ctx, claim)
		if err != nil {
			// Retrieval failure for one claim degrades that claim, not
			// the run: the claim proceeds with zero evidence.
			fmt.Fprintf(os.Stderr, "Warning: retrieval failed for claim %s: %v\n", claim.ID, err)
			chunks = nil
		}
		evidenceByClaim[claim.ID] = chunks
	}

	return p.Analyze(ctx, text, claims, evidenceByClaim), nil
}

// Analyze scores already-extracted claims against already-retrieved
// evidence. Claims are processed independently; a failure in one claim
// never aborts the others, and cancellation returns a partial report
// with every completed verdict intact.
func (p *Pipeline) Analyze(ctx context.Context, answerText string, claims []model.Claim, evidenceByClaim map[string][]model.EvidenceChunk) *model.AnswerReport {
	known := make(map[string]bool, len(claims))
	for _, claim := range claims {
		known[claim.ID] = true
	}
	for id := range evidenceByClaim {
		if !known[id] {
			err := &model.EvidenceMismatchError{ClaimID: id}
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	verdicts := make([]model.Verdict, len(claims))
	workers := p.config.Concurrency.ClaimWorkers
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, claim := range claims {
		// Abandon remaining claims on cancellation; completed verdicts
		// stay valid and are returned below.
		select {
		case <-ctx.Done():
			verdicts[i] = unverifiable(claim, "cancelled")
			continue
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()
			defer func() { <-semaphore }()
			verdicts[idx] = p.evaluateClaim(c, evidenceByClaim[c.ID])
		}(i, claim)
	}

	wg.Wait()
	return model.NewAnswerReport(answerText, verdicts)
}

// evaluateClaim runs alignment, calibration and verdict for one claim
func (p *Pipeline) evaluateClaim(claim model.Claim, evidence []model.EvidenceChunk) model.Verdict {
	if err := validateClaim(claim, p.config.Scoring.DefaultRawConfidence); err != nil {
		return unverifiable(claim, err.Error())
	}

	alignment := p.evaluator.Evaluate(claim, evidence)
	calibration := p.calibrator.Calibrate(claim, alignment)
	return p.engine.Decide(claim, calibration, alignment)
}

// validateClaim rejects claims the scoring chain cannot handle
func validateClaim(claim model.Claim, defaultConfidence float64) error {
	if strings.TrimSpace(claim.Text) == "" {
		return &model.MalformedClaimError{ClaimID: claim.ID, Reason: "empty text"}
	}
	if conf := claim.Confidence(defaultConfidence); conf < 0 || conf > 1 {
		return &model.MalformedClaimError{
			ClaimID: claim.ID,
			Reason:  fmt.Sprintf("raw confidence %g outside [0,1]", conf),
		}
	}
	return nil
}

func unverifiable(claim model.Claim, reason string) model.Verdict {
	return model.Verdict{
		Claim:      claim,
		Label:      model.VerdictUnverifiable,
		FailReason: reason,
	}
}
