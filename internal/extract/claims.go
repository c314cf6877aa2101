package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/ekurganov/claimlens/internal/llm"
	"github.com/ekurganov/claimlens/internal/model"
)

const extractionPrompt = `You are a precise claim extractor. Decompose the following text into atomic, checkable claims.

Rules:
1. Each claim must be a single, checkable assertion
2. Split compound sentences into separate claims
3. Ignore opinions unless framed as facts
4. Preserve the original meaning exactly
5. For each claim report your confidence that it is a factual assertion (0.0-1.0)

Text to analyze:
"""
%s
"""

Respond with a JSON object: {"claims": [{"text": "...", "start": 0, "end": 26, "confidence": 0.95}]}
"start" and "end" are character offsets into the original text (best effort).
Output only the JSON.`

// Extractor decomposes answer text into claims. With a provider it
// prompts the LLM for atomic claims; without one it falls back to a
// sentence-splitting heuristic. Hedge detection and claim typing are
// always done locally so they stay deterministic.
type Extractor struct {
	provider llm.Provider // nil = heuristic only
	cfg      model.ExtractionConfig
}

// NewExtractor creates a claim extractor
func NewExtractor(provider llm.Provider, cfg model.ExtractionConfig) *Extractor {
	return &Extractor{provider: provider, cfg: cfg}
}

type extractedClaim struct {
	Text       string   `json:"text"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Confidence *float64 `json:"confidence"`
}

type extractionResponse struct {
	Claims []extractedClaim `json:"claims"`
}

// Extract decomposes the text into claims
func (e *Extractor) Extract(ctx context.Context, text string) ([]model.Claim, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty input text")
	}

	if e.provider == nil {
		return e.heuristicExtract(text), nil
	}

	prompt := fmt.Sprintf(extractionPrompt, text)

	var lastErr error
	for attempt := 0; attempt < e.maxRetries(); attempt++ {
		raw, err := e.provider.CompleteJSON(ctx, prompt)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, fmt.Errorf("extraction cancelled: %w", ctx.Err())
			}
			continue
		}

		var resp extractionResponse
		if err := json.Unmarshal([]byte(raw), &resp); err != nil {
			lastErr = fmt.Errorf("decode extraction response: %w", err)
			continue
		}

		return e.finalize(resp.Claims), nil
	}

	// The LLM path failed; the heuristic keeps the analysis alive.
	fmt.Fprintf(os.Stderr, "Warning: LLM extraction failed (%v), using heuristic fallback\n", lastErr)
	return e.heuristicExtract(text), nil
}

// finalize filters, caps and annotates extracted claims
func (e *Extractor) finalize(raw []extractedClaim) []model.Claim {
	var claims []model.Claim
	for _, ec := range raw {
		text := strings.TrimSpace(ec.Text)
		if len(text) < e.cfg.MinClaimLength {
			continue
		}
		if e.cfg.MaxClaims > 0 && len(claims) >= e.cfg.MaxClaims {
			break
		}

		claims = append(claims, model.Claim{
			ID:            uuid.NewString(),
			Text:          text,
			Span:          model.Span{Start: ec.Start, End: ec.End},
			RawConfidence: ec.Confidence,
			Type:          ClassifyClaim(text),
			HedgeFlags:    DetectHedges(text),
		})
	}
	return claims
}

// heuristicExtract splits the text into sentences and treats each
// qualifying sentence as one claim. No confidence is reported; the
// pipeline substitutes the configured neutral default.
func (e *Extractor) heuristicExtract(text string) []model.Claim {
	var claims []model.Claim
	offset := 0
	for _, sentence := range splitSentences(text) {
		start := strings.Index(text[offset:], sentence)
		if start >= 0 {
			start += offset
			offset = start + len(sentence)
		}

		if len(sentence) < e.cfg.MinClaimLength {
			continue
		}
		if e.cfg.MaxClaims > 0 && len(claims) >= e.cfg.MaxClaims {
			break
		}

		claims = append(claims, model.Claim{
			ID:         uuid.NewString(),
			Text:       sentence,
			Span:       model.Span{Start: start, End: start + len(sentence)},
			Type:       ClassifyClaim(sentence),
			HedgeFlags: DetectHedges(sentence),
		})
	}
	return claims
}

func (e *Extractor) maxRetries() int {
	if e.cfg.MaxRetries > 0 {
		return e.cfg.MaxRetries
	}
	return 1
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				flush()
			}
		}
	}
	flush()

	return sentences
}
