package extract

import (
	"reflect"
	"testing"

	"github.com/ekurganov/claimlens/internal/model"
)

func TestDetectHedges_Basic(t *testing.T) {
	flags := DetectHedges("This might possibly work")
	expected := []string{"might", "possibly"}
	if !reflect.DeepEqual(flags, expected) {
		t.Errorf("expected %v, got %v", expected, flags)
	}
}

func TestDetectHedges_DedupeAndCase(t *testing.T) {
	flags := DetectHedges("It Might work, and it might not")
	if !reflect.DeepEqual(flags, []string{"might"}) {
		t.Errorf("expected single lowercase marker, got %v", flags)
	}
}

func TestDetectHedges_None(t *testing.T) {
	if flags := DetectHedges("Go was released in 2009"); len(flags) != 0 {
		t.Errorf("expected no hedges, got %v", flags)
	}
}

func TestDetectHedges_WordBoundary(t *testing.T) {
	// "mighty" must not match "might"
	if flags := DetectHedges("A mighty fine day"); len(flags) != 0 {
		t.Errorf("expected no hedges, got %v", flags)
	}
}

func TestClassifyClaim(t *testing.T) {
	tests := []struct {
		text     string
		expected model.ClaimType
	}{
		{"The API might change in the next release", model.ClaimTypeHedged},
		{"The outage happened because the cache was cold", model.ClaimTypeMultiHop},
		{"The feature is stable as of 2023", model.ClaimTypeTemporal},
		{"Redis is faster than Memcached", model.ClaimTypeComparative},
		{"GPT-3 has 175 billion parameters", model.ClaimTypeQuantitative},
		{"The sky is blue", model.ClaimTypeDirect},
	}

	for _, tt := range tests {
		if got := ClassifyClaim(tt.text); got != tt.expected {
			t.Errorf("ClassifyClaim(%q) = %s, expected %s", tt.text, got, tt.expected)
		}
	}
}

func TestClassifyClaim_HedgingDominates(t *testing.T) {
	// Hedged and quantitative at once: hedging wins
	got := ClassifyClaim("The model probably has 175 billion parameters")
	if got != model.ClaimTypeHedged {
		t.Errorf("expected hedged, got %s", got)
	}
}
