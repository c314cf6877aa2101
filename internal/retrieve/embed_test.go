package retrieve

import (
	"math"
	"reflect"
	"testing"
)

func TestEmbed_Deterministic(t *testing.T) {
	a := Embed("The quick brown fox jumps over the lazy dog")
	b := Embed("The quick brown fox jumps over the lazy dog")

	if !reflect.DeepEqual(a, b) {
		t.Error("identical text must produce identical embeddings")
	}
}

func TestEmbed_Normalized(t *testing.T) {
	vec := Embed("Evidence retrieval uses hashed term vectors")

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}

	if math.Abs(norm-1.0) > 1e-6 {
		t.Errorf("expected unit norm, got %.6f", norm)
	}
}

func TestEmbed_Dimension(t *testing.T) {
	if got := len(Embed("anything")); got != embeddingDim {
		t.Errorf("expected %d dimensions, got %d", embeddingDim, got)
	}
}

func TestEmbed_EmptyText(t *testing.T) {
	vec := Embed("")
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("expected zero vector for empty text, found %.4f at %d", v, i)
		}
	}
}

func TestEmbed_CaseInsensitive(t *testing.T) {
	a := Embed("Python Removed The GIL")
	b := Embed("python removed the gil")

	if !reflect.DeepEqual(a, b) {
		t.Error("embedding must be case-insensitive")
	}
}

func TestCosine_SelfSimilarity(t *testing.T) {
	vec := Embed("A sentence about claim verification")

	if sim := Cosine(vec, vec); math.Abs(sim-1.0) > 1e-6 {
		t.Errorf("expected self-similarity 1.0, got %.6f", sim)
	}
}

func TestCosine_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"The GIL was removed in Python", "Python removed the GIL"},
		{"Completely unrelated cooking recipe", "Database transaction isolation levels"},
		{"Shared words appear here", "Some shared words appear there"},
	}

	for _, pair := range pairs {
		sim := Cosine(Embed(pair[0]), Embed(pair[1]))
		if sim < 0 || sim > 1 {
			t.Errorf("Cosine(%q, %q) = %.4f outside [0,1]", pair[0], pair[1], sim)
		}
	}
}

func TestCosine_Ordering(t *testing.T) {
	query := Embed("Python removed the global interpreter lock")
	related := Embed("The global interpreter lock in Python was removed")
	unrelated := Embed("Bananas are rich in potassium")

	if Cosine(query, related) <= Cosine(query, unrelated) {
		t.Error("related text must score higher than unrelated text")
	}
}

func TestCosine_LengthMismatch(t *testing.T) {
	if sim := Cosine([]float32{1, 0}, []float32{1, 0, 0}); sim != 0 {
		t.Errorf("expected 0 for mismatched lengths, got %.4f", sim)
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Python 3.12: the GIL, removed?")
	expected := []string{"python", "12", "the", "gil", "removed"}

	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}
