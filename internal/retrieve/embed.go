package retrieve

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// embeddingDim is the fixed dimensionality of the hashed bag-of-words
// vectors. Changing it invalidates an existing corpus index.
const embeddingDim = 256

// Embed produces a deterministic hashed bag-of-words embedding,
// L2-normalized. It is intentionally simple: retrieval only has to
// deliver similarity scores in [0,1] with stable ordering, and a
// hashed term vector does that without a model runtime.
func Embed(text string) []float32 {
	vec := make([]float32, embeddingDim)

	for _, token := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[h.Sum32()%embeddingDim]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// Cosine returns the similarity of two normalized embeddings, clamped
// to [0,1]. Term weights are non-negative so the dot product already
// is; the clamp guards float error.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	if dot < 0 {
		return 0
	}
	if dot > 1 {
		return 1
	}
	return dot
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
