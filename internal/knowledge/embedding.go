package knowledge

import (
	"math"
	"regexp"
	"strings"
)

// EmbeddingDim is the fixed width of every chunk and query vector. All
// vectors in one knowledge base must come from the same procedure or
// similarity scores are meaningless.
const EmbeddingDim = 384

// hashSpread is the odd multiplier that fans each token hash out over
// the vector's sub-dimensions (Knuth's multiplicative constant).
const hashSpread uint32 = 2654435761

var tokenSplit = regexp.MustCompile(`[^a-z0-9']+`)

// Tokenize lowercases the input, splits on non-word boundaries and drops
// tokens of length <= 2.
func Tokenize(text string) []string {
	parts := tokenSplit.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) <= 2 {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// Embed maps a text (plus optional tag keywords) onto a unit-normalized
// vector of EmbeddingDim floats. It is fully deterministic: the same
// token sequence always yields the same vector, and a text with no
// usable tokens yields the zero vector. Documents and queries must both
// go through this function.
func Embed(text string, tags []string) []float32 {
	tokens := Tokenize(text)
	for _, tag := range tags {
		tokens = append(tokens, Tokenize(tag)...)
	}
	vec := make([]float32, EmbeddingDim)
	if len(tokens) == 0 {
		return vec
	}
	for i, token := range tokens {
		hash := djb2(token)
		for d := uint32(1); d <= 8; d++ {
			idx := int(hash * d * hashSpread % EmbeddingDim)
			vec[idx] += float32(math.Abs(math.Sin(float64(idx+i)))*0.3 + 0.2)
		}
	}
	return normalize(vec)
}

// djb2 is the 32-bit rolling hash the whole retrieval scheme hangs on:
// start at 5381, multiply by 33 and add each byte, wrapping at 32 bits.
func djb2(s string) uint32 {
	hash := uint32(5381)
	for i := 0; i < len(s); i++ {
		hash = hash*33 + uint32(s[i])
	}
	return hash
}

func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// CosineSimilarity returns 0 when either vector has zero norm or the
// lengths differ.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
