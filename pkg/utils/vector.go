package utils

import "math"

// cosineEpsilon keeps the denominator non-zero for degenerate vectors.
const cosineEpsilon = 1e-9

// CosineSimilarity computes dot(a,b) / (|a|*|b| + eps).
// Returns a value close to [-1, 1]; 0 when dimensions mismatch.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}

// NormalizeVector scales a vector to unit length (L2 normalization).
// Zero vectors are returned as a copy unchanged.
func NormalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	out := make([]float32, len(vec))
	if magnitude < cosineEpsilon {
		copy(out, vec)
		return out
	}
	for i, v := range vec {
		out[i] = float32(float64(v) / magnitude)
	}
	return out
}
