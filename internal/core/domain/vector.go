package domain

import "math"

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. Vectors must be the same length. A zero vector yields 0, as
// does mismatched input, so callers validate lengths beforehand.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
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
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
