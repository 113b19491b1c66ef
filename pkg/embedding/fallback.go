package embedding

import "math"

// FallbackVector computes a deterministic, content-derived vector used
// when the remote provider is down. Character codes are folded into the
// configured dimension and the result is L2-normalized. The vector lives
// in an unrelated space from any provider model; it only exists so
// retrieval can still return some ranking instead of failing the query.
func FallbackVector(text string, dim int) []float32 {
	if dim <= 0 {
		return nil
	}
	acc := make([]float64, dim)
	i := 0
	for _, r := range text {
		acc[i%dim] += float64(r)
		i++
	}

	var magnitude float64
	for _, v := range acc {
		magnitude += v * v
	}
	magnitude = math.Sqrt(magnitude)

	vec := make([]float32, dim)
	if magnitude == 0 {
		return vec
	}
	for i, v := range acc {
		vec[i] = float32(v / magnitude)
	}
	return vec
}

// NormalizeVector normalizes a vector to unit length. Cosine distance in
// pgvector requires normalized vectors (magnitude = 1).
func NormalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
