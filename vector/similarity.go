package vector

import "math"

// Cosine 计算两个向量的余弦相似度。
// 零向量（以及长度不一致的输入）定义为相似度 0，从不除以零模长。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// WeightedAverage 计算向量组的加权算术平均。
// 权重和必须为正；向量组为空或权重和非正时返回 nil。
func WeightedAverage(vectors [][]float64, weights []float64) []float64 {
	if len(vectors) == 0 || len(vectors) != len(weights) {
		return nil
	}

	var weightSum float64
	for _, w := range weights {
		weightSum += w
	}
	if weightSum <= 0 {
		return nil
	}

	out := make([]float64, len(vectors[0]))
	for i, vec := range vectors {
		w := weights[i]
		for j, v := range vec {
			out[j] += v * w
		}
	}
	for j := range out {
		out[j] /= weightSum
	}
	return out
}
