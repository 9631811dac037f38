// Package vecmath holds the small amount of vector arithmetic the grouping
// and layout pipelines share.
package vecmath

import "math"

func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		na += av * av
		nb += bv * bv
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func CosineDistance(a, b []float32) float64 {
	return 1 - CosineSimilarity(a, b)
}

// DispersalOrder returns the indices of vecs in a least-similarity-first
// traversal anchored on the first vector: at every step the remaining vector
// farthest (by cosine distance) from the anchor is taken next. The result is
// a dispersing order that spreads similar vectors apart rather than
// clustering them. Ties keep the earlier index, so the order is
// deterministic for a given input.
func DispersalOrder(vecs [][]float32) []int {
	order := make([]int, 0, len(vecs))
	if len(vecs) == 0 {
		return order
	}
	anchor := vecs[0]
	used := make([]bool, len(vecs))
	for len(order) < len(vecs) {
		next := -1
		var nextDist float64
		for i, v := range vecs {
			if used[i] {
				continue
			}
			d := CosineDistance(anchor, v)
			if next == -1 || d > nextDist {
				next = i
				nextDist = d
			}
		}
		used[next] = true
		order = append(order, next)
	}
	return order
}
