package utils

import (
	"math"
	"testing"
)

func TestCosineSimilaritySymmetry(t *testing.T) {
	pairs := []struct {
		name string
		a, b []float32
	}{
		{"orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}},
		{"parallel", []float32{1, 2, 3}, []float32{2, 4, 6}},
		{"opposed", []float32{1, 1}, []float32{-1, -1}},
		{"arbitrary", []float32{0.3, -0.7, 0.2, 0.5}, []float32{0.9, 0.1, -0.4, 0.2}},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			ab := CosineSimilarity(tt.a, tt.b)
			ba := CosineSimilarity(tt.b, tt.a)
			if ab != ba {
				t.Errorf("similarity not symmetric: %v vs %v", ab, ba)
			}
		})
	}
}

func TestCosineSimilaritySelf(t *testing.T) {
	vecs := [][]float32{
		{1, 0, 0},
		{0.5, 0.5, 0.5, 0.5},
		{3, -4},
	}
	for _, v := range vecs {
		got := CosineSimilarity(v, v)
		if math.Abs(got-1.0) > 1e-6 {
			t.Errorf("self similarity = %v, want ~1.0", got)
		}
	}
}

func TestCosineSimilarityMismatchedDims(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}); got != 0.0 {
		t.Errorf("mismatched dims = %v, want 0", got)
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	got := CosineSimilarity([]float32{0, 0, 0}, []float32{0, 0, 0})
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("zero vector similarity = %v, want finite", got)
	}
}

func TestNormalizeVector(t *testing.T) {
	v := NormalizeVector([]float32{3, 4})
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-6 {
		t.Errorf("normalized magnitude = %v, want 1.0", math.Sqrt(norm))
	}

	zero := NormalizeVector([]float32{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector should be unchanged, got %v", zero)
	}
}
