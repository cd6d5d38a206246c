package embedding

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	vec := Normalize([]float32{3, 4})

	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(magnitude)-1.0) > 1e-6 {
		t.Errorf("normalized magnitude = %f, want 1", math.Sqrt(magnitude))
	}
	if math.Abs(float64(vec[0])-0.6) > 1e-6 || math.Abs(float64(vec[1])-0.8) > 1e-6 {
		t.Errorf("normalized = %v, want [0.6 0.8]", vec)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	vec := Normalize([]float32{0, 0, 0})
	for _, v := range vec {
		if v != 0 {
			t.Fatalf("zero vector must stay zero, got %v", vec)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical direction", []float32{1, 0}, []float32{2, 0}, 1},
		{"opposite direction", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"length mismatch scores zero", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"zero magnitude scores zero", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty vectors score zero", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityBounded(t *testing.T) {
	a := Normalize([]float32{0.3, -0.7, 0.2, 0.9})
	b := Normalize([]float32{-0.5, 0.1, 0.8, -0.2})

	got := CosineSimilarity(a, b)
	if got < -1.0000001 || got > 1.0000001 {
		t.Errorf("similarity %f out of [-1, 1]", got)
	}
}
