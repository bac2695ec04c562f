package geom

import (
	"errors"
	"testing"
)

func TestSquaredEuclideanDistance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		vec         []float64
		vec1        []float64
		expected    float64
		expectedErr error
	}{
		{
			name:     "positive",
			vec:      []float64{0, 0, 0},
			vec1:     []float64{1, 2, 2},
			expected: 9,
		},
		{
			name:     "zero distance",
			vec:      []float64{5, 5, 5},
			vec1:     []float64{5, 5, 5},
			expected: 0,
		},
		{
			name:     "color range",
			vec:      []float64{255, 0, 0},
			vec1:     []float64{0, 255, 0},
			expected: 130050,
		},
		{
			name:        "dimension mismatch",
			vec:         []float64{1, 2},
			vec1:        []float64{1, 2, 3},
			expectedErr: ErrDimNotEqual,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			d, err := SquaredEuclideanDistance(test.vec, test.vec1)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("unexpected error, got: %v, expected: %v", err, test.expectedErr)
			}
			if d != test.expected {
				t.Errorf("compute distance, got: %v, expected: %v", d, test.expected)
			}
		})
	}
}

func TestEuclideanDistance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		vec      []float64
		vec1     []float64
		expected float64
	}{
		{name: "positive", vec: []float64{0, 0, 0}, vec1: []float64{1, 2, 2}, expected: 3},
		{name: "one dimension", vec: []float64{0}, vec1: []float64{4}, expected: 4},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			d, err := EuclideanDistance(test.vec, test.vec1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d != test.expected {
				t.Errorf("compute distance, got: %v, expected: %v", d, test.expected)
			}
		})
	}
}

func TestChebyshevDistance(t *testing.T) {
	t.Parallel()
	d, err := ChebyshevDistance([]float64{1, 9, 3}, []float64{4, 5, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 4 {
		t.Errorf("compute distance, got: %v, expected: %v", d, 4)
	}
}

func TestManhattanDistance(t *testing.T) {
	t.Parallel()
	d, err := ManhattanDistance([]float64{1, 9, 3}, []float64{4, 5, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 7 {
		t.Errorf("compute distance, got: %v, expected: %v", d, 7)
	}
}
