package kdtree

import "testing"

type point []float64

func (p point) Dim(idx int) float64 { return p[idx] }
func (p point) Dimensions() int     { return len(p) }
func (p point) Points() []float64   { return p }

func TestSmallerDimVal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a        point
		b        point
		dim      int
		expected bool
	}{
		{
			name:     "strictly smaller on dim",
			a:        point{1, 9, 9},
			b:        point{2, 0, 0},
			dim:      0,
			expected: true,
		},
		{
			name:     "strictly larger on dim",
			a:        point{5, 0, 0},
			b:        point{2, 9, 9},
			dim:      0,
			expected: false,
		},
		{
			name:     "middle dimension",
			a:        point{9, 1, 9},
			b:        point{0, 2, 0},
			dim:      1,
			expected: true,
		},
		{
			name:     "tie broken lexicographically smaller",
			a:        point{7, 1, 0},
			b:        point{7, 2, 0},
			dim:      0,
			expected: true,
		},
		{
			name:     "tie broken lexicographically larger",
			a:        point{7, 3, 0},
			b:        point{7, 2, 0},
			dim:      0,
			expected: false,
		},
		{
			name:     "identical points",
			a:        point{7, 7, 7},
			b:        point{7, 7, 7},
			dim:      2,
			expected: false,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := smallerDimVal(test.a, test.b, test.dim); got != test.expected {
				t.Errorf("compare along dim %d, got: %v, expected: %v", test.dim, got, test.expected)
			}
		})
	}
}

func TestSmallerDimVal_InvalidDimPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range dimension")
		}
	}()
	smallerDimVal(point{1, 2, 3}, point{4, 5, 6}, 3)
}

func TestDistanceSquared(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a        point
		b        point
		expected float64
	}{
		{name: "positive", a: point{0, 0, 0}, b: point{1, 2, 2}, expected: 9},
		{name: "zero", a: point{3, 3, 3}, b: point{3, 3, 3}, expected: 0},
		{name: "color channels", a: point{255, 0, 0}, b: point{200, 50, 10}, expected: 5625},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := distanceSquared(test.a, test.b); got != test.expected {
				t.Errorf("squared distance, got: %v, expected: %v", got, test.expected)
			}
		})
	}
}

func TestShouldReplace(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		target      point
		currentBest point
		potential   point
		expected    bool
	}{
		{
			name:        "identical candidate always wins",
			target:      point{0, 0, 0},
			currentBest: point{9, 9, 9},
			potential:   point{9, 9, 9},
			expected:    true,
		},
		{
			name:        "strictly closer wins",
			target:      point{0, 0, 0},
			currentBest: point{5, 5, 5},
			potential:   point{1, 1, 1},
			expected:    true,
		},
		{
			name:        "strictly farther loses",
			target:      point{0, 0, 0},
			currentBest: point{1, 1, 1},
			potential:   point{5, 5, 5},
			expected:    false,
		},
		{
			name:        "distance tie goes to lexicographically smaller",
			target:      point{0, 0, 0},
			currentBest: point{3, 0, 0},
			potential:   point{0, 3, 0},
			expected:    true,
		},
		{
			name:        "distance tie keeps lexicographically smaller incumbent",
			target:      point{0, 0, 0},
			currentBest: point{0, 3, 0},
			potential:   point{3, 0, 0},
			expected:    false,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := shouldReplace(test.target, test.currentBest, test.potential)
			if got != test.expected {
				t.Errorf("replace decision, got: %v, expected: %v", got, test.expected)
			}
		})
	}
}
