package geom

// Point is an ordered tuple of coordinates. A point is never mutated after
// construction; operations that need a different value return a copy.
type Point []float64

func New(vec []float64) Point {
	return vec
}

func (v Point) Dimensions() int {
	return len(v)
}

func (v Point) Dim(idx int) float64 {
	return v[idx]
}

func (v Point) Points() []float64 {
	return v
}

func (v Point) Copy() Point {
	var v1 = make(Point, len(v))
	copy(v1, v)
	return v1
}

func (v Point) SizeEqual(vec Point) bool {
	return len(v) == len(vec)
}

func (v Point) Equal(vec Point) bool {
	if len(v) != len(vec) {
		return false
	}
	for i, value := range v {
		if vec[i] != value {
			return false
		}
	}
	return true
}

// Less reports whether v precedes vec in lexicographic order, dimension 0
// first. It is a tie-breaking order, not a spatial one: two points compare
// the same way regardless of which dimension a tree is splitting on.
func (v Point) Less(vec Point) bool {
	n := len(v)
	if len(vec) < n {
		n = len(vec)
	}
	for i := 0; i < n; i++ {
		if v[i] != vec[i] {
			return v[i] < vec[i]
		}
	}
	return len(v) < len(vec)
}
