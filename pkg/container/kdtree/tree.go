package kdtree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTree is returned when a nearest-neighbor query runs against a
	// tree built from zero points.
	ErrEmptyTree = errors.New("kdtree: empty tree")
	// ErrDimsMismatch is returned when points of differing arity are mixed
	// within one tree, or a query arity differs from the tree's.
	ErrDimsMismatch = errors.New("kdtree: points dimension mismatch")
)

// Tree is a static k-d tree over a fixed point set. The structure is
// implicit: points are held in one flat slice, the element at the midpoint of
// any range [low, high] is that range's subtree root, and the splitting
// dimension is the recursion depth mod Dims. No node objects or child
// pointers exist.
//
// A Tree is built once and never mutated afterwards, so concurrent
// read-only queries against a built tree are safe without locking.
type Tree struct {
	points []Point
	dims   int
}

// NewTree copies the given points and builds the tree over the copy in
// O(n log n) expected time. All points must share one dimensionality.
// An empty input yields an empty tree whose queries fail with ErrEmptyTree.
func NewTree(points ...Point) (*Tree, error) {
	t := &Tree{}
	if len(points) == 0 {
		return t, nil
	}

	t.dims = points[0].Dimensions()
	if t.dims == 0 {
		return nil, fmt.Errorf("%w: zero-dimensional point", ErrDimsMismatch)
	}
	t.points = make([]Point, len(points))
	for i, p := range points {
		if p.Dimensions() != t.dims {
			return nil, fmt.Errorf("%w: point %d has %d dimensions, want %d", ErrDimsMismatch, i, p.Dimensions(), t.dims)
		}
		t.points[i] = p
	}

	t.construct(0, len(t.points)-1, (len(t.points)-1)/2, 0)

	return t, nil
}

// construct recursively places the median of [low, high] along dim at index
// n (always the arithmetic midpoint of the range), then builds both halves
// with the next splitting dimension. A range of size <= 1 is already a valid
// subtree.
func (t *Tree) construct(low, high, n, dim int) {
	if low >= high {
		return
	}

	t.quickselect(low, high, n, dim)

	t.construct(low, n-1, (low+n-1)/2, (dim+1)%t.dims)
	t.construct(n+1, high, (n+1+high)/2, (dim+1)%t.dims)
}

func (t *Tree) Len() int {
	return len(t.points)
}

func (t *Tree) Dims() int {
	return t.dims
}

// Points returns a copy of the tree's backing slice in its post-construction
// layout.
func (t *Tree) Points() []Point {
	points := make([]Point, len(t.points))
	copy(points, t.points)
	return points
}

// NearestNeighbor returns the member of the tree's point set closest to
// query by squared Euclidean distance. Among candidates at exactly the
// minimum distance the lexicographically smallest wins, so the result is
// unique even for point sets with duplicate coordinates.
func (t *Tree) NearestNeighbor(query Point) (Point, error) {
	if len(t.points) == 0 {
		return nil, ErrEmptyTree
	}
	if query.Dimensions() != t.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, want %d", ErrDimsMismatch, query.Dimensions(), t.dims)
	}

	idx, ok := t.nearestIndex(query, 0, len(t.points)-1, 0)
	if !ok {
		return nil, ErrEmptyTree
	}
	return t.points[idx], nil
}

// nearestIndex finds the index of the point in [low, high] closest to query.
// ok is false iff the range is empty; callers merge that explicitly instead
// of dereferencing a sentinel index.
//
// Descends into the near child first, reconciles that child's best against
// the range median, then revisits the far child only when the splitting
// hyperplane lies within the current best radius: if the squared
// per-dimension gap to the hyperplane exceeds the squared distance to the
// current best, no point beyond it can be closer.
func (t *Tree) nearestIndex(query Point, low, high, dim int) (int, bool) {
	if low > high {
		return 0, false
	}

	medianIndex := (low + high) / 2
	nextDim := (dim + 1) % t.dims

	queryIsLeft := smallerDimVal(query, t.points[medianIndex], dim)

	var currentBest int
	var found bool
	if queryIsLeft {
		currentBest, found = t.nearestIndex(query, low, medianIndex-1, nextDim)
	} else {
		currentBest, found = t.nearestIndex(query, medianIndex+1, high, nextDim)
	}
	if !found || shouldReplace(query, t.points[currentBest], t.points[medianIndex]) {
		currentBest = medianIndex
	}

	diff := t.points[medianIndex].Dim(dim) - query.Dim(dim)
	if diff*diff <= distanceSquared(query, t.points[currentBest]) {
		var potentialBest int
		if queryIsLeft {
			potentialBest, found = t.nearestIndex(query, medianIndex+1, high, nextDim)
		} else {
			potentialBest, found = t.nearestIndex(query, low, medianIndex-1, nextDim)
		}
		if found && shouldReplace(query, t.points[currentBest], t.points[potentialBest]) {
			currentBest = potentialBest
		}
	}

	return currentBest, true
}
