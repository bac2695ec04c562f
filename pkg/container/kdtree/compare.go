package kdtree

import "fmt"

// Point is a fixed-arity coordinate tuple. All points handed to one Tree
// must report the same Dimensions value.
type Point interface {
	Dim(idx int) float64
	Dimensions() int
	Points() []float64
}

// smallerDimVal reports whether a precedes b along dim. Equal coordinates
// fall back to the full lexicographic order so that partitioning sees a
// strict weak ordering and quickselect always terminates. A dim outside
// [0, Dimensions) is an internal invariant violation and panics; silently
// returning false would corrupt partitioning.
func smallerDimVal(a, b Point, dim int) bool {
	if dim < 0 || dim >= a.Dimensions() {
		panic(fmt.Sprintf("kdtree: splitting dimension %d out of range [0, %d)", dim, a.Dimensions()))
	}
	if a.Dim(dim) < b.Dim(dim) {
		return true
	}
	if a.Dim(dim) == b.Dim(dim) {
		return lessLex(a, b)
	}
	return false
}

// lessLex is the full lexicographic order over points, dimension 0 first.
// It is used only to break ties deterministically.
func lessLex(a, b Point) bool {
	for i := 0; i < a.Dimensions(); i++ {
		if a.Dim(i) != b.Dim(i) {
			return a.Dim(i) < b.Dim(i)
		}
	}
	return false
}

func equal(a, b Point) bool {
	if a.Dimensions() != b.Dimensions() {
		return false
	}
	for i := 0; i < a.Dimensions(); i++ {
		if a.Dim(i) != b.Dim(i) {
			return false
		}
	}
	return true
}

// distanceSquared keeps precision that sqrt would throw away; only relative
// order of distances matters to the search.
func distanceSquared(a, b Point) float64 {
	var d float64
	for i := 0; i < a.Dimensions(); i++ {
		diff := a.Dim(i) - b.Dim(i)
		d += diff * diff
	}
	return d
}

// shouldReplace decides whether potential replaces currentBest as the
// closest point to target. An identical potential always wins, which makes
// self-comparison during backtracking a no-op. Exact distance ties go to the
// lexicographically smaller candidate, so a query over a point set with
// duplicate coordinates still has exactly one reproducible answer.
func shouldReplace(target, currentBest, potential Point) bool {
	if equal(currentBest, potential) {
		return true
	}

	currDistance := distanceSquared(target, currentBest)
	potDistance := distanceSquared(target, potential)

	if potDistance < currDistance {
		return true
	}
	if potDistance == currDistance {
		return lessLex(potential, currentBest)
	}
	return false
}
