package kdtree

// partition reorders points[low:high+1] around the value at pivotIndex using
// the Lomuto scheme: everything preceding the pivot per smallerDimVal ends up
// left of it, everything else right of it. Returns the pivot's final index.
// O(high-low) time, O(1) extra space.
func (t *Tree) partition(low, high, pivotIndex, dim int) int {
	pivotValue := t.points[pivotIndex]
	t.points[pivotIndex], t.points[high] = t.points[high], t.points[pivotIndex]

	storeIndex := low
	for i := low; i < high; i++ {
		if smallerDimVal(t.points[i], pivotValue, dim) {
			t.points[i], t.points[storeIndex] = t.points[storeIndex], t.points[i]
			storeIndex++
		}
	}
	t.points[high], t.points[storeIndex] = t.points[storeIndex], t.points[high]

	return storeIndex
}

// quickselect places the n-th order statistic of points[low:high+1] along dim
// at index n, recursing only into the side of each partition that contains n.
// Average O(range size). The pivot is always the construction target n, which
// is safe on pre-sorted input but degrades to O(range^2) on adversarial point
// sets; a randomized pivot would fix that at the cost of changing the exact
// layout in duplicate-coordinate cases, so the deterministic pivot stays.
func (t *Tree) quickselect(low, high, n, dim int) {
	if low == high {
		return
	}

	pivotIndex := t.partition(low, high, n, dim)

	switch {
	case n == pivotIndex:
		return
	case n < pivotIndex:
		t.quickselect(low, pivotIndex-1, n, dim)
	default:
		t.quickselect(pivotIndex+1, high, n, dim)
	}
}
