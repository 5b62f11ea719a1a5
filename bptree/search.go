package bptree

import "cmp"

// lowerBoundEntry returns the smallest index i in [left, right+1] such
// that arr[i] is not strictly less than key under composite order, or
// right+1 if every entry in range is strictly less. This is the
// composite-key overload of the shared lower-bound search: every
// insertion, deletion, and leaf-local lookup routes through it.
func lowerBoundEntry[K cmp.Ordered, V cmp.Ordered](arr []Entry[K, V], key Entry[K, V], left, right int) int {
	if left > right {
		return left
	}
	lo, hi := left, right+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if less(arr[mid], key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBoundEntry returns the smallest index i in [left, right+1] such
// that arr[i] is strictly greater than key under composite order, or
// right+1 if none qualify. Internal-node descent for an exact composite
// entry must use this, not lowerBoundEntry: a separator equal to the
// query entry was copied from the minimum entry of its right child, so
// the query belongs in that right child, not the one to its left.
func upperBoundEntry[K cmp.Ordered, V cmp.Ordered](arr []Entry[K, V], key Entry[K, V], left, right int) int {
	if left > right {
		return left
	}
	lo, hi := left, right+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if less(key, arr[mid]) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// lowerBoundKey is the plain-key overload used for descent through
// internal nodes: it returns the smallest index i in [left, right+1]
// such that separators[i].Key is not strictly less than key, or
// right+1 if none qualify.
//
// Comparing only the Key component of each composite separator still
// finds the correct leftmost child: since separators are sorted by the
// full composite order, their Key projections are non-decreasing, and
// the leftmost index whose separator Key equals the query key is
// exactly the leftmost subtree that can hold an entry with that key —
// the same index a composite search against (key, -infinity) would
// produce, without needing a synthetic minimum Value.
func lowerBoundKey[K cmp.Ordered, V cmp.Ordered](separators []Entry[K, V], key K, left, right int) int {
	if left > right {
		return left
	}
	lo, hi := left, right+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if separators[mid].Key < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
