package bptree

import (
	"cmp"
	"time"

	"github.com/cockroachdb/errors"
)

// descend walks from the root down to the leaf that would hold key,
// returning that leaf's offset. Every internal-node step uses the
// plain-key lower-bound search documented in search.go.
func (t *Tree[K, V]) descend(key K) (int64, error) {
	if t.rootIsLeaf {
		return t.root, nil
	}
	off := t.root
	for depth := 0; depth < t.height; depth++ {
		n, err := t.readNode(off)
		if err != nil {
			return 0, err
		}
		// lowerBoundKey(n.keys, key, ...) is the upper-bound search for
		// the synthetic composite query (key, -infinity): every real
		// value compares greater than -infinity, so "first separator
		// with Key >= key" and "first separator strictly greater than
		// (key, -infinity)" select the same index. Descending into the
		// child at that index lands on the leftmost subtree that can
		// hold an entry with this Key, from which the leaf chain walk in
		// Find picks up any continuation in the next leaf.
		i := lowerBoundKey(n.keys, key, 0, n.size-1)
		t.invariant(i >= 0 && i < len(n.children), "descend: child index out of range", "index", i, "childCount", len(n.children))
		off = n.children[i]
	}
	return off, nil
}

// Find returns every value stored under key, in ascending Value order,
// or nil if key is absent. Matching entries may span multiple leaves
// via the leaf chain, since a key shared by more values than fit in one
// leaf spills into its right neighbor.
func (t *Tree[K, V]) Find(key K) (values []V, err error) {
	start := time.Now()
	defer func() { t.metrics.observe("find", err, time.Since(start).Seconds()) }()

	leafOff, err := t.descend(key)
	if err != nil {
		return nil, err
	}

	for leafOff != noChild {
		b, rerr := t.readLeaf(leafOff)
		if rerr != nil {
			return nil, rerr
		}
		i := lowerBoundKey(b.data[:b.size], key, 0, b.size-1)
		for ; i < b.size; i++ {
			if b.data[i].Key != key {
				return values, nil
			}
			values = append(values, b.data[i].Value)
		}
		// Either every entry from i on matched key, or this leaf held no
		// entry with Key >= key (descend lands on the leftmost subtree
		// that could hold key); in both cases matches may continue in the
		// next leaf of the chain.
		leafOff = b.next
	}
	return values, nil
}

// Contains reports whether (key, value) is present in the tree.
func (t *Tree[K, V]) Contains(key K, value V) (bool, error) {
	values, err := t.Find(key)
	if err != nil {
		return false, errors.Wrap(err, "bptree: contains")
	}
	return containsValue(values, value), nil
}

func containsValue[V cmp.Ordered](values []V, target V) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// Range returns every entry with Key in [lo, hi], in ascending composite
// order, by descending to lo and then walking the leaf chain forward —
// the same traversal the leaf-chain invariant guarantees yields every
// live pair exactly once.
func (t *Tree[K, V]) Range(lo, hi K) (entries []Entry[K, V], err error) {
	start := time.Now()
	defer func() { t.metrics.observe("range", err, time.Since(start).Seconds()) }()

	leafOff, err := t.descend(lo)
	if err != nil {
		return nil, err
	}

	for leafOff != noChild {
		b, rerr := t.readLeaf(leafOff)
		if rerr != nil {
			return nil, rerr
		}
		i := lowerBoundKey(b.data[:b.size], lo, 0, b.size-1)
		for ; i < b.size; i++ {
			if b.data[i].Key > hi {
				return entries, nil
			}
			entries = append(entries, b.data[i])
		}
		leafOff = b.next
	}
	return entries, nil
}
