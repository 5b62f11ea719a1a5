package bptree

import (
	"cmp"
	"time"

	"github.com/cockroachdb/errors"
)

// Insert adds (key, value) to the tree. Inserting a (key, value) pair
// already present is a no-op: the multimap holds at most one copy of
// any given pair, though any number of distinct values may share a key.
func (t *Tree[K, V]) Insert(key K, value V) (err error) {
	start := time.Now()
	defer func() { t.metrics.observe("insert", err, time.Since(start).Seconds()) }()

	entry := Entry[K, V]{Key: key, Value: value}
	leafOff, path, err := t.descendToLeaf(entry)
	if err != nil {
		return err
	}

	leaf, err := t.readLeaf(leafOff)
	if err != nil {
		return err
	}

	idx := lowerBoundEntry(leaf.data[:leaf.size], entry, 0, leaf.size-1)
	if idx < leaf.size && leaf.data[idx] == entry {
		return nil // already present, idempotent no-op
	}

	insertEntryAt(&leaf, idx, entry)

	if leaf.size <= t.opts.LMax {
		if err := t.updateLeaf(leaf, leafOff); err != nil {
			return err
		}
		return nil
	}

	left, right, sep, err := t.splitLeafBlock(leaf, leafOff)
	if err != nil {
		return err
	}
	rightOff, err := t.writeLeaf(right)
	if err != nil {
		return err
	}
	left.next = rightOff
	if err := t.updateLeaf(left, leafOff); err != nil {
		return err
	}

	return t.propagateSplit(path, sep, leafOff, rightOff)
}

// insertEntryAt shifts b.data[idx:b.size] right by one and places entry
// at idx, growing size by one. If b.data is already full it is extended
// by one slot, so a leaf may briefly hold LMax+1 entries in memory;
// callers check for overflow after calling this.
func insertEntryAt[K cmp.Ordered, V cmp.Ordered](b *block[K, V], idx int, entry Entry[K, V]) {
	if len(b.data) <= b.size {
		b.data = append(b.data, entry)
	}
	copy(b.data[idx+1:b.size+1], b.data[idx:b.size])
	b.data[idx] = entry
	b.size++
}

// splitLeafBlock splits an overflowed leaf (size == LMax+1) into two
// leaves linked into the existing chain, and returns the separator to
// promote: a copy of the first entry of the right half.
func (t *Tree[K, V]) splitLeafBlock(full block[K, V], fullOff int64) (left, right block[K, V], sep Entry[K, V], err error) {
	mid := (full.size + 1) / 2

	left = newBlock[K, V](t.opts.LMax)
	copy(left.data, full.data[:mid])
	left.size = mid
	// left.next is set by the caller once the right half's offset is known.

	right = newBlock[K, V](t.opts.LMax)
	copy(right.data, full.data[mid:full.size])
	right.size = full.size - mid
	right.next = full.next

	sep = right.data[0]
	return left, right, sep, nil
}

// insertEntryAtNode shifts a node's children/keys to make room for a
// new separator at keys[idx] and its right child at children[idx+1].
func insertEntryAtNode[K cmp.Ordered, V cmp.Ordered](n *index[K, V], idx int, sep Entry[K, V], rightChild int64) {
	if len(n.keys) <= n.size {
		n.keys = append(n.keys, sep)
	}
	if len(n.children) <= n.size+1 {
		n.children = append(n.children, noChild)
	}
	copy(n.keys[idx+1:n.size+1], n.keys[idx:n.size])
	n.keys[idx] = sep
	copy(n.children[idx+2:n.size+2], n.children[idx+1:n.size+1])
	n.children[idx+1] = rightChild
	n.size++
}

// splitIndexNode splits an overflowed internal node (size == IMax+1).
// Unlike a leaf split, the middle separator is promoted without being
// duplicated into either half.
func (t *Tree[K, V]) splitIndexNode(full index[K, V]) (left, right index[K, V], sep Entry[K, V]) {
	mid := full.size / 2

	left = newIndex[K, V](t.opts.IMax)
	copy(left.keys, full.keys[:mid])
	copy(left.children, full.children[:mid+1])
	left.size = mid

	sep = full.keys[mid]

	right = newIndex[K, V](t.opts.IMax)
	copy(right.keys, full.keys[mid+1:full.size])
	copy(right.children, full.children[mid+1:full.size+1])
	right.size = full.size - mid - 1

	return left, right, sep
}

// propagateSplit inserts (sep, rightOff) into the parent named by the
// top of path, splitting that parent in turn if it overflows, and so on
// up to the root. If path is empty, leftOff was the old root and a new
// root is created above both halves.
func (t *Tree[K, V]) propagateSplit(path []pathStep[K, V], sep Entry[K, V], leftOff, rightOff int64) error {
	if len(path) == 0 {
		return t.newRootAbove(leftOff, rightOff, sep)
	}

	step := path[len(path)-1]
	rest := path[:len(path)-1]

	n := step.node
	insertEntryAtNode(&n, step.child, sep, rightOff)

	if n.size <= t.opts.IMax {
		return t.updateNode(n, step.offset)
	}

	left, right, promoted := t.splitIndexNode(n)
	if err := t.updateNode(left, step.offset); err != nil {
		return err
	}
	rightNodeOff, err := t.writeNode(right)
	if err != nil {
		return err
	}
	return t.propagateSplit(rest, promoted, step.offset, rightNodeOff)
}

// newRootAbove creates a fresh internal root with exactly two children,
// used both when the original single-leaf root splits and when the
// split propagates all the way past the previous root.
func (t *Tree[K, V]) newRootAbove(leftOff, rightOff int64, sep Entry[K, V]) error {
	root := newIndex[K, V](t.opts.IMax)
	root.size = 1
	root.keys[0] = sep
	root.children[0] = leftOff
	root.children[1] = rightOff

	rootOff, err := t.writeNode(root)
	if err != nil {
		return errors.Wrap(err, "bptree: write new root")
	}

	t.root = rootOff
	t.rootIsLeaf = false
	t.height++
	t.metrics.setHeight(t.height)
	return t.persistMetadata()
}
