package bptree

import "cmp"

// pathStep records one internal node visited while descending toward a
// leaf, together with the child index taken at that node. Insert and
// Remove replay this stack bottom-up to propagate splits and merges.
type pathStep[K cmp.Ordered, V cmp.Ordered] struct {
	offset int64
	node   index[K, V]
	child  int
}

// descendToLeaf walks from the root to the leaf that must contain entry
// under full composite order, recording the internal path taken.
func (t *Tree[K, V]) descendToLeaf(entry Entry[K, V]) (int64, []pathStep[K, V], error) {
	if t.rootIsLeaf {
		return t.root, nil, nil
	}
	var path []pathStep[K, V]
	off := t.root
	for depth := 0; depth < t.height; depth++ {
		n, err := t.readNode(off)
		if err != nil {
			return 0, nil, err
		}
		i := upperBoundEntry(n.keys, entry, 0, n.size-1)
		t.invariant(i >= 0 && i < len(n.children), "descendToLeaf: child index out of range", "index", i, "childCount", len(n.children))
		path = append(path, pathStep[K, V]{offset: off, node: n, child: i})
		off = n.children[i]
	}
	return off, path, nil
}
