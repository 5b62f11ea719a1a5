package bptree

import (
	"cmp"
	"encoding/binary"
)

// noChild is the sentinel for "no child"/"end of chain", matching the
// original template's -1 convention for root, leaf-chain, and child
// offsets.
const noChild int64 = -1

// block is the leaf record: an ordered run of composite entries, a live
// count, and the offset of the next leaf in the chain (or noChild at
// the tail). Capacity is fixed at lMax, matching the spec's Block type.
type block[K cmp.Ordered, V cmp.Ordered] struct {
	size int
	next int64
	data []Entry[K, V]
}

func newBlock[K cmp.Ordered, V cmp.Ordered](lMax int) block[K, V] {
	return block[K, V]{next: noChild, data: make([]Entry[K, V], lMax)}
}

// blockCodec encodes a block as: 4-byte size, 8-byte next offset, then
// lMax fixed-width entries (only the first `size` are meaningful; the
// remainder is encoded but never inspected).
type blockCodec[K cmp.Ordered, V cmp.Ordered] struct {
	entry entryCodec[K, V]
	lMax  int
}

func (c blockCodec[K, V]) Size() int { return 4 + 8 + c.lMax*c.entry.Size() }

func (c blockCodec[K, V]) Encode(b block[K, V], buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(b.size))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(b.next))
	off := 12
	es := c.entry.Size()
	for i := 0; i < c.lMax; i++ {
		var e Entry[K, V]
		if i < len(b.data) {
			e = b.data[i]
		}
		c.entry.Encode(e, buf[off:off+es])
		off += es
	}
}

func (c blockCodec[K, V]) Decode(buf []byte) block[K, V] {
	b := block[K, V]{
		size: int(int32(binary.LittleEndian.Uint32(buf[0:4]))),
		next: int64(binary.LittleEndian.Uint64(buf[4:12])),
		data: make([]Entry[K, V], c.lMax),
	}
	off := 12
	es := c.entry.Size()
	for i := 0; i < c.lMax; i++ {
		b.data[i] = c.entry.Decode(buf[off : off+es])
		off += es
	}
	return b
}

// index is the internal record: size+1 ordered child offsets and size
// ordered composite separators, matching the spec's Index type.
type index[K cmp.Ordered, V cmp.Ordered] struct {
	size     int
	children []int64
	keys     []Entry[K, V]
}

func newIndex[K cmp.Ordered, V cmp.Ordered](iMax int) index[K, V] {
	children := make([]int64, iMax+1)
	for i := range children {
		children[i] = noChild
	}
	return index[K, V]{children: children, keys: make([]Entry[K, V], iMax)}
}

// indexCodec encodes an index node as: 4-byte size, (iMax+1) 8-byte
// child offsets, then iMax fixed-width separators.
type indexCodec[K cmp.Ordered, V cmp.Ordered] struct {
	entry entryCodec[K, V]
	iMax  int
}

func (c indexCodec[K, V]) Size() int { return 4 + (c.iMax+1)*8 + c.iMax*c.entry.Size() }

func (c indexCodec[K, V]) Encode(n index[K, V], buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(n.size))
	off := 4
	for i := 0; i <= c.iMax; i++ {
		child := noChild
		if i < len(n.children) {
			child = n.children[i]
		}
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(child))
		off += 8
	}
	es := c.entry.Size()
	for i := 0; i < c.iMax; i++ {
		var e Entry[K, V]
		if i < len(n.keys) {
			e = n.keys[i]
		}
		c.entry.Encode(e, buf[off:off+es])
		off += es
	}
}

func (c indexCodec[K, V]) Decode(buf []byte) index[K, V] {
	n := index[K, V]{
		size:     int(int32(binary.LittleEndian.Uint32(buf[0:4]))),
		children: make([]int64, c.iMax+1),
		keys:     make([]Entry[K, V], c.iMax),
	}
	off := 4
	for i := 0; i <= c.iMax; i++ {
		n.children[i] = int64(binary.LittleEndian.Uint64(buf[off : off+8]))
		off += 8
	}
	es := c.entry.Size()
	for i := 0; i < c.iMax; i++ {
		n.keys[i] = c.entry.Decode(buf[off : off+es])
		off += es
	}
	return n
}
