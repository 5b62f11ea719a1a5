package bptree

import (
	"cmp"

	"github.com/bptreekv/bptreekv/codec"
)

// Entry is the tree's physical sort key: the composite (Key, Value) pair,
// ordered lexicographically by Key first and Value second. Using the
// full composite — not just Key — as the separator stored in internal
// nodes is what lets multiple entries sharing a Key spread across
// several leaves unambiguously; see node.go.
type Entry[K cmp.Ordered, V cmp.Ordered] struct {
	Key   K
	Value V
}

// less reports whether a sorts strictly before b under composite order.
func less[K cmp.Ordered, V cmp.Ordered](a, b Entry[K, V]) bool {
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	return a.Value < b.Value
}

// entryCodec is the fixed-width codec.Fixed[Entry[K,V]] built from the
// key and value codecs supplied to Open. Every composite entry stored
// on disk — leaf data slots and internal-node separators alike — goes
// through this single encoding.
type entryCodec[K cmp.Ordered, V cmp.Ordered] struct {
	key   codec.Fixed[K]
	value codec.Fixed[V]
}

func (c entryCodec[K, V]) Size() int { return c.key.Size() + c.value.Size() }

func (c entryCodec[K, V]) Encode(e Entry[K, V], buf []byte) {
	c.key.Encode(e.Key, buf[:c.key.Size()])
	c.value.Encode(e.Value, buf[c.key.Size():c.Size()])
}

func (c entryCodec[K, V]) Decode(buf []byte) Entry[K, V] {
	return Entry[K, V]{
		Key:   c.key.Decode(buf[:c.key.Size()]),
		Value: c.value.Decode(buf[c.key.Size():c.Size()]),
	}
}
