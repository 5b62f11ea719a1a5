package main

import (
	"github.com/cockroachdb/errors"

	"github.com/bptreekv/bptreekv/bptree"
	"github.com/bptreekv/bptreekv/codec"
	"github.com/bptreekv/bptreekv/internal/benchindex"
)

// bptreeIndex adapts the multimap tree engine to benchindex.Index so it
// can run through the same comparison suite as the Pebble-backed LSM
// backend. Values are strings on the wire the adapter presents
// (benchindex.Index deals in []byte); the underlying tree is keyed by
// int64 and valued by string, since cmp.Ordered excludes []byte.
type bptreeIndex struct {
	tree *bptree.Tree[int64, string]
}

func openBPTreeIndex(path string, lMax, iMax int) (*bptreeIndex, error) {
	tree, err := bptree.Open[int64, string](path+".block", path+".index", codec.Int64(), codec.String(64), bptree.Options{LMax: lMax, IMax: iMax})
	if err != nil {
		return nil, err
	}
	return &bptreeIndex{tree: tree}, nil
}

func (b *bptreeIndex) Insert(key int64, value []byte) error {
	return b.tree.Insert(key, string(value))
}

func (b *bptreeIndex) Get(key int64) ([]byte, error) {
	values, err := b.tree.Find(key)
	if err != nil || len(values) == 0 {
		return nil, err
	}
	return []byte(values[0]), nil
}

// Delete removes every value stored under key, since the engine's
// Remove takes a specific (key, value) pair but benchindex.Index models
// a single-valued store.
func (b *bptreeIndex) Delete(key int64) error {
	values, err := b.tree.Find(key)
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := b.tree.Remove(key, v); err != nil {
			return err
		}
	}
	return nil
}

func (b *bptreeIndex) Range(start, end int64) (benchindex.Iterator, error) {
	entries, err := b.tree.Range(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "bptreeIndex: range")
	}
	return &bptreeRangeIterator{entries: entries, idx: -1}, nil
}

func (b *bptreeIndex) Close() error { return b.tree.Close() }

type bptreeRangeIterator struct {
	entries []bptree.Entry[int64, string]
	idx     int
}

func (it *bptreeRangeIterator) Next() bool {
	it.idx++
	return it.idx < len(it.entries)
}

func (it *bptreeRangeIterator) Key() int64    { return it.entries[it.idx].Key }
func (it *bptreeRangeIterator) Value() []byte { return []byte(it.entries[it.idx].Value) }
func (it *bptreeRangeIterator) Error() error  { return nil }
func (it *bptreeRangeIterator) Close() error  { return nil }
