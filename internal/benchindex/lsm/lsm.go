// Package lsm wraps Pebble (CockroachDB's LSM storage engine) behind
// benchindex.Index, adapted from the teacher's dbms/index/lsm.LSM, so
// cmd/bptbench can compare the tree engine against an LSM-backed store.
package lsm

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"github.com/bptreekv/bptreekv/internal/benchindex"
)

type LSM struct {
	db *pebble.DB
}

// Open opens (or creates) a Pebble database at the given directory path.
func Open(dir string) (*LSM, error) {
	opts := &pebble.Options{
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       12,
	}

	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, errors.Wrap(err, "lsm: open")
	}
	return &LSM{db: db}, nil
}

// Close cleanly shuts down Pebble, flushing any in-memory state.
func (l *LSM) Close() error {
	return l.db.Close()
}

// Insert inserts or updates the value for key.
func (l *LSM) Insert(key int64, value []byte) error {
	return l.db.Set(encodeKey(key), value, pebble.NoSync)
}

// Get retrieves the value for key. Returns nil if not found.
func (l *LSM) Get(key int64) ([]byte, error) {
	val, closer, err := l.db.Get(encodeKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "lsm: get")
	}
	result := make([]byte, len(val))
	copy(result, val)
	closer.Close()
	return result, nil
}

// Delete removes the key from the store.
func (l *LSM) Delete(key int64) error {
	if err := l.db.Delete(encodeKey(key), pebble.NoSync); err != nil {
		return errors.Wrap(err, "lsm: delete")
	}
	return nil
}

// Range returns an iterator over all keys in [start, end] inclusive.
func (l *LSM) Range(start, end int64) (benchindex.Iterator, error) {
	iterOpts := &pebble.IterOptions{
		LowerBound: encodeKey(start),
		UpperBound: encodeKeyExclusive(end),
	}
	iter, err := l.db.NewIter(iterOpts)
	if err != nil {
		return nil, errors.Wrap(err, "lsm: range")
	}
	iter.First()
	return &rangeIterator{iter: iter, first: true}, nil
}

// encodeKey encodes an int64 as big-endian with the sign bit flipped so
// Pebble's byte-lexical ordering matches integer ordering, negative keys
// included.
func encodeKey(k int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(k)^(1<<63))
	return b
}

func encodeKeyExclusive(k int64) []byte {
	return encodeKey(k + 1)
}

type rangeIterator struct {
	iter  *pebble.Iterator
	first bool
	key   int64
	val   []byte
	err   error
}

func (it *rangeIterator) Next() bool {
	var valid bool
	if it.first {
		it.first = false
		valid = it.iter.Valid()
	} else {
		valid = it.iter.Next()
	}
	if !valid {
		return false
	}
	k := it.iter.Key()
	if len(k) != 8 {
		it.err = errors.Newf("lsm: unexpected key length %d", len(k))
		return false
	}
	it.key = int64(binary.BigEndian.Uint64(k) ^ (1 << 63))
	v := it.iter.Value()
	it.val = make([]byte, len(v))
	copy(it.val, v)
	return true
}

func (it *rangeIterator) Key() int64    { return it.key }
func (it *rangeIterator) Value() []byte { return it.val }
func (it *rangeIterator) Error() error  { return it.err }
func (it *rangeIterator) Close() error  { return it.iter.Close() }
