// Package benchindex defines the common comparison interface that
// cmd/bptbench drives against the tree engine and the Pebble-backed
// comparison backend under internal/benchindex/lsm, adapted from the
// teacher's dbms/index.Index.
package benchindex

// Index is the common interface every comparison backend implements.
type Index interface {
	Insert(key int64, value []byte) error
	Get(key int64) ([]byte, error)
	Delete(key int64) error
	Range(start, end int64) (Iterator, error)
	Close() error
}

// Iterator scans a range of key-value pairs in ascending key order.
type Iterator interface {
	Next() bool
	Key() int64
	Value() []byte
	Error() error
	Close() error
}
