// Package bptree implements a persistent, disk-backed B+ tree providing
// an ordered multimap over composite (Key, Value) pairs. It generalizes
// the teacher's dbms/index/bptree/pbtree.go: that file hard-coded int64
// keys, a single value per key, and a fixed order; this package is
// parameterized over any cmp.Ordered key and value type via explicit
// codec.Fixed codecs, supports multiple values per key, and completes
// the original's removal path with full redistribute/merge/root-collapse
// propagation.
package bptree

import (
	"cmp"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"

	"github.com/bptreekv/bptreekv/codec"
	"github.com/bptreekv/bptreekv/pagefile"
)

const (
	headerRoot      = 1
	headerHeight    = 2
	headerRootLeaf  = 3
	headerLeafChain = 4
	headerSlotCount = 4
)

// Options configures a Tree at Open time. LMax bounds the number of
// entries held in a single leaf block; IMax bounds the number of
// separators (and so IMax+1 children) held in a single internal node.
// Both default to 4, matching the order recovered from original_source.
type Options struct {
	LMax int
	IMax int
	Log  logr.Logger
}

func (o Options) withDefaults() Options {
	if o.LMax <= 0 {
		o.LMax = 4
	}
	if o.IMax <= 0 {
		o.IMax = 4
	}
	return o
}

// Tree is a disk-backed B+ tree multimap over (K, V) pairs, ordered
// first by Key, then by Value. All mutating and read operations are
// safe only for a single Tree instance driving one underlying pair of
// files; concurrent external processes on the same path are not
// supported, matching the teacher's single-writer pbtree design.
type Tree[K cmp.Ordered, V cmp.Ordered] struct {
	opts Options
	log  logr.Logger

	leaves *pagefile.File[block[K, V]]
	nodes  *pagefile.File[index[K, V]]

	entryCodec entryCodec[K, V]

	root       int64
	rootIsLeaf bool
	height     int
	leafHead   int64

	metrics *Metrics
}

// Open opens (or creates) the tree's pair of backing files at
// leavesPath and nodesPath. If neither file previously existed, a fresh
// empty tree is initialised with a single, empty root leaf; if they
// did, the persisted root/height/leaf-chain metadata is loaded instead
// — a restart never re-initialises state that already exists on disk.
func Open[K cmp.Ordered, V cmp.Ordered](leavesPath, nodesPath string, keyCodec codec.Fixed[K], valueCodec codec.Fixed[V], opts Options) (*Tree[K, V], error) {
	opts = opts.withDefaults()
	if opts.Log.GetSink() == nil {
		opts.Log = logr.Discard()
	}

	ec := entryCodec[K, V]{key: keyCodec, value: valueCodec}
	bc := blockCodec[K, V]{entry: ec, lMax: opts.LMax}
	ic := indexCodec[K, V]{entry: ec, iMax: opts.IMax}

	fresh := !pagefile.Exist(leavesPath) && !pagefile.Exist(nodesPath)

	leaves, err := pagefile.Open(leavesPath, bc, 2)
	if err != nil {
		return nil, errors.Wrap(err, "bptree: open leaf file")
	}
	nodes, err := pagefile.Open(nodesPath, ic, headerSlotCount)
	if err != nil {
		leaves.Close()
		return nil, errors.Wrap(err, "bptree: open node file")
	}

	t := &Tree[K, V]{
		opts:       opts,
		log:        opts.Log,
		leaves:     leaves,
		nodes:      nodes,
		entryCodec: ec,
		metrics:    newMetrics(),
	}

	if fresh {
		if err := t.initFresh(); err != nil {
			leaves.Close()
			nodes.Close()
			return nil, err
		}
		t.log.Info("initialised new tree", "lMax", opts.LMax, "iMax", opts.IMax)
	} else {
		if err := t.loadMetadata(); err != nil {
			leaves.Close()
			nodes.Close()
			return nil, err
		}
		t.log.Info("loaded existing tree", "root", t.root, "height", t.height, "rootIsLeaf", t.rootIsLeaf)
	}
	t.metrics.setHeight(t.height)

	return t, nil
}

func (t *Tree[K, V]) initFresh() error {
	root := newBlock[K, V](t.opts.LMax)
	root.next = noChild
	off, err := t.leaves.Write(root)
	if err != nil {
		return errors.Wrap(err, "bptree: write initial root leaf")
	}
	t.root = off
	t.rootIsLeaf = true
	t.height = 0
	t.leafHead = off
	return t.persistMetadata()
}

func (t *Tree[K, V]) loadMetadata() error {
	root, err := t.nodes.GetInfo(headerRoot)
	if err != nil {
		return errors.Wrap(err, "bptree: load root offset")
	}
	height, err := t.nodes.GetInfo(headerHeight)
	if err != nil {
		return errors.Wrap(err, "bptree: load height")
	}
	rootLeaf, err := t.nodes.GetInfo(headerRootLeaf)
	if err != nil {
		return errors.Wrap(err, "bptree: load root-is-leaf flag")
	}
	leafHead, err := t.nodes.GetInfo(headerLeafChain)
	if err != nil {
		return errors.Wrap(err, "bptree: load leaf chain head")
	}
	t.root = root
	t.height = int(height)
	t.rootIsLeaf = rootLeaf != 0
	t.leafHead = leafHead
	return nil
}

func (t *Tree[K, V]) persistMetadata() error {
	if err := t.nodes.WriteInfo(t.root, headerRoot); err != nil {
		return errors.Wrap(err, "bptree: persist root offset")
	}
	if err := t.nodes.WriteInfo(int64(t.height), headerHeight); err != nil {
		return errors.Wrap(err, "bptree: persist height")
	}
	rootLeaf := int64(0)
	if t.rootIsLeaf {
		rootLeaf = 1
	}
	if err := t.nodes.WriteInfo(rootLeaf, headerRootLeaf); err != nil {
		return errors.Wrap(err, "bptree: persist root-is-leaf flag")
	}
	if err := t.nodes.WriteInfo(t.leafHead, headerLeafChain); err != nil {
		return errors.Wrap(err, "bptree: persist leaf chain head")
	}
	return nil
}

// Close flushes and releases the tree's backing files.
func (t *Tree[K, V]) Close() error {
	errLeaves := t.leaves.Close()
	errNodes := t.nodes.Close()
	if errLeaves != nil {
		return errors.Wrap(errLeaves, "bptree: close leaf file")
	}
	if errNodes != nil {
		return errors.Wrap(errNodes, "bptree: close node file")
	}
	return nil
}

func (t *Tree[K, V]) readLeaf(off int64) (block[K, V], error) {
	b, err := t.leaves.Read(off)
	if err != nil {
		return block[K, V]{}, errors.Wrapf(err, "bptree: read leaf at %d", off)
	}
	return b, nil
}

func (t *Tree[K, V]) writeLeaf(b block[K, V]) (int64, error) {
	t.invariant(b.size <= t.opts.LMax, "leaf size exceeds LMax", "size", b.size, "lMax", t.opts.LMax)
	off, err := t.leaves.Write(b)
	if err != nil {
		return 0, errors.Wrap(err, "bptree: write leaf")
	}
	t.metrics.nodeCount.WithLabelValues("leaf").Inc()
	return off, nil
}

func (t *Tree[K, V]) updateLeaf(b block[K, V], off int64) error {
	t.invariant(b.size <= t.opts.LMax, "leaf size exceeds LMax", "size", b.size, "lMax", t.opts.LMax)
	if err := t.leaves.Update(b, off); err != nil {
		return errors.Wrapf(err, "bptree: update leaf at %d", off)
	}
	return nil
}

func (t *Tree[K, V]) readNode(off int64) (index[K, V], error) {
	n, err := t.nodes.Read(off)
	if err != nil {
		return index[K, V]{}, errors.Wrapf(err, "bptree: read internal node at %d", off)
	}
	return n, nil
}

func (t *Tree[K, V]) writeNode(n index[K, V]) (int64, error) {
	t.invariant(n.size <= t.opts.IMax, "internal node size exceeds IMax", "size", n.size, "iMax", t.opts.IMax)
	off, err := t.nodes.Write(n)
	if err != nil {
		return 0, errors.Wrap(err, "bptree: write internal node")
	}
	t.metrics.nodeCount.WithLabelValues("internal").Inc()
	return off, nil
}

func (t *Tree[K, V]) updateNode(n index[K, V], off int64) error {
	t.invariant(n.size <= t.opts.IMax, "internal node size exceeds IMax", "size", n.size, "iMax", t.opts.IMax)
	if err := t.nodes.Update(n, off); err != nil {
		return errors.Wrapf(err, "bptree: update internal node at %d", off)
	}
	return nil
}

// invariant panics if cond is false, reporting msg through the tree's
// logger before doing so. Invariant violations indicate on-disk or
// in-memory corruption that no caller can recover from.
func (t *Tree[K, V]) invariant(cond bool, msg string, kv ...any) {
	if cond {
		return
	}
	t.log.Error(errors.Newf("bptree: invariant violated: %s", msg), "invariant violated", kv...)
	panic(errors.Newf("bptree: invariant violated: %s", msg))
}
