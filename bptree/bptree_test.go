package bptree

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/bptreekv/bptreekv/codec"
)

func openTestTree(t *testing.T, lMax, iMax int) *Tree[int, int] {
	t.Helper()
	dir := t.TempDir()
	tr, err := Open[int, int](filepath.Join(dir, "leaves.dat"), filepath.Join(dir, "nodes.dat"), codec.Int(), codec.Int(), Options{LMax: lMax, IMax: iMax})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestInsertFindBasic(t *testing.T) {
	tr := openTestTree(t, 2, 4)
	for _, k := range []int{1, 2, 3, 4, 5, 6, 7} {
		if err := tr.Insert(k, 0); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}
	for _, k := range []int{1, 2, 3, 4, 5, 6, 7} {
		values, err := tr.Find(k)
		if err != nil {
			t.Fatalf("Find(%d): %v", k, err)
		}
		if len(values) != 1 || values[0] != 0 {
			t.Fatalf("Find(%d) = %v, want [0]", k, values)
		}
	}
	if values, err := tr.Find(42); err != nil || values != nil {
		t.Fatalf("Find(42) = %v, %v; want nil, nil", values, err)
	}
}

func TestInsertIdempotent(t *testing.T) {
	tr := openTestTree(t, 2, 4)
	for i := 0; i < 3; i++ {
		if err := tr.Insert(1, 10); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	values, err := tr.Find(1)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("Find(1) = %v, want exactly one value", values)
	}
}

func TestMultipleValuesPerKeySpanningLeaves(t *testing.T) {
	tr := openTestTree(t, 2, 4)
	want := []int{10, 20, 30, 40, 50}
	for _, v := range want {
		if err := tr.Insert(7, v); err != nil {
			t.Fatalf("Insert(7,%d): %v", v, err)
		}
	}
	// interleave other keys so the key-7 run is not alone in the tree
	for _, k := range []int{1, 3, 5, 9, 11} {
		if err := tr.Insert(k, 0); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}

	got, err := tr.Find(7)
	if err != nil {
		t.Fatalf("Find(7): %v", err)
	}
	sort.Ints(got)
	if len(got) != len(want) {
		t.Fatalf("Find(7) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Find(7) = %v, want %v", got, want)
		}
	}
}

func TestRemoveBasic(t *testing.T) {
	tr := openTestTree(t, 2, 4)
	for _, k := range []int{1, 2, 3, 4, 5} {
		if err := tr.Insert(k, 0); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}
	if err := tr.Remove(3, 0); err != nil {
		t.Fatalf("Remove(3): %v", err)
	}
	values, err := tr.Find(3)
	if err != nil {
		t.Fatalf("Find(3): %v", err)
	}
	if values != nil {
		t.Fatalf("Find(3) after Remove = %v, want nil", values)
	}
	for _, k := range []int{1, 2, 4, 5} {
		values, err := tr.Find(k)
		if err != nil || len(values) != 1 {
			t.Fatalf("Find(%d) = %v, %v; want one value", k, values, err)
		}
	}
}

func TestRemoveNonexistentIsNoop(t *testing.T) {
	tr := openTestTree(t, 2, 4)
	if err := tr.Insert(1, 0); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tr.Remove(99, 0); err != nil {
		t.Fatalf("Remove of absent pair returned error: %v", err)
	}
	if err := tr.Remove(1, 99); err != nil {
		t.Fatalf("Remove of absent value returned error: %v", err)
	}
	values, err := tr.Find(1)
	if err != nil || len(values) != 1 {
		t.Fatalf("Find(1) = %v, %v; want one value still present", values, err)
	}
}

func TestInsertRemoveManyPreservesRemaining(t *testing.T) {
	tr := openTestTree(t, 2, 4)
	const n = 40
	for k := 0; k < n; k++ {
		if err := tr.Insert(k, k*10); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}
	for k := 0; k < n; k += 2 {
		if err := tr.Remove(k, k*10); err != nil {
			t.Fatalf("Remove(%d): %v", k, err)
		}
	}
	for k := 0; k < n; k++ {
		values, err := tr.Find(k)
		if err != nil {
			t.Fatalf("Find(%d): %v", k, err)
		}
		if k%2 == 0 {
			if values != nil {
				t.Fatalf("Find(%d) after removal = %v, want nil", k, values)
			}
		} else {
			if len(values) != 1 || values[0] != k*10 {
				t.Fatalf("Find(%d) = %v, want [%d]", k, values, k*10)
			}
		}
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	leavesPath := filepath.Join(dir, "leaves.dat")
	nodesPath := filepath.Join(dir, "nodes.dat")

	tr1, err := Open[int, int](leavesPath, nodesPath, codec.Int(), codec.Int(), Options{LMax: 2, IMax: 4})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, k := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9} {
		if err := tr1.Insert(k, k); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}
	if err := tr1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	tr2, err := Open[int, int](leavesPath, nodesPath, codec.Int(), codec.Int(), Options{LMax: 2, IMax: 4})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tr2.Close()

	for _, k := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9} {
		values, err := tr2.Find(k)
		if err != nil || len(values) != 1 || values[0] != k {
			t.Fatalf("Find(%d) after reopen = %v, %v; want [%d], nil", k, values, err, k)
		}
	}
}

func TestFindOnFreshEmptyTree(t *testing.T) {
	tr := openTestTree(t, 2, 4)
	values, err := tr.Find(1)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if values != nil {
		t.Fatalf("Find on empty tree = %v, want nil", values)
	}
}
