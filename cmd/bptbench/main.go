// Command bptbench compares the tree engine against a Pebble-backed LSM
// store under mixed workloads, adapted from the teacher's thesis
// benchmark harness (main.go/main2.go/workload.go/benchmark.go) into one
// consolidated tool scoped to the engine-vs-Pebble comparison.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bptreekv/bptreekv/internal/benchindex"
	"github.com/bptreekv/bptreekv/internal/benchindex/lsm"
)

func main() {
	dir, err := os.MkdirTemp("", "bptbench-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	outCSV, err := os.Create("bptbench_results.csv")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer outCSV.Close()

	w := csv.NewWriter(outCSV)
	w.Write([]string{"Structure", "Config", "TestType", "LatencyNs", "MemMB", "HeapObjects"})

	const scale = 20000

	names := []string{}
	insertLatencies := []float64{}

	for _, lMax := range []int{4, 16, 64} {
		name := "BPlusTree"
		cfg := strconv.Itoa(lMax)
		idx, err := openBPTreeIndex(filepath.Join(dir, "bpt-"+cfg), lMax, lMax)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		lat := runSuite(w, name, cfg, idx, scale)
		names = append(names, name+"("+cfg+")")
		insertLatencies = append(insertLatencies, float64(lat))
	}

	{
		name := "LSM"
		idx, err := lsm.Open(filepath.Join(dir, "lsm"))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			lat := runSuite(w, name, "pebble", idx, scale)
			names = append(names, name)
			insertLatencies = append(insertLatencies, float64(lat))
		}
	}

	w.Flush()

	if err := renderLatencyChart("bptbench_latency.png", names, insertLatencies); err != nil {
		fmt.Fprintln(os.Stderr, "chart render skipped:", err)
	}

	fmt.Println("Benchmark complete: bptbench_results.csv, bptbench_latency.png")
}

func runSuite(w *csv.Writer, name, cfg string, idx benchindex.Index, n int) int64 {
	fmt.Printf("Testing %s (Config: %s)\n", name, cfg)
	defer idx.Close()

	start := time.Now()
	for k := 0; k < n; k++ {
		idx.Insert(int64(k), []byte("v"))
	}
	insertLatency := time.Since(start).Nanoseconds() / int64(n)

	stats := sampleMemory()
	recordResult(w, benchResult{
		Name:      name,
		Config:    cfg,
		Operation: "Footprint_SteadyState",
		LatencyNs: insertLatency,
		MemMB:     stats.AllocMB,
		Objects:   stats.HeapObjects,
	})

	start = time.Now()
	executeWorkload(idx, oltp, n/2)
	recordResult(w, benchResult{name, cfg, "Workload_OLTP", time.Since(start).Nanoseconds() / int64(n/2), sampleMemory().AllocMB, 0})

	start = time.Now()
	executeWorkload(idx, olap, n/2)
	recordResult(w, benchResult{name, cfg, "Workload_OLAP", time.Since(start).Nanoseconds() / int64(n/2), sampleMemory().AllocMB, 0})

	start = time.Now()
	executeWorkload(idx, reporting, 100)
	recordResult(w, benchResult{name, cfg, "Workload_Range", time.Since(start).Nanoseconds() / 100, sampleMemory().AllocMB, 0})

	return insertLatency
}
