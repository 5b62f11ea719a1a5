package main

import (
	"encoding/csv"
	"runtime"
	"strconv"
)

// benchResult is one row of the comparison CSV: which backend, which
// configuration, which operation mix, and the observed latency/memory.
type benchResult struct {
	Name      string
	Config    string
	Operation string
	LatencyNs int64
	MemMB     uint64
	Objects   uint64
}

type memoryStats struct {
	AllocMB      uint64
	TotalAllocMB uint64
	HeapObjects  uint64
}

// sampleMemory forces a GC so the sample reflects live data rather than
// not-yet-collected garbage.
func sampleMemory() memoryStats {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return memoryStats{
		AllocMB:      m.Alloc / 1024 / 1024,
		TotalAllocMB: m.TotalAlloc / 1024 / 1024,
		HeapObjects:  m.HeapObjects,
	}
}

func recordResult(w *csv.Writer, res benchResult) {
	w.Write([]string{
		res.Name,
		res.Config,
		res.Operation,
		strconv.FormatInt(res.LatencyNs, 10),
		strconv.FormatUint(res.MemMB, 10),
		strconv.FormatUint(res.Objects, 10),
	})
}
