package main

import (
	"math/rand"

	"github.com/bptreekv/bptreekv/internal/benchindex"
)

type workloadType string

const (
	oltp      workloadType = "OLTP (90/10)"
	olap      workloadType = "OLAP (10/90)"
	reporting workloadType = "Reporting (Range)"
)

// executeWorkload drives idx through a mixed read/write/range distribution,
// mirroring the mixed workloads the teacher's thesis benchmark exercised.
func executeWorkload(idx benchindex.Index, wType workloadType, ops int) {
	for i := 0; i < ops; i++ {
		choice := rand.Intn(100)
		key := int64(rand.Intn(ops))

		switch wType {
		case oltp:
			if choice < 90 {
				_, _ = idx.Get(key)
			} else {
				idx.Insert(key, []byte("x"))
			}
		case olap:
			if choice < 10 {
				_, _ = idx.Get(key)
			} else {
				idx.Insert(key, []byte("x"))
			}
		case reporting:
			it, _ := idx.Range(key, key+100)
			if it != nil {
				for it.Next() {
				}
				it.Close()
			}
		}
	}
}
