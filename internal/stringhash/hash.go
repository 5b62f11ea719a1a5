// Package stringhash provides a fixed-width integer hash of a string,
// for callers who want to key a Tree by string but need a cmp.Ordered,
// fixed-size on-disk representation. It wraps xxhash the way the
// benchmark workload generator in the teacher repo hashed workload keys
// before handing them to a fixed-slot index.
package stringhash

import "github.com/cespare/xxhash/v2"

// Sum64 returns the xxhash64 of s. Collisions are possible; callers that
// need exact string equality alongside ordering should store the
// original string as the multimap's Value and hash only the routing
// Key.
func Sum64(s string) uint64 {
	return xxhash.Sum64String(s)
}
