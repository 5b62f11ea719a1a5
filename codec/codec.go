// Package codec provides fixed-width binary encoders for the ordered key
// and value types stored in the B+ tree's paged files. A record on disk
// must have a stable size known up front, so the key and value types of
// every composite entry (leaf data and separators alike) are encoded
// through a Fixed implementation rather than a variable-length scheme.
package codec

import (
	"encoding/binary"
	"math"
)

// Fixed encodes and decodes values of type T into fixed-size byte buffers.
// Size reports that width in bytes; Encode and Decode must never read or
// write outside the first Size() bytes of buf.
type Fixed[T any] interface {
	Size() int
	Encode(v T, buf []byte)
	Decode(buf []byte) T
}

type int64Codec struct{}

func (int64Codec) Size() int { return 8 }
func (int64Codec) Encode(v int64, buf []byte) {
	binary.LittleEndian.PutUint64(buf, uint64(v))
}
func (int64Codec) Decode(buf []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buf))
}

// Int64 encodes int64 values in 8 bytes, little-endian.
func Int64() Fixed[int64] { return int64Codec{} }

type intCodec struct{}

func (intCodec) Size() int { return 8 }
func (intCodec) Encode(v int, buf []byte) {
	binary.LittleEndian.PutUint64(buf, uint64(int64(v)))
}
func (intCodec) Decode(buf []byte) int {
	return int(int64(binary.LittleEndian.Uint64(buf)))
}

// Int encodes platform int values as a little-endian int64.
func Int() Fixed[int] { return intCodec{} }

type uint64Codec struct{}

func (uint64Codec) Size() int { return 8 }
func (uint64Codec) Encode(v uint64, buf []byte) {
	binary.LittleEndian.PutUint64(buf, v)
}
func (uint64Codec) Decode(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf)
}

// Uint64 encodes uint64 values in 8 bytes, little-endian. Intended for
// routing keys produced by a hash such as stringhash.Sum64.
func Uint64() Fixed[uint64] { return uint64Codec{} }

type float64Codec struct{}

func (float64Codec) Size() int { return 8 }
func (float64Codec) Encode(v float64, buf []byte) {
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
}
func (float64Codec) Decode(buf []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(buf))
}

// Float64 encodes float64 values in 8 bytes, little-endian.
func Float64() Fixed[float64] { return float64Codec{} }

type fixedStringCodec struct{ width int }

func (c fixedStringCodec) Size() int { return c.width }
func (c fixedStringCodec) Encode(v string, buf []byte) {
	n := copy(buf, v)
	for i := n; i < c.width; i++ {
		buf[i] = 0
	}
}
func (c fixedStringCodec) Decode(buf []byte) string {
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}

// String encodes strings into a fixed width, NUL-padded and truncated to
// fit. Callers must pick a width wide enough for their keys/values;
// truncation is silent, matching the original template's fixed-size
// Key/Value slots (no room is reserved for length prefixes).
func String(width int) Fixed[string] {
	if width < 1 {
		width = 1
	}
	return fixedStringCodec{width: width}
}
