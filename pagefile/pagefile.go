// Package pagefile implements the typed, fixed-record paged file store
// used by the B+ tree engine: append-allocation, read-by-offset,
// update-by-offset, and a small header area of fixed-count metadata
// slots. It is the generic descendant of the teacher's dbms/pager.Pager,
// which managed a single raw 4KB page type; pagefile generalizes that to
// an arbitrary fixed-size record described by a codec.Fixed[T], and adds
// the slot-indexed header API the tree's root/height/leaf-head metadata
// needs.
package pagefile

import (
	"encoding/binary"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/bptreekv/bptreekv/codec"
)

const slotWidth = 8

// File is a typed paged file: every record is codec.Size() bytes, stored
// back-to-back after a header of headerSlots eight-byte integers.
// Offsets returned by Write are stable for the lifetime of the file.
type File[T any] struct {
	file        *os.File
	codec       codec.Fixed[T]
	headerSlots int
	recordSize  int
	size        int64 // current file length, tracked to avoid a stat() per append
}

// Exist reports whether a file with persisted state already exists at
// path. It is used by Open to decide whether to initialise a fresh
// header or preserve one already on disk, so that tree state survives
// process restarts.
func Exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open opens path, creating it if necessary. If the file did not exist
// before this call, its header is freshly initialised (zeroed); if it
// did exist, its current contents — including any header slots written
// by a previous process — are preserved untouched.
func Open[T any](path string, c codec.Fixed[T], headerSlots int) (*File[T], error) {
	if headerSlots < 2 {
		headerSlots = 2
	}
	existed := Exist(path)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "pagefile: open %s", path)
	}

	pf := &File[T]{
		file:        f,
		codec:       c,
		headerSlots: headerSlots,
		recordSize:  c.Size(),
	}

	if !existed {
		if err := pf.initialise(); err != nil {
			f.Close()
			return nil, err
		}
	} else {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "pagefile: stat %s", path)
		}
		pf.size = info.Size()
	}

	return pf, nil
}

func (f *File[T]) headerBytes() int64 { return int64(f.headerSlots) * slotWidth }

// initialise truncates the file to an empty, zeroed header area. It is
// only ever invoked for a file that did not previously exist — Open
// decides that, per the spec's "initialize only if new" resolution of
// the persistence-across-restarts ambiguity.
func (f *File[T]) initialise() error {
	hdr := make([]byte, f.headerBytes())
	if _, err := f.file.WriteAt(hdr, 0); err != nil {
		return errors.Wrap(err, "pagefile: initialise header")
	}
	if err := f.file.Truncate(f.headerBytes()); err != nil {
		return errors.Wrap(err, "pagefile: truncate fresh file")
	}
	f.size = f.headerBytes()
	return nil
}

// Write appends record to the file and returns its offset, which is the
// only handle callers retain to find it again via Read/Update.
func (f *File[T]) Write(record T) (int64, error) {
	offset := f.size
	buf := make([]byte, f.recordSize)
	f.codec.Encode(record, buf)
	if _, err := f.file.WriteAt(buf, offset); err != nil {
		return 0, errors.Wrapf(err, "pagefile: write record at %d", offset)
	}
	f.size += int64(f.recordSize)
	return offset, nil
}

// Read fetches the record at offset.
func (f *File[T]) Read(offset int64) (T, error) {
	var zero T
	buf := make([]byte, f.recordSize)
	if _, err := f.file.ReadAt(buf, offset); err != nil {
		return zero, errors.Wrapf(err, "pagefile: read record at %d", offset)
	}
	return f.codec.Decode(buf), nil
}

// Update overwrites the record at offset, which must have been returned
// by a prior Write on this file.
func (f *File[T]) Update(record T, offset int64) error {
	buf := make([]byte, f.recordSize)
	f.codec.Encode(record, buf)
	if _, err := f.file.WriteAt(buf, offset); err != nil {
		return errors.Wrapf(err, "pagefile: update record at %d", offset)
	}
	return nil
}

// WriteInfo sets header slot (1-indexed, per the spec's slot numbering).
// An out-of-range slot is a programming error and panics rather than
// silently corrupting an adjacent slot.
func (f *File[T]) WriteInfo(value int64, slot int) error {
	f.checkSlot(slot)
	buf := make([]byte, slotWidth)
	binary.LittleEndian.PutUint64(buf, uint64(value))
	if _, err := f.file.WriteAt(buf, int64(slot-1)*slotWidth); err != nil {
		return errors.Wrapf(err, "pagefile: write header slot %d", slot)
	}
	return nil
}

// GetInfo reads header slot (1-indexed).
func (f *File[T]) GetInfo(slot int) (int64, error) {
	f.checkSlot(slot)
	buf := make([]byte, slotWidth)
	if _, err := f.file.ReadAt(buf, int64(slot-1)*slotWidth); err != nil {
		return 0, errors.Wrapf(err, "pagefile: read header slot %d", slot)
	}
	return int64(binary.LittleEndian.Uint64(buf)), nil
}

func (f *File[T]) checkSlot(slot int) {
	if slot < 1 || slot > f.headerSlots {
		panic(errors.Newf("pagefile: header slot %d out of range [1,%d]", slot, f.headerSlots))
	}
}

// Close flushes and closes the underlying file.
func (f *File[T]) Close() error {
	return errors.Wrap(f.file.Close(), "pagefile: close")
}
