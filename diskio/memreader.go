package diskio

import (
	"fmt"

	"github.com/dsnet/golib/memfile"
)

// MemReader is a DiskReader backed by an in-memory file, for synthetic-file
// fixtures that must not touch the filesystem (the teacher's go.mod lists
// this dependency for exactly this kind of fixture, though the retrieved
// slice never reaches the file that wires it up). Within this module it is
// exercised by this package's own tests; the root package's tests use
// their own map-backed reader.
type MemReader struct {
	f          *memfile.File
	descSector int64
	allocSize  uint32
}

// NewMemReader wraps body as the whole file's byte content, descriptor
// sector included: fragment addr is read at byte offset
// descSector + addr*allocSize of body. body must already contain the bytes
// for every fragment the verifier under test will read.
func NewMemReader(body []byte, descSector int64, allocSize uint32) *MemReader {
	return &MemReader{f: memfile.New(body), descSector: descSector, allocSize: allocSize}
}

// DiskRead reads size bytes at fragment addr.
func (r *MemReader) DiskRead(buf []byte, addr uint32, size uint32) error {
	if uint32(len(buf)) != size {
		return fmt.Errorf("disk read into %d-byte buffer for %d-byte request", len(buf), size)
	}
	off := r.descSector + int64(addr)*int64(r.allocSize)
	n, err := r.f.ReadAt(buf, off)
	if err != nil {
		return fmt.Errorf("mem read at fragment %d: %w", addr, err)
	}
	if uint32(n) != size {
		return fmt.Errorf("short mem read at fragment %d: got %d want %d", addr, n, size)
	}
	return nil
}
