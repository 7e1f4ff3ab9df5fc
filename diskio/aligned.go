// Package diskio provides concrete interfaces.DiskReader implementations
// for the verifier's synchronous overflow-page reads (spec.md §4.5, §6).
// Overflow pages are read synchronously and deliberately bypass the page
// cache's asynchronous reader, which is exactly what O_DIRECT gives us:
// an unbuffered, uncached read straight from the block device.
package diskio

import (
	"fmt"
	"os"

	"github.com/ncw/directio"
)

// AlignedReader is a DiskReader backed by a real file opened with
// O_DIRECT, used the way the teacher's go.mod pulls in directio (the
// retrieved slice of that repo never reaches the file that uses it —
// here it is the verifier's concrete synchronous overflow reader).
type AlignedReader struct {
	f          *os.File
	descSector int64
	allocSize  uint32
}

// NewAlignedReader opens path for O_DIRECT reads. descSector is the
// byte offset of the file body (spec.md §3); allocSize is the
// allocation-unit size every fragment address is a multiple of.
func NewAlignedReader(path string, descSector int64, allocSize uint32) (*AlignedReader, error) {
	f, err := directio.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s for direct I/O: %w", path, err)
	}
	return &AlignedReader{f: f, descSector: descSector, allocSize: allocSize}, nil
}

// Close releases the underlying file handle.
func (r *AlignedReader) Close() error { return r.f.Close() }

// DiskRead reads size bytes starting at fragment addr into buf. The
// transfer is staged through an aligned scratch block because O_DIRECT
// requires both the buffer and the I/O size to be block-aligned, while
// callers may ask for an arbitrary overflow size.
func (r *AlignedReader) DiskRead(buf []byte, addr uint32, size uint32) error {
	if uint32(len(buf)) != size {
		return fmt.Errorf("disk read into %d-byte buffer for %d-byte request", len(buf), size)
	}
	off := r.descSector + int64(addr)*int64(r.allocSize)
	skew := int(off % int64(directio.AlignSize))

	alignedSize := directio.AlignSize
	for alignedSize < skew+int(size) {
		alignedSize += directio.AlignSize
	}
	block := directio.AlignedBlock(alignedSize)

	if _, err := r.f.ReadAt(block, off-int64(skew)); err != nil {
		return fmt.Errorf("direct read at fragment %d: %w", addr, err)
	}
	copy(buf, block[skew:skew+int(size)])
	return nil
}
