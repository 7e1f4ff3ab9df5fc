package btverify

import (
	"bytes"

	"github.com/ryogrid/wt-btree-verify/interfaces"
)

// This file plays the role of the teacher's bltree_test_util.go: small,
// unexported builders shared by every _test.go file in this package,
// shipped in the regular build the way the teacher's own test-util file
// was (no _test.go suffix).

// byteComparator is the default interfaces.Comparator used throughout the
// test suite: plain lexicographic byte order.
func byteComparator(a, b []byte) int { return bytes.Compare(a, b) }

// fixedFreeList is a canned interfaces.FreeListIter for tests.
type fixedFreeList struct {
	entries []interfaces.FreeListEntry
	err     error
}

func (f fixedFreeList) FreeListEntries() ([]interfaces.FreeListEntry, error) {
	return f.entries, f.err
}

// fixedDiskReader serves overflow reads from a map keyed by addr, copying
// the fixture bytes for that addr into the caller's buffer.
type fixedDiskReader struct {
	pages map[uint32][]byte
}

func (r fixedDiskReader) DiskRead(buf []byte, addr uint32, size uint32) error {
	data, ok := r.pages[addr]
	if !ok {
		return newErr(CodeTransient, "no fixture page at addr %d", addr)
	}
	copy(buf, data)
	return nil
}

// passValidator accepts every chunk it's handed.
type passValidator struct{}

func (passValidator) VerifyDskChunk(image []byte, addr uint32, datalen uint32, size uint32) error {
	return nil
}

// failValidator rejects every chunk it's handed.
type failValidator struct{}

func (failValidator) VerifyDskChunk(image []byte, addr uint32, datalen uint32, size uint32) error {
	return newErr(CodeStructural, "chunk at addr %d failed validation", addr)
}

// rowLeafPage builds a row-store leaf page with the given sorted keys, one
// fragment in size.
func rowLeafPage(addr uint32, allocSize uint32, keys ...string) *Page {
	slots := make([]RowSlot, len(keys))
	for i, k := range keys {
		slots[i] = RowSlot{Key: []byte(k), Value: []byte("v")}
	}
	return &Page{Addr: addr, Size: allocSize, Kind: KindRowLeaf, Entries: uint32(len(keys)), RowSlots: slots}
}

// rowInternalPage builds a row-store internal page. fences[0] is the magic,
// never-compared 0th fence; children must be addr/size-matched 1:1 with fences.
func rowInternalPage(addr uint32, allocSize uint32, fences []string, children []RowChildRef) *Page {
	refs := make([]RowChildRef, len(fences))
	for i, f := range fences {
		refs[i] = RowChildRef{Fence: []byte(f), Addr: children[i].Addr, Size: children[i].Size}
	}
	return &Page{Addr: addr, Size: allocSize, Kind: KindRowInternal, Entries: uint32(len(fences)), RowChildren: refs}
}

// colFixLeafPage builds a column-store fixed-length leaf with entries
// records starting at recno.
func colFixLeafPage(addr uint32, allocSize uint32, recno uint64, entries uint32) *Page {
	return &Page{Addr: addr, Size: allocSize, Kind: KindColFixLeaf, Recno: recno, Entries: entries}
}

// colInternalPage builds a column-store internal page from child refs.
func colInternalPage(addr uint32, allocSize uint32, recno uint64, children []ColChildRef) *Page {
	return &Page{Addr: addr, Size: allocSize, Kind: KindColInternal, Recno: recno, ColChildren: children}
}

// mapCache is a PageCache backed by a plain map, for tests that don't need
// hazard-pointer bookkeeping assertions (see storage/buffer.MemPageCache
// for the adapter that does).
type mapCache struct {
	pages map[uint32]*Page
}

func newMapCache(pages ...*Page) *mapCache {
	m := &mapCache{pages: make(map[uint32]*Page, len(pages))}
	for _, p := range pages {
		m.pages[p.Addr] = p
	}
	return m
}

func (c *mapCache) PageIn(parent *Page, childAddr uint32, childSize uint32) (*Page, error) {
	p, ok := c.pages[childAddr]
	if !ok {
		return nil, newErr(CodeTransient, "no page registered at addr %d", childAddr)
	}
	return p, nil
}

func (c *mapCache) HazardClear(page *Page) {}

func (c *mapCache) Reconcile(page *Page) error { return nil }
