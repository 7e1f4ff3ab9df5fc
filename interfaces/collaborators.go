// Package interfaces declares the external collaborators the verifier
// borrows from the storage engine (spec.md §6) that don't need to know
// about the verifier's own Page representation: cell_unpack/
// verify_dsk_chunk come from the on-disk codec, row_key/btree_compare
// from the access method, disk_read from the file layer, and
// free_list_iter from the free-list. The page_in/hazard_clear/reconcile
// triple lives in the root package instead (see pagecache.go) because it
// is expressed directly in terms of *Page.
package interfaces

// DiskReader performs a synchronous raw read of size bytes starting at
// fragment addr, used only for overflow pages (spec.md §4.5) — overflow
// reads deliberately bypass the page cache's asynchronous reader.
type DiskReader interface {
	DiskRead(buf []byte, addr uint32, size uint32) error
}

// DiskValidator validates an on-disk page image's chunk header and
// declared data length (verify_dsk_chunk in spec.md §6).
type DiskValidator interface {
	VerifyDskChunk(image []byte, addr uint32, datalen uint32, size uint32) error
}

// RowKeyer materializes the logical key for a row-store slot.
type RowKeyer interface {
	RowKey(page interface{}, slot uint32) ([]byte, error)
}

// Comparator is the total order configured for the tree (btree_compare).
type Comparator func(a, b []byte) int

// FreeListEntry is one (addr, size) pair from the engine's free list.
type FreeListEntry struct {
	Addr uint32
	Size uint32
}

// FreeListIter enumerates the engine's free-list entries.
type FreeListIter interface {
	FreeListEntries() ([]FreeListEntry, error)
}
