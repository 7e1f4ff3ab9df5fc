// Package buffer provides a concrete btverify.PageCache, the teacher's
// storage/buffer role (wrapping a real buffer-pool manager) adapted to
// the verifier's page_in/hazard_clear/reconcile contract (spec.md §6).
//
// The teacher's own adapter (storage/buffer/parent_bufmgr_impl.go) wraps
// github.com/ryogrid/SamehadaDB/lib's BufferPoolManager through a
// same-module `types` package that is not present in the retrieved
// slice of that repo; its exact package path and exported surface are
// not grounded anywhere in the corpus. Rather than guess at an ungrounded
// external API, this adapter keeps the same role — a pinned, hazard-
// tracked page table a verifier can page in and out of — implemented
// directly, in the style of the teacher's own PinLatch/UnpinLatch
// bookkeeping in bufmgr.go.
package buffer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ryogrid/wt-btree-verify"
)

// pageEntry is one resident page plus its hazard (pin) count.
type pageEntry struct {
	page   *btverify.Page
	hazard int32
}

// MemPageCache is an in-memory PageCache: pages are registered up front
// (as a real engine's asynchronous reader would have materialized them
// from disk already) and PageIn simply establishes a hazard on the
// requested address. It is the concrete cache used by the package's own
// tests and is a reasonable starting point for an embedder wiring the
// verifier against a real page cache.
type MemPageCache struct {
	mu    sync.Mutex
	pages map[uint32]*pageEntry
}

// NewMemPageCache returns an empty cache; call Register for every page
// reachable from the tree under test before calling Verify or WalkStats.
func NewMemPageCache() *MemPageCache {
	return &MemPageCache{pages: make(map[uint32]*pageEntry)}
}

// Register makes p available to PageIn at p.Addr.
func (c *MemPageCache) Register(p *btverify.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[p.Addr] = &pageEntry{page: p}
}

// PageIn establishes a hazard pointer on the page at childAddr. parent is
// unused by this adapter (a real buffer pool consults it for
// prefetch/locality hints only).
func (c *MemPageCache) PageIn(parent *btverify.Page, childAddr uint32, childSize uint32) (*btverify.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pages[childAddr]
	if !ok {
		return nil, fmt.Errorf("no page registered at addr %d", childAddr)
	}
	if e.page.Size != childSize {
		return nil, fmt.Errorf("page at addr %d has size %d, reference expected %d", childAddr, e.page.Size, childSize)
	}
	atomic.AddInt32(&e.hazard, 1)
	return e.page, nil
}

// HazardClear releases the caller's hazard on page.
func (c *MemPageCache) HazardClear(page *btverify.Page) {
	c.mu.Lock()
	e, ok := c.pages[page.Addr]
	c.mu.Unlock()
	if !ok {
		return
	}
	atomic.AddInt32(&e.hazard, -1)
}

// Reconcile is a no-op eviction for the in-memory cache: there is nothing
// to write back, and the page stays resident for the next lookup. A real
// adapter backed by a bounded pool would evict here once the hazard count
// reaches zero.
func (c *MemPageCache) Reconcile(page *btverify.Page) error {
	c.mu.Lock()
	e, ok := c.pages[page.Addr]
	c.mu.Unlock()
	if ok && atomic.LoadInt32(&e.hazard) != 0 {
		return fmt.Errorf("page at addr %d reconciled with a live hazard", page.Addr)
	}
	return nil
}
