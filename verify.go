package btverify

import (
	"github.com/ryogrid/wt-btree-verify/interfaces"
)

// DescSector is the size in bytes of the file's descriptor sector; byte 0
// through DescSector is reserved and excluded from the body (spec.md §3).
const DescSector = 512

// Options configures one verification pass. Dump gates the diagnostic
// per-page dump (spec.md §9's Open Question, resolved as a runtime
// switch rather than a build tag): when true, DumpPage must be non-nil
// or Verify fails with CodeUnsupported, mirroring __wt_dumpfile's
// EOPNOTSUPP in a build without diagnostic support.
type Options struct {
	AllocSize  uint32
	DescSector uint32 // defaults to DescSector when zero
	FileSize   int64
	Comparator Comparator
	Dump       bool
	DumpPage   func(*Page)
}

// Collaborators bundles the external interfaces the verifier borrows
// (spec.md §6): everything below is implemented by the storage engine,
// never by this package.
type Collaborators struct {
	Cache     PageCache
	Disk      interfaces.DiskReader
	Validator interfaces.DiskValidator
	RowKeyer  interfaces.RowKeyer
	FreeList  interfaces.FreeListIter
	Reporter  Reporter
}

// verifyState is the verifier's task state, owned by Verify and borrowed
// mutably by every helper (spec.md §9's "static per-walk context struct"
// pattern, re-architected as an owned struct instead of a global so a
// second concurrent verification is simply a second verifyState).
type verifyState struct {
	cache     PageCache
	disk      interfaces.DiskReader
	validator interfaces.DiskValidator
	rowKeyer  interfaces.RowKeyer
	freeList  interfaces.FreeListIter
	rep       Reporter

	allocSize uint32
	bodySize  int64

	frags  *FragMap
	keymon *KeyMonitor
	recno  RecnoMonitor

	fcnt uint64

	dump     bool
	dumpPage func(*Page)
}

// Verify walks root depth-first, proves every logical and structural
// invariant in spec.md §3 holds, and reconciles the free list and frag-map
// coverage. It always tears down the frag-map and monitors, and evicts
// the root page, on both success and failure paths (spec.md §4.1).
func Verify(root *Page, opts Options, collab Collaborators) *VerifyError {
	rep := collab.Reporter
	if rep == nil {
		rep = discardReporter{}
	}
	desc := opts.DescSector
	if desc == 0 {
		desc = DescSector
	}

	if opts.FileSize <= int64(desc) {
		return newErr(CodePrecondition, "the file contains no data pages and cannot be verified")
	}
	bodySize := opts.FileSize - int64(desc)
	frags, verr := fragsForSize(bodySize, opts.AllocSize)
	if verr != nil {
		return verr
	}
	if opts.Dump && opts.DumpPage == nil {
		return newErr(CodeUnsupported, "diagnostic dump requested but no dump sink configured")
	}

	v := &verifyState{
		cache:     collab.Cache,
		disk:      collab.Disk,
		validator: collab.Validator,
		rowKeyer:  collab.RowKeyer,
		freeList:  collab.FreeList,
		rep:       rep,
		allocSize: opts.AllocSize,
		bodySize:  bodySize,
		frags:     newFragMap(frags, opts.AllocSize),
		keymon:    newKeyMonitor(opts.Comparator),
		dump:      opts.Dump,
		dumpPage:  opts.DumpPage,
	}
	if v.disk == nil {
		v.disk = nopDiskReader{}
	}
	if v.freeList == nil {
		v.freeList = nopFreeList{}
	}

	var result *VerifyError
	if root == nil || root.Addr == InvalidAddr {
		result = newErr(CodeStructural, "root page has no valid address")
	} else {
		result = v.walk(root, 1)
		if result == nil {
			if verr := v.reconcileFreeList(); verr != nil {
				result = verr
			}
		}
		if run := v.frags.audit(rep); run != nil && result == nil {
			if run.start == run.end {
				result = newErr(CodeStructural, "file fragment %d was never verified", run.start)
			} else {
				result = newErr(CodeStructural, "file fragments %d-%d were never verified", run.start, run.end)
			}
		}
	}

	// Teardown runs unconditionally on both success and failure paths
	// (spec.md §4.1, §7): evict the root page, merging any teardown error
	// into the primary result using "first non-zero wins for primary".
	if root != nil && root.Addr != InvalidAddr && v.cache != nil {
		if everr := v.cache.Reconcile(root); everr != nil && result == nil {
			result = wrapErr(CodeTransient, everr, "evicting root page at addr %d", root.Addr)
		}
	}
	v.rep.Progress(v.fcnt)

	return result
}
