package btverify

import (
	"testing"

	"github.com/ryogrid/wt-btree-verify/interfaces"
)

func TestReconcileFreeListChargesFragments(t *testing.T) {
	v := &verifyState{
		rep:       discardReporter{},
		allocSize: 512,
		bodySize:  4096,
		frags:     newFragMap(8, 512),
		freeList: fixedFreeList{entries: []interfaces.FreeListEntry{
			{Addr: 0, Size: 512},
			{Addr: 2, Size: 1024},
		}},
	}
	if verr := v.reconcileFreeList(); verr != nil {
		t.Fatalf("reconcileFreeList: %v", verr)
	}
}

func TestReconcileFreeListOutOfBounds(t *testing.T) {
	rep := &recordingReporter{}
	v := &verifyState{
		rep:       rep,
		allocSize: 512,
		bodySize:  4096,
		frags:     newFragMap(8, 512),
		freeList: fixedFreeList{entries: []interfaces.FreeListEntry{
			{Addr: 7, Size: 1024}, // 7*512+1024 = 4608 > 4096
		}},
	}
	verr := v.reconcileFreeList()
	if verr == nil {
		t.Fatalf("expected an out-of-bounds free-list entry to fail")
	}
	if verr.Code != CodeStructural {
		t.Fatalf("expected CodeStructural, got %v", verr.Code)
	}
	if len(rep.errs) != 1 {
		t.Fatalf("expected one diagnostic reported, got %d", len(rep.errs))
	}
}

func TestReconcileFreeListContinuesPastFirstError(t *testing.T) {
	rep := &recordingReporter{}
	v := &verifyState{
		rep:       rep,
		allocSize: 512,
		bodySize:  4096,
		frags:     newFragMap(8, 512),
		freeList: fixedFreeList{entries: []interfaces.FreeListEntry{
			{Addr: 0, Size: 512},
			{Addr: 0, Size: 512}, // duplicate of the first
			{Addr: 2, Size: 512}, // still charged despite the earlier error
		}},
	}
	verr := v.reconcileFreeList()
	if verr == nil {
		t.Fatalf("expected the duplicate entry to produce an error")
	}
	if len(rep.errs) != 1 {
		t.Fatalf("expected exactly one diagnostic (the duplicate), got %d: %v", len(rep.errs), rep.errs)
	}
	// fragment 2 should have been charged despite the earlier failure.
	if verr2 := v.frags.addFrag(2, 512); verr2 == nil {
		t.Fatalf("expected fragment 2 to already be charged")
	}
}
