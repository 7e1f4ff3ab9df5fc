package btverify

import "github.com/ryogrid/wt-btree-verify/interfaces"

// nopFreeList is a placeholder interfaces.FreeListIter for configurations
// with no free-list entries to reconcile (e.g. a tree with no freed pages).
type nopFreeList struct{}

func (nopFreeList) FreeListEntries() ([]interfaces.FreeListEntry, error) { return nil, nil }

// reconcileFreeList charges every free-list entry's fragments to the
// frag-map (spec.md §4.6). An entry whose end exceeds the body size is
// rejected outright. Per spec.md §9's documented Open Question, the
// source's "try-and-merge-errors" pattern is preserved: every bad entry
// is reported through rep, iteration continues, and the first error
// encountered is what's ultimately returned.
func (v *verifyState) reconcileFreeList() *VerifyError {
	entries, err := v.freeList.FreeListEntries()
	if err != nil {
		return wrapErr(CodeTransient, err, "reading free list")
	}

	var first *VerifyError
	for _, e := range entries {
		if uint64(e.Addr)*uint64(v.allocSize)+uint64(e.Size) > uint64(v.bodySize) {
			verr := newErr(CodeStructural, "free-list entry addr %d references non-existent file pages", e.Addr)
			v.rep.Errorf("%s", verr.Error())
			if first == nil {
				first = verr
			}
			continue
		}
		if verr := v.frags.addFrag(e.Addr, e.Size); verr != nil {
			v.rep.Errorf("%s", verr.Error())
			if first == nil {
				first = verr
			}
		}
	}
	return first
}
