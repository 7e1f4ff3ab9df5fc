package btverify

// Stats is the per-tree statistics record produced by a statistics walk
// (spec.md §4.7): counts of pages by kind, live data items, live keys,
// and column-store deletions.
type Stats struct {
	Pages         map[Kind]uint64
	LiveDataItems uint64
	LiveKeys      uint64
	ColDeletions  uint64
}

// statsState is the statistics walker's task state. It shares the
// classifier dispatch and cell-unpack conventions with verifyState but
// owns none of the verifier's frag-map or key-order bookkeeping — it is
// a parallel traversal, not a step of Verify (spec.md §2.9).
type statsState struct {
	cache PageCache
	stats Stats
}

// WalkStats traverses root depth-first and reports the per-tree
// statistics record spec.md §4.7 describes.
func WalkStats(root *Page, cache PageCache) (*Stats, *VerifyError) {
	if root == nil {
		return nil, newErr(CodeStructural, "root page is nil")
	}
	s := &statsState{cache: cache, stats: Stats{Pages: map[Kind]uint64{}}}
	if verr := s.walk(root); verr != nil {
		return nil, verr
	}
	return &s.stats, nil
}

func (s *statsState) walk(page *Page) *VerifyError {
	s.stats.Pages[page.Kind]++

	switch page.Kind {
	case KindColFixLeaf:
		s.statColFix(page)
	case KindColVarLeaf:
		s.statColVar(page)
	case KindRowLeaf:
		s.statRowLeaf(page)
	}

	switch page.Kind {
	case KindColInternal:
		for _, child := range page.ColChildren {
			if verr := s.descend(page, child.Addr, child.Size); verr != nil {
				return verr
			}
		}
	case KindRowInternal:
		for _, child := range page.RowChildren {
			if verr := s.descend(page, child.Addr, child.Size); verr != nil {
				return verr
			}
		}
	}
	return nil
}

func (s *statsState) descend(parent *Page, addr, size uint32) *VerifyError {
	if s.cache == nil {
		return newErr(CodeStructural, "no page cache configured to descend to child at addr %d", addr)
	}
	child, err := s.cache.PageIn(parent, addr, size)
	if err != nil {
		return wrapErr(CodeTransient, err, "paging in child at addr %d", addr)
	}
	result := s.walk(child)
	s.cache.HazardClear(child)
	if everr := s.cache.Reconcile(child); everr != nil && result == nil {
		result = wrapErr(CodeTransient, everr, "evicting child page at addr %d", addr)
	}
	return result
}

// statColFix counts every fixed-width record as a live data item. Unlike
// col-var, the source never reconciles col-fix tombstones against the
// total here — bt_stat.c's __stat_page_col_fix takes page.entries as-is,
// and this walker preserves that exact (slightly approximate) accounting.
func (s *statsState) statColFix(page *Page) {
	s.stats.LiveDataItems += uint64(page.Entries)
}

// statColVar counts regular and overflow data items, then reconciles
// against each slot's update chain: a tombstone over a previously-live
// slot decrements data and increments the deletion count, an insert over
// a previously-deleted slot does the reverse (spec.md §4.7).
func (s *statsState) statColVar(page *Page) {
	for _, slot := range page.ColVar {
		deleted := slot.Null
		if deleted {
			s.stats.ColDeletions++
		} else {
			s.stats.LiveDataItems += slot.RLE
		}

		for u := slot.Head; u != nil; u = u.Next {
			switch {
			case u.Tombstone && !deleted:
				s.stats.ColDeletions++
				s.stats.LiveDataItems--
				deleted = true
			case !u.Tombstone && deleted:
				s.stats.ColDeletions--
				s.stats.LiveDataItems++
				deleted = false
			}
		}
	}
}

// statRowLeaf counts live entries in the smallest insert list, live
// on-disk slots, and live entries in each per-slot insert list. Keys and
// values move in lockstep: every live entry contributes one of each
// (spec.md §4.7).
func (s *statsState) statRowLeaf(page *Page) {
	var cnt uint64
	for e := page.SmallestInserts; e != nil; e = e.Next {
		if e.live() {
			cnt++
		}
	}
	for _, slot := range page.RowSlots {
		if slot.live() {
			cnt++
		}
		for e := slot.InsertHd; e != nil; e = e.Next {
			if e.live() {
				cnt++
			}
		}
	}
	s.stats.LiveKeys += cnt
	s.stats.LiveDataItems += cnt
}
