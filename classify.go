package btverify

// walk is the tree driver's recursive depth-first descent (spec.md §4.1).
// page has already been physically verified and materialized; walk checks
// logical relationships in the page and in the tree. parentRecno is the
// starting record number the parent expects of this page, used by the
// three column-store kinds and ignored by the two row-store kinds.
func (v *verifyState) walk(page *Page, parentRecno uint64) *VerifyError {
	v.fcnt++
	if v.fcnt%10 == 0 {
		v.rep.Progress(v.fcnt)
	}

	if verr := v.frags.addFrag(page.Addr, page.Size); verr != nil {
		return verr
	}

	if v.dump {
		v.dumpPage(page)
	}

	switch page.Kind {
	case KindColFixLeaf, KindColVarLeaf, KindColInternal:
		if page.Recno != parentRecno {
			return newErr(CodeLogical,
				"page at addr %d has a starting record of %d where the expected starting record was %d",
				page.Addr, page.Recno, parentRecno)
		}
	case KindRowLeaf, KindRowInternal:
		// no starting-record check; row-store pages carry no recno.
	default:
		return newErr(CodeStructural, "page at addr %d has an unrecognized kind", page.Addr)
	}

	switch page.Kind {
	case KindColFixLeaf:
		v.recno.Add(uint64(page.Entries))
	case KindColVarLeaf:
		v.recno.Add(colVarRecordCount(page.ColVar))
	}

	if page.Kind == KindRowLeaf {
		if verr := v.checkRowLeafKeyOrder(page); verr != nil {
			return verr
		}
	}

	switch page.Kind {
	case KindColVarLeaf, KindRowLeaf, KindRowInternal:
		if verr := v.sweepOverflowCells(page); verr != nil {
			return verr
		}
	}

	switch page.Kind {
	case KindColInternal:
		return v.descendColInternal(page)
	case KindRowInternal:
		return v.descendRowInternal(page)
	}
	return nil
}

// checkRowLeafKeyOrder materializes the page's first and last on-disk
// keys and feeds them to the key-order monitor (spec.md §4.1 step 6).
func (v *verifyState) checkRowLeafKeyOrder(page *Page) *VerifyError {
	if len(page.RowSlots) == 0 {
		return newErr(CodeStructural, "row-leaf page at addr %d has no slots", page.Addr)
	}
	first, verr := v.rowKey(page, 0)
	if verr != nil {
		return verr
	}
	last, verr := v.rowKey(page, uint32(len(page.RowSlots)-1))
	if verr != nil {
		return verr
	}
	return v.keymon.UpdateLeaf(page.Addr, first, last)
}

// rowKey materializes the logical key for a row-leaf slot (row_key in
// spec.md §6). A slot's key is usually already decoded onto the page, but
// when it isn't, the configured RowKeyer collaborator is asked to produce
// it, the way a real access method would materialize a key on demand.
func (v *verifyState) rowKey(page *Page, slot uint32) ([]byte, *VerifyError) {
	if key := page.RowSlots[slot].Key; key != nil {
		return key, nil
	}
	if v.rowKeyer == nil {
		return nil, newErr(CodeStructural,
			"row-leaf slot %d on page at addr %d has no materialized key and no row-key collaborator configured",
			slot, page.Addr)
	}
	key, err := v.rowKeyer.RowKey(page, slot)
	if err != nil {
		return nil, wrapErr(CodeTransient, err, "materializing key for slot %d on page at addr %d", slot, page.Addr)
	}
	return key, nil
}

// descendColInternal checks each child's starting record number against
// the running total, then recurses left-to-right (spec.md §4.1 step 8).
func (v *verifyState) descendColInternal(page *Page) *VerifyError {
	for _, child := range page.ColChildren {
		if verr := v.recno.CheckChild(child.Addr, child.Recno); verr != nil {
			return verr
		}
		if verr := v.descendInto(page, child.Addr, child.Size, child.Recno); verr != nil {
			return verr
		}
	}
	return nil
}

// descendRowInternal checks each fence key (except the magic 0th) against
// the key-order monitor, then recurses left-to-right.
func (v *verifyState) descendRowInternal(page *Page) *VerifyError {
	for i, child := range page.RowChildren {
		if i >= 1 {
			if verr := v.keymon.UpdateInternal(page.Addr, uint32(i), child.Fence); verr != nil {
				return verr
			}
		}
		if verr := v.descendInto(page, child.Addr, child.Size, 0); verr != nil {
			return verr
		}
	}
	return nil
}

// descendInto pages a child in, recurses, and always clears the hazard
// and reconciles the child for eviction afterward — a child-level error
// propagates, but the reconcile-evict still runs and its error is merged
// into the return code (spec.md §4.1 "Failure semantics").
func (v *verifyState) descendInto(parent *Page, childAddr, childSize uint32, childRecno uint64) *VerifyError {
	if v.cache == nil {
		return newErr(CodeStructural, "no page cache configured to descend to child at addr %d", childAddr)
	}
	child, err := v.cache.PageIn(parent, childAddr, childSize)
	if err != nil {
		return wrapErr(CodeTransient, err, "paging in child at addr %d", childAddr)
	}

	result := v.walk(child, childRecno)

	v.cache.HazardClear(child)
	if everr := v.cache.Reconcile(child); everr != nil && result == nil {
		result = wrapErr(CodeTransient, everr, "evicting child page at addr %d", childAddr)
	}
	return result
}
