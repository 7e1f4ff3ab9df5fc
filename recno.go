package btverify

// RecnoMonitor carries the running total of logical records visited so
// far in depth-first leaf order (spec.md §2.4). A column-store subtree
// must begin exactly one past its parent's reported total (spec.md §3).
type RecnoMonitor struct {
	total uint64
}

// Add accumulates entries logical records onto the running total: callers
// pass page.Entries for col-fix-leaf, or the sum of per-slot run-lengths
// for col-var-leaf (spec.md §4.1 step 5).
func (m *RecnoMonitor) Add(entries uint64) {
	m.total += entries
}

// Total is the running record count.
func (m *RecnoMonitor) Total() uint64 { return m.total }

// CheckChild enforces child.recno == running_total + 1 for the next child
// of a column-store internal page (spec.md §4.1 step 8, invariant #2).
func (m *RecnoMonitor) CheckChild(childAddr uint32, childRecno uint64) *VerifyError {
	want := m.total + 1
	if childRecno != want {
		return newErr(CodeLogical,
			"page at addr %d has a starting record of %d where the expected starting record was %d",
			childAddr, childRecno, want)
	}
	return nil
}

// colVarRecordCount sums, over a col-var-leaf's slots, 1 for a null slot
// (a deleted run) or rle for a non-null slot (spec.md §3, §4.1 step 5).
func colVarRecordCount(slots []ColVarSlot) uint64 {
	var n uint64
	for _, s := range slots {
		if s.Null {
			n++
		} else {
			n += s.RLE
		}
	}
	return n
}
