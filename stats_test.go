package btverify

import "testing"

func TestWalkStatsCountsPagesByKind(t *testing.T) {
	left := rowLeafPage(1, 512, "a", "b")
	right := rowLeafPage(2, 512, "y", "z")
	root := rowInternalPage(0, 512, []string{"", "m"}, []RowChildRef{{Addr: 1, Size: 512}, {Addr: 2, Size: 512}})
	cache := newMapCache(root, left, right)

	stats, verr := WalkStats(root, cache)
	if verr != nil {
		t.Fatalf("WalkStats: %v", verr)
	}
	if stats.Pages[KindRowInternal] != 1 {
		t.Fatalf("expected 1 row-internal page, got %d", stats.Pages[KindRowInternal])
	}
	if stats.Pages[KindRowLeaf] != 2 {
		t.Fatalf("expected 2 row-leaf pages, got %d", stats.Pages[KindRowLeaf])
	}
	// 2 keys on each of the two leaves.
	if stats.LiveKeys != 4 {
		t.Fatalf("expected 4 live keys, got %d", stats.LiveKeys)
	}
}

func TestWalkStatsColVarTombstoneReconciliation(t *testing.T) {
	page := &Page{
		Addr: 0,
		Kind: KindColVarLeaf,
		ColVar: []ColVarSlot{
			{Null: false, RLE: 1},                                  // live, no update
			{Null: false, RLE: 1, Head: &Update{Tombstone: true}},   // deleted by an update
			{Null: true, Head: &Update{Tombstone: false}},           // resurrected by an update
		},
	}
	cache := newMapCache(page)
	stats, verr := WalkStats(page, cache)
	if verr != nil {
		t.Fatalf("WalkStats: %v", verr)
	}
	// slot 0: live (+1 data item). slot 1: starts live, tombstoned (-1 data, +1 deletion).
	// slot 2: starts deleted (+1 deletion), resurrected (-1 deletion, +1 data item).
	if stats.LiveDataItems != 2 {
		t.Fatalf("expected 2 live data items, got %d", stats.LiveDataItems)
	}
	if stats.ColDeletions != 1 {
		t.Fatalf("expected 1 net deletion, got %d", stats.ColDeletions)
	}
}

func TestWalkStatsColFixCountsEntriesAsIs(t *testing.T) {
	page := colFixLeafPage(0, 512, 1, 7)
	cache := newMapCache(page)
	stats, verr := WalkStats(page, cache)
	if verr != nil {
		t.Fatalf("WalkStats: %v", verr)
	}
	if stats.LiveDataItems != 7 {
		t.Fatalf("expected col-fix to count entries as-is (7), got %d", stats.LiveDataItems)
	}
}

// TestRecnoMonitorAgreesWithColVarRecordCount exercises spec.md §8's
// round-trip property: the verifier's running record total (built from
// RecnoMonitor.Add(colVarRecordCount(...))) must equal what the statistics
// walker's col-var reconciliation would count as live+deleted records for
// the same page.
func TestRecnoMonitorAgreesWithColVarRecordCount(t *testing.T) {
	page := &Page{
		Addr: 1,
		Kind: KindColVarLeaf,
		ColVar: []ColVarSlot{
			{Null: false, RLE: 3},
			{Null: true},
			{Null: false, RLE: 2},
		},
	}
	var m RecnoMonitor
	m.Add(colVarRecordCount(page.ColVar))
	if m.Total() != 6 {
		t.Fatalf("RecnoMonitor.Total() = %d, want 6", m.Total())
	}

	cache := newMapCache(page)
	stats, verr := WalkStats(page, cache)
	if verr != nil {
		t.Fatalf("WalkStats: %v", verr)
	}
	// the statistics walker's live+deleted record count must agree with
	// the verifier's record-total accounting for the same page.
	if got := stats.LiveDataItems + stats.ColDeletions; got != m.Total() {
		t.Fatalf("stats live+deleted = %d, want %d to match RecnoMonitor", got, m.Total())
	}
}
