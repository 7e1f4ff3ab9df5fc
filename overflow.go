package btverify

import (
	"github.com/ryogrid/wt-btree-verify/interfaces"
)

// checkOverflowCell validates and charges one overflow-pointing cell
// (spec.md §4.5): it allocates a scratch buffer of exactly size bytes,
// reads those fragments synchronously, validates the on-disk chunk
// header, and charges the fragments through addFrag. The scratch buffer
// is released on every path by simply letting it go out of scope — Go's
// GC stands in for the source's explicit __wt_scr_release.
func (v *verifyState) checkOverflowCell(addr, size uint32) *VerifyError {
	if size == 0 {
		return newErr(CodeLogical, "overflow cell at addr %d has zero size", addr)
	}

	buf := make([]byte, size)
	if err := v.disk.DiskRead(buf, addr, size); err != nil {
		return wrapErr(CodeTransient, err, "reading overflow page at addr %d", addr)
	}

	datalen := uint32(len(buf))
	if err := v.validator.VerifyDskChunk(buf, addr, datalen, size); err != nil {
		return wrapErr(CodeStructural, err, "overflow page at addr %d failed chunk validation", addr)
	}

	if verr := v.frags.addFrag(addr, size); verr != nil {
		return verr
	}
	return nil
}

// sweepOverflowCells walks a page's retained disk image (col-var-leaf,
// row-leaf, row-internal) and validates every overflow-pointing cell
// (spec.md §4.1 step 7, §4.2). A page with no retained disk image is not
// an error for any kind — __verify_overflow_cell's WT_ASSERT that a
// missing image only happens on row-internal pages is diagnostic-only;
// in production it simply has nothing to sweep and returns — and the
// sweep here likewise just ends.
func (v *verifyState) sweepOverflowCells(p *Page) *VerifyError {
	if p.Disk == nil {
		return nil
	}
	for _, cell := range p.Cells {
		if !cell.Kind.isOverflow() {
			continue
		}
		if err := v.checkOverflowCell(cell.Addr, cell.Size); err != nil {
			return err
		}
	}
	return nil
}

var _ interfaces.DiskReader = (*nopDiskReader)(nil)

// nopDiskReader is a placeholder satisfying interfaces.DiskReader for
// configurations that never reach an overflow cell (e.g. unit tests of
// the column-store paths). Any real read fails loudly rather than
// silently fabricating data.
type nopDiskReader struct{}

func (nopDiskReader) DiskRead(buf []byte, addr uint32, size uint32) error {
	return newErr(CodeTransient, "no disk reader configured for overflow read at addr %d", addr)
}
