package btverify

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// FragMap is the bit-vector over the file body's allocation fragments,
// one bit per fragment, recording which fragments have been charged
// during a verification pass (spec.md §2.1, §4.3). It is owned by the
// verifier for the duration of one pass and requires no locking.
type FragMap struct {
	bits      *bitset.BitSet
	total     uint32
	allocSize uint32
}

// newFragMap allocates a frag-map sized to total fragments of allocSize
// bytes each. total must already have been checked against INT_MAX by
// the caller (spec.md §3's "total_frags must fit in a signed 32-bit
// integer" precondition).
func newFragMap(total uint32, allocSize uint32) *FragMap {
	return &FragMap{bits: bitset.New(uint(total)), total: total, allocSize: allocSize}
}

// addFrag charges the k = size/allocSize fragments starting at addr,
// failing with CodeStructural if any of them was already charged
// (spec.md §4.3). size == 0 is a defensive no-op.
func (f *FragMap) addFrag(addr uint32, size uint32) *VerifyError {
	k := size / f.allocSize
	if k == 0 {
		return nil
	}
	for i := uint32(0); i < k; i++ {
		if f.bits.Test(uint(addr + i)) {
			return newErr(CodeStructural, "file fragment at addr %d already verified", addr)
		}
	}
	for i := uint32(0); i < k; i++ {
		f.bits.Set(uint(addr + i))
	}
	return nil
}

// coverageRun is one maximal run of consecutive fragments never charged.
type coverageRun struct {
	start, end uint32 // inclusive
}

// audit sweeps the frag-map for zero bits, collapsing maximal runs of
// unset bits into diagnostics reported through rep, and returns the first
// run found (nil if the map is fully covered). It destructively sets
// every zero bit as it visits it, since the map is discarded right after
// (spec.md §4.3).
func (f *FragMap) audit(rep Reporter) *coverageRun {
	var first *coverageRun
	var runStart int = -1
	var runEnd int = -1

	flush := func() {
		if runStart == -1 {
			return
		}
		if runStart == runEnd {
			rep.Errorf("file fragment %d was never verified", runStart)
		} else {
			rep.Errorf("file fragments %d-%d were never verified", runStart, runEnd)
		}
		if first == nil {
			first = &coverageRun{start: uint32(runStart), end: uint32(runEnd)}
		}
		runStart, runEnd = -1, -1
	}

	for i := uint32(0); i < f.total; i++ {
		if f.bits.Test(uint(i)) {
			flush()
			continue
		}
		f.bits.Set(uint(i))
		if runStart == -1 {
			runStart = int(i)
		}
		runEnd = int(i)
	}
	flush()
	return first
}

// fragsForSize computes total_frags = body_size / allocsize and validates
// it fits the bitset's 32-bit index space (spec.md §3).
func fragsForSize(bodySize int64, allocSize uint32) (uint32, *VerifyError) {
	if bodySize <= 0 || allocSize == 0 || bodySize%int64(allocSize) != 0 {
		return 0, newErr(CodePrecondition, "the file size is not valid for the allocation size")
	}
	frags := bodySize / int64(allocSize)
	if frags > math.MaxInt32 {
		return 0, newErr(CodePrecondition, "file is too large to verify")
	}
	return uint32(frags), nil
}
