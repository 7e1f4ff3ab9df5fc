package btverify

import "github.com/ryogrid/wt-btree-verify/interfaces"

// KeyMonitor carries the lexicographically greatest key seen so far plus
// the address of the page that produced it, enforcing strict ordering
// with one documented exception (spec.md §4.4). It is modeled as a tagged
// variant instead of the source's "max_addr == INVALID_ADDR" sentinel:
// keyEmpty is the state before any leaf has been visited, keySeen carries
// the owned max-key buffer and its page.
type keyMonitorState int

const (
	keyEmpty keyMonitorState = iota
	keySeen
)

// KeyMonitor owns a growable buffer containing the current maximum key
// (spec.md §3's "Ownership and lifetime").
type KeyMonitor struct {
	state   keyMonitorState
	maxKey  []byte
	maxAddr uint32
	cmp     interfaces.Comparator
}

// Comparator is the tree's configured total order over keys (btree_compare),
// re-exported from interfaces for callers that only import the root package.
type Comparator = interfaces.Comparator

func newKeyMonitor(cmp Comparator) *KeyMonitor {
	return &KeyMonitor{state: keyEmpty, cmp: cmp}
}

// UpdateLeaf runs the row-leaf update (spec.md §4.4): on the first leaf
// seen, the page's first key must sort >= the max key (an internal fence
// may legitimately equal the leaf's first key — the copy-fence case); on
// every later leaf the comparison is skipped, since an internal fence
// already wrote a value that may equal the first key. The max key is then
// unconditionally set to this page's last key.
func (m *KeyMonitor) UpdateLeaf(pageAddr uint32, firstKey, lastKey []byte) *VerifyError {
	if m.state == keyEmpty {
		if m.cmp(firstKey, m.maxKey) < 0 {
			return newErr(CodeLogical,
				"the first key on the page at addr %d sorts equal or less than a key appearing on page %d",
				pageAddr, m.maxAddr)
		}
	}
	m.state = keySeen
	m.maxKey = append(m.maxKey[:0], lastKey...)
	m.maxAddr = pageAddr
	return nil
}

// UpdateInternal runs the row-internal update (spec.md §4.4), called only
// for entry_index >= 1 (the 0th fence is magic and is never compared).
// Internal fences cannot equal a previously-seen key: the comparison is
// strict.
func (m *KeyMonitor) UpdateInternal(pageAddr uint32, entryIndex uint32, fence []byte) *VerifyError {
	if m.cmp(fence, m.maxKey) <= 0 {
		return newErr(CodeLogical,
			"the internal key in entry %d on the page at addr %d sorts before the last key appearing on page %d",
			entryIndex, pageAddr, m.maxAddr)
	}
	m.maxKey = append(m.maxKey[:0], fence...)
	m.maxAddr = pageAddr
	return nil
}
