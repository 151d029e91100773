// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import "code.hybscloud.com/iox"

// Alloc claims the lowest free slot, starts a new generation for it and
// forces its result to Pending.
//
// Non-blocking: returns (Invalid, iox.ErrWouldBlock) when every slot is
// allocated. The caller decides whether to back off and retry.
func (t *Table) Alloc() (ID, error) {
	for i := range t.cells {
		c := &t.cells[i]
		if c.allocated.Load() != 0 {
			continue
		}
		if !c.allocated.CompareAndSwap(0, 1) {
			continue
		}
		gen, _ := unpack(c.state.Load())
		gen++
		if gen == 0 {
			gen = 1
		}
		c.state.Store(pack(gen, Pending))
		return ID(i), nil
	}
	return Invalid, iox.ErrWouldBlock
}

// Free releases slot id. Its result returns to Pending; the generation is
// kept so that tokens of the released allocation stay stale after reuse.
// Out-of-range and already-free ids are ignored.
func (t *Table) Free(id ID) {
	c := t.at(id)
	if c == nil || c.allocated.Load() == 0 {
		return
	}
	// Result before flag: once the flag drops, Alloc may bump the
	// generation and this write must not land after it.
	c.put(0, Pending)
	c.allocated.Store(0)
}
