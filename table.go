// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"math"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// MaxSlots is the capacity of the process-wide table: the upper bound on
// concurrently bridged operations.
const MaxSlots = 256

// ID is the index of a slot in a Table.
type ID int32

// Invalid is the sentinel ID returned when no slot is available.
const Invalid ID = -1

// Token is the 64-bit user data handed to a native engine alongside the
// callback. The low 32 bits hold the slot index, the high 32 bits the
// allocation generation. A token whose generation is 0 addresses the slot
// without a generation check.
type Token uint64

// ID returns the slot index carried by k.
func (k Token) ID() ID {
	return ID(int32(uint32(k)))
}

// Generation returns the allocation generation carried by k.
func (k Token) Generation() uint32 {
	return uint32(k >> 32)
}

func makeToken(id ID, gen uint32) Token {
	return Token(uint64(gen)<<32 | uint64(uint32(id)))
}

// cell is one slot. state packs the generation (high 32 bits) and the
// Result (low 32 bits) into a single word so that a generation check and
// a result write happen in one atomic step.
// Padded so that independent slots never share a cache line.
type cell struct {
	state     atomix.Uint64
	allocated atomix.Uint32
	_         cpu.CacheLinePad
}

func pack(gen uint32, r Result) uint64 {
	return uint64(gen)<<32 | uint64(uint32(int32(r)))
}

func unpack(v uint64) (uint32, Result) {
	return uint32(v >> 32), Result(int8(int32(uint32(v))))
}

// put writes r if the cell's generation equals gen, or unconditionally
// when gen is 0. The generation bits are never modified.
// Retries only when another writer changed the word between load and CAS.
func (c *cell) put(gen uint32, r Result) bool {
	for {
		old := c.state.Load()
		g, _ := unpack(old)
		if gen != 0 && g != gen {
			return false
		}
		if c.state.CompareAndSwap(old, pack(g, r)) {
			return true
		}
	}
}

// Table is a fixed-capacity set of slots. Every operation is non-blocking
// and safe for concurrent use; the protocol still assumes that a single
// owner calls Load, Reset and Free for a given slot at a time.
//
// A Table never grows. Its zero value has no slots; use NewTable.
type Table struct {
	cells    []cell
	callback Callback
}

// NewTable creates a table with n slots, all free and Pending.
// Panics if n < 1 or n does not fit in an ID.
func NewTable(n int) *Table {
	if n < 1 || n > math.MaxInt32 {
		panic("slot: table capacity out of range")
	}
	t := &Table{cells: make([]cell, n)}
	for i := range t.cells {
		t.cells[i].state.Store(pack(0, Pending))
	}
	t.callback = t.notify
	return t
}

// Cap returns the number of slots in t.
func (t *Table) Cap() int {
	return len(t.cells)
}

// InUse returns the number of allocated slots.
// The count is a snapshot and may be stale by the time it is returned.
func (t *Table) InUse() int {
	n := 0
	for i := range t.cells {
		if t.cells[i].allocated.Load() != 0 {
			n++
		}
	}
	return n
}

// at returns the cell for id, or nil if id is out of range.
func (t *Table) at(id ID) *cell {
	if id < 0 || int(id) >= len(t.cells) {
		return nil
	}
	return &t.cells[id]
}

// Load returns the last result written to slot id.
// Returns Pending if id is out of range.
func (t *Table) Load(id ID) Result {
	c := t.at(id)
	if c == nil {
		return Pending
	}
	_, r := unpack(c.state.Load())
	return r
}

// Store writes r into slot id without a generation check.
// Out-of-range ids are ignored: writers may legitimately race with Free.
func (t *Table) Store(id ID, r Result) {
	if c := t.at(id); c != nil {
		c.put(0, r)
	}
}

// Reset rearms slot id by writing Pending, without deallocating it.
func (t *Table) Reset(id ID) {
	t.Store(id, Pending)
}

// Token returns the generation-tagged callback data for slot id.
// For an out-of-range id the returned token addresses no slot.
func (t *Table) Token(id ID) Token {
	c := t.at(id)
	if c == nil {
		return Token(uint64(uint32(id)))
	}
	gen, _ := unpack(c.state.Load())
	return makeToken(id, gen)
}
