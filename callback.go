// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

// Callback is the completion entry point handed to a native engine.
// data is the value registered with the poll request (a slot index or a
// Token); code is the engine's poll code, 0 for ready and anything else
// for "poll again". Safe to call from any goroutine or thread, any number
// of times.
//
// The code is not stored verbatim: every non-zero code, including -1,
// is recorded as WakeAgain, so a callback can never put a slot back into
// Pending. Only Reset, Alloc and Free produce Pending.
type Callback func(data uint64, code int8)

// Notify records a poll code for the slot addressed by data.
// Returns false when the write was dropped: the slot is out of range, or
// data carries a generation that no longer matches the slot.
//
// Writes to the same slot are last-write-wins.
func (t *Table) Notify(data uint64, code int8) bool {
	k := Token(data)
	c := t.at(k.ID())
	if c == nil {
		return false
	}
	return c.put(k.Generation(), resultOf(code))
}

func (t *Table) notify(data uint64, code int8) {
	t.Notify(data, code)
}

// Callback returns the stable callback bound to t.
// The same function value is returned on every call.
func (t *Table) Callback() Callback {
	return t.callback
}
