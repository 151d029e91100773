// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import "code.hybscloud.com/iox"

// Future is a native asynchronous operation driven by polling.
//
// Poll asks the engine to advance the operation and to report back by
// calling cb(data, code) from any thread once it has made progress:
// code 0 when the result is available, non-zero when it wants to be
// polled again. The result itself is fetched through the engine's own API
// after the slot reports Ready. A Future cannot be cancelled; it can only
// be abandoned.
type Future interface {
	Poll(cb Callback, data uint64)
}

// FutureFunc adapts an ordinary function to Future.
type FutureFunc func(cb Callback, data uint64)

// Poll calls f(cb, data).
func (f FutureFunc) Poll(cb Callback, data uint64) {
	f(cb, data)
}

// waiter tracks one future through its slot.
// Owned by a single polling goroutine.
type waiter struct {
	id    ID
	armed bool
	polls uint64
}

// step advances w once without blocking.
// Returns nil when the future is ready and its slot has been released.
// Returns iox.ErrWouldBlock while the table is exhausted (w.armed is
// false) or the future is still pending (w.armed is true).
func (w *waiter) step(t *Table, f Future) error {
	if !w.armed {
		id, err := t.Alloc()
		if err != nil {
			return err
		}
		w.id, w.armed = id, true
		w.polls++
		f.Poll(t.callback, uint64(t.Token(id)))
	}
	switch t.Load(w.id) {
	case Ready:
		w.release(t)
		return nil
	case WakeAgain:
		// Rearm before polling so a notification racing the poll is kept.
		t.Reset(w.id)
		w.polls++
		f.Poll(t.callback, uint64(t.Token(w.id)))
	}
	return iox.ErrWouldBlock
}

// release frees w's slot, if any, without waiting for a terminal state.
// Late callbacks for the abandoned allocation carry a stale token.
func (w *waiter) release(t *Table) {
	if !w.armed {
		return
	}
	t.Free(w.id)
	w.id, w.armed = Invalid, false
}
