// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"code.hybscloud.com/kont"
)

// slotDispatcher is the structural interface for slot effects.
// DispatchSlot is non-blocking: it returns iox.ErrWouldBlock while the
// table is exhausted or the awaited future is still pending.
type slotDispatcher interface {
	DispatchSlot(t *Table) (kont.Resumed, error)
}

// Await is the effect operation for waiting on a native future.
// Perform(NewAwait(f)) resumes once f reports Ready.
//
// An Await carries the slot it is waiting on; create it with NewAwait
// (or the fused constructors) so that retries of the same suspension
// share that state.
type Await struct {
	kont.Phantom[struct{}]
	Future Future
	w      *waiter
}

// NewAwait creates the Await operation for f.
func NewAwait(f Future) Await {
	return Await{Future: f, w: &waiter{id: Invalid}}
}

// Slot returns the slot currently held by a, or Invalid if a has not
// started or has already completed.
func (a Await) Slot() ID {
	if a.w == nil || !a.w.armed {
		return Invalid
	}
	return a.w.id
}

// DispatchSlot handles Await on table t.
// The first dispatch allocates a slot and polls the future. Later
// dispatches re-poll on WakeAgain and complete on Ready, releasing the
// slot. Non-blocking: returns iox.ErrWouldBlock otherwise.
func (a Await) DispatchSlot(t *Table) (kont.Resumed, error) {
	if a.w == nil {
		panic("slot: Await not created by NewAwait")
	}
	if err := a.w.step(t, a.Future); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// pollCount returns how many times the future behind sop has been polled.
func pollCount(sop slotDispatcher) uint64 {
	if a, ok := sop.(Await); ok && a.w != nil {
		return a.w.polls
	}
	return 0
}

func (a Await) release(t *Table) {
	if a.w != nil {
		a.w.release(t)
	}
}
