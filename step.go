// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"code.hybscloud.com/kont"
)

// Step runs protocol up to its first Await without touching any table.
// A protocol with no Await completes here and the suspension is nil.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance gives the pending Await of susp one chance to make progress on
// t and never blocks, so a host poll loop can call it once per tick.
//
// While t has no free slot or the future has not reported Ready, it
// returns iox.ErrWouldBlock and hands susp back for the next tick. Once
// the future is Ready its slot is freed and the protocol runs on to the
// next Await, returned as the new suspension, or to completion (nil).
func Advance[R any](t *Table, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(slotDispatcher)
	if !ok {
		panic("slot: unhandled effect in Advance")
	}
	v, err := sop.DispatchSlot(t)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}

// Abandon gives up on a suspended protocol. A slot held by the pending
// Await is released without waiting; callbacks arriving later carry a
// stale token and are dropped. The suspension is discarded.
func Abandon[R any](t *Table, susp *kont.Suspension[R]) {
	if a, ok := susp.Op().(Await); ok {
		a.release(t)
	}
	susp.Discard()
}
