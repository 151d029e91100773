// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// awaitHandler resolves every Await of a protocol against one table,
// spinning down with iox.Backoff until the future is Ready.
type awaitHandler[R any] struct {
	t *Table
}

func (h awaitHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(slotDispatcher)
	if !ok {
		panic("slot: unhandled effect in awaitHandler")
	}
	return dispatchWait(h.t, sop), true
}

// dispatchWait retries sop until its future is Ready. The backoff
// restarts whenever a dispatch polled the future again.
func dispatchWait(t *Table, sop slotDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		polls := pollCount(sop)
		v, err := sop.DispatchSlot(t)
		if err == nil {
			return v
		}
		if pollCount(sop) != polls {
			bo.Reset()
			continue
		}
		bo.Wait()
	}
}

// Exec runs protocol to completion on the calling goroutine, holding at
// most one slot of t at a time. It blocks while t is exhausted or the
// awaited future is pending.
func Exec[R any](t *Table, protocol kont.Eff[R]) R {
	return kont.Handle(protocol, awaitHandler[R]{t: t})
}

// ExecExpr is Exec for Expr-world protocols.
func ExecExpr[R any](t *Table, protocol kont.Expr[R]) R {
	return kont.HandleExpr(protocol, awaitHandler[R]{t: t})
}
