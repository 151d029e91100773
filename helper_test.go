// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot_test

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/slot"
)

// execExpr drives a protocol to completion on tb via a Step+Advance loop.
// Retries on iox.ErrWouldBlock (future pending or table exhausted).
// Used by stepping tests to exercise the non-blocking path.
func execExpr[R any](tb *slot.Table, protocol kont.Expr[R]) R {
	result, susp := slot.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = slot.Advance(tb, susp)
		if err != nil {
			continue
		}
	}
	return result
}

// gate is a Future that notifies only when told to, from the test goroutine.
type gate struct {
	cb    slot.Callback
	data  uint64
	polls int
}

func (g *gate) Poll(cb slot.Callback, data uint64) {
	g.cb, g.data = cb, data
	g.polls++
}

func (g *gate) fire(code int8) {
	g.cb(g.data, code)
}
