// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// RunAll runs Cont-world protocols against table t and returns their
// results in order. See RunAllExpr.
func RunAll[R any](t *Table, protocols ...kont.Eff[R]) []R {
	exprs := make([]kont.Expr[R], len(protocols))
	for i, p := range protocols {
		exprs[i] = kont.Reify(p)
	}
	return RunAllExpr(t, exprs...)
}

// RunAllExpr runs Expr-world protocols against table t and returns their
// results in order. Interleaves all protocols on the calling goroutine,
// backing off (iox.Backoff) only when none of them made progress.
// Protocols that cannot get a slot wait for one to be released by the
// others. Does not spawn goroutines or create channels.
func RunAllExpr[R any](t *Table, protocols ...kont.Expr[R]) []R {
	results := make([]R, len(protocols))
	susps := make([]*kont.Suspension[R], len(protocols))
	pending := 0
	for i, p := range protocols {
		results[i], susps[i] = Step[R](p)
		if susps[i] != nil {
			pending++
		}
	}

	var bo iox.Backoff
	for pending > 0 {
		progress := false
		for i, susp := range susps {
			if susp == nil {
				continue
			}
			result, next, err := Advance(t, susp)
			if err != nil {
				continue
			}
			results[i], susps[i] = result, next
			if next == nil {
				pending--
			}
			progress = true
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return results
}
