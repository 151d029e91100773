// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"context"

	"code.hybscloud.com/iox"
)

// Wait drives f to completion on the calling goroutine, polling t with
// adaptive backoff (iox.Backoff). It waits for a free slot when t is
// exhausted, re-polls f on every WakeAgain, and releases the slot once f
// is Ready. The backoff restarts whenever f is polled again.
//
// If ctx is done first, the slot is released without waiting and
// ctx.Err() is returned. The underlying operation is not cancelled.
func Wait(ctx context.Context, t *Table, f Future) error {
	var w waiter
	var bo iox.Backoff
	for {
		if err := ctx.Err(); err != nil {
			w.release(t)
			return err
		}
		polls := w.polls
		if err := w.step(t, f); err == nil {
			return nil
		}
		if w.polls != polls {
			bo.Reset()
			continue
		}
		bo.Wait()
	}
}
