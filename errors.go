// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrClosed is returned by Poller.Submit after Close.
var ErrClosed = errors.New("slot: poller closed")

// IsWouldBlock reports whether err is the non-failure backpressure signal
// returned when the table is exhausted, a slot is still pending, or a
// submission queue is full. Delegates to iox.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
