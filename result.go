// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

// Result is the tri-state code last reported for a slot.
// Values are fixed for binary compatibility with native engines.
type Result int8

const (
	// Pending means no notification has arrived since the slot was
	// allocated or last reset.
	Pending Result = -1
	// Ready means the operation completed and its result can be fetched
	// from the underlying async API.
	Ready Result = 0
	// WakeAgain means progress was made and the future must be polled again.
	WakeAgain Result = 1
)

// String returns the lower-case name of r.
func (r Result) String() string {
	switch r {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case WakeAgain:
		return "wake-again"
	default:
		return "invalid"
	}
}

// resultOf converts a native poll code into a Result.
// 0 is the engine's "ready" code; every other value asks for another poll.
func resultOf(code int8) Result {
	if code == 0 {
		return Ready
	}
	return WakeAgain
}
