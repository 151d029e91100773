// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

// std is the process-wide table. Initialized once, never torn down.
var std = NewTable(MaxSlots)

// Default returns the process-wide table of MaxSlots slots.
func Default() *Table {
	return std
}

// Alloc claims a slot from the process-wide table.
// See [Table.Alloc].
func Alloc() (ID, error) {
	return std.Alloc()
}

// Free releases a slot of the process-wide table.
func Free(id ID) {
	std.Free(id)
}

// Load returns the result of a slot of the process-wide table.
func Load(id ID) Result {
	return std.Load(id)
}

// Store writes a result into a slot of the process-wide table.
func Store(id ID, r Result) {
	std.Store(id, r)
}

// Reset rearms a slot of the process-wide table.
func Reset(id ID) {
	std.Reset(id)
}

// TokenOf returns the tagged callback data for a slot of the process-wide table.
func TokenOf(id ID) Token {
	return std.Token(id)
}

// Notify is the completion callback of the process-wide table.
func Notify(data uint64, code int8) bool {
	return std.Notify(data, code)
}

// CallbackFunc returns the completion callback of the process-wide table.
func CallbackFunc() Callback {
	return std.callback
}
