// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot_test

import (
	"context"
	"testing"

	"code.hybscloud.com/slot"
)

// ready is a Future that notifies Ready before Poll returns.
var ready = slot.FutureFunc(func(cb slot.Callback, data uint64) {
	cb(data, 0)
})

// BenchmarkAllocFree measures claiming and releasing the first slot.
func BenchmarkAllocFree(b *testing.B) {
	tb := slot.NewTable(slot.MaxSlots)
	b.ReportAllocs()
	for b.Loop() {
		id, _ := tb.Alloc()
		tb.Free(id)
	}
}

// BenchmarkAllocFreeLastSlot measures the full scan of a nearly full table.
func BenchmarkAllocFreeLastSlot(b *testing.B) {
	tb := slot.NewTable(slot.MaxSlots)
	for range slot.MaxSlots - 1 {
		tb.Alloc()
	}
	b.ReportAllocs()
	for b.Loop() {
		id, _ := tb.Alloc()
		tb.Free(id)
	}
}

// BenchmarkNotify measures a generation-checked callback write.
func BenchmarkNotify(b *testing.B) {
	tb := slot.NewTable(slot.MaxSlots)
	id, _ := tb.Alloc()
	data := uint64(tb.Token(id))
	cb := tb.Callback()
	b.ReportAllocs()
	for b.Loop() {
		cb(data, 1)
	}
}

// BenchmarkNotifyParallel measures callbacks racing on distinct slots.
func BenchmarkNotifyParallel(b *testing.B) {
	tb := slot.NewTable(slot.MaxSlots)
	for range slot.MaxSlots {
		tb.Alloc()
	}
	cb := tb.Callback()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		var i uint64
		for pb.Next() {
			cb(uint64(tb.Token(slot.ID(i%slot.MaxSlots))), 0)
			i++
		}
	})
}

// BenchmarkLoad measures the poller-side read.
func BenchmarkLoad(b *testing.B) {
	tb := slot.NewTable(slot.MaxSlots)
	id, _ := tb.Alloc()
	b.ReportAllocs()
	for b.Loop() {
		_ = tb.Load(id)
	}
}

// BenchmarkWaitReady measures Wait on a future that is ready on first poll.
func BenchmarkWaitReady(b *testing.B) {
	tb := slot.NewTable(slot.MaxSlots)
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		slot.Wait(ctx, tb, ready)
	}
}

// BenchmarkExecAwait measures a two-await protocol with inline readiness.
func BenchmarkExecAwait(b *testing.B) {
	tb := slot.NewTable(slot.MaxSlots)
	b.ReportAllocs()
	for b.Loop() {
		slot.Exec(tb, slot.AwaitThen(ready, slot.AwaitDone(ready, 1)))
	}
}
