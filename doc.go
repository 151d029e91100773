// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package slot bridges native asynchronous operations, whose completion
// callbacks fire on arbitrary worker threads, to a consumer that must
// poll from one fixed thread.
//
// A [Table] is a fixed-capacity array of slots. Each slot is an
// allocation flag plus a tri-state [Result] ([Pending], [Ready],
// [WakeAgain]) accessed only through atomics from
// [code.hybscloud.com/atomix]. No locks, no goroutines, no blocking.
//
// # Architecture
//
//   - Allocation: [Table.Alloc] claims the lowest free slot with a CAS scan and
//     returns [code.hybscloud.com/iox.ErrWouldBlock] when the table is exhausted.
//     [Table.Free] is idempotent and bounds-checked.
//   - Notification: [Table.Notify] (also available as a [Callback] value) may be
//     called from any thread, any number of times; writes are last-write-wins.
//   - Consumption: the single owner reads [Table.Load], rearms with [Table.Reset]
//     on [WakeAgain], and frees on [Ready].
//   - Generations: every allocation starts a new 32-bit generation. [Table.Token]
//     packs it with the index so that callbacks arriving after Free and reuse
//     are dropped instead of corrupting the new owner's slot.
//
// The process-wide table of [MaxSlots] slots backs the package-level
// functions [Alloc], [Free], [Load], [Store], [Reset] and [Notify], and the
// C ABI in cmd/libslot.
//
// # Poll Adapters
//
//   - Blocking: [Wait] drives one [Future] with adaptive backoff and honours
//     context cancellation by abandoning the slot.
//   - Effects: [Await] is a [code.hybscloud.com/kont] effect. [Step] and [Advance]
//     (or [StepError]/[AdvanceError]) evaluate a protocol one effect at a time for
//     an external poll loop; [Exec], [ExecError] and [RunAll] wait with backoff.
//   - Loop: [Poller] accepts futures from any goroutine through a lock-free MPSC
//     queue from [code.hybscloud.com/lfq] and drives them from one OS thread.
//
// # Example
//
//	t := slot.NewTable(16)
//	protocol := slot.ExprAwaitDone(future, "done")
//	_, susp := slot.Step[string](protocol)
//	for susp != nil {
//		var err error
//		if _, susp, err = slot.Advance(t, susp); err != nil {
//			continue // retry on ErrWouldBlock
//		}
//	}
package slot
