// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot_test

import (
	"fmt"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/slot"
	"code.hybscloud.com/slot/internal/sim"
)

func TestStepAdvanceAwait(t *testing.T) {
	tb := slot.NewTable(4)
	e := sim.New()
	protocol := slot.ExprAwaitThen(e.Start(3),
		slot.ExprAwaitDone(e.Start(1), "done"),
	)

	if got := execExpr(tb, protocol); got != "done" {
		t.Fatalf("got %q, want %q", got, "done")
	}
	e.Wait()
	if got := tb.InUse(); got != 0 {
		t.Fatalf("InUse got %d, want 0", got)
	}
}

func TestStepInspectOperation(t *testing.T) {
	g := &gate{}
	protocol := slot.ExprAwaitDone(g, 1)

	_, susp := slot.Step[int](protocol)
	if susp == nil {
		t.Fatal("expected suspension for Await")
	}
	op, ok := susp.Op().(slot.Await)
	if !ok {
		t.Fatalf("expected Await, got %T", susp.Op())
	}
	if op.Slot() != slot.Invalid {
		t.Fatalf("unstarted Await holds slot %d", op.Slot())
	}
	susp.Discard()
}

func TestAdvanceWouldBlockUntilReady(t *testing.T) {
	tb := slot.NewTable(4)
	g := &gate{}
	_, susp := slot.Step[string](slot.ExprAwaitDone(g, "ok"))

	// First dispatch allocates and polls, then reports pending.
	_, retry, err := slot.Advance(tb, susp)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
	if retry != susp {
		t.Fatal("suspension should be returned unconsumed on error")
	}
	if g.polls != 1 {
		t.Fatalf("polls got %d, want 1", g.polls)
	}
	held := susp.Op().(slot.Await).Slot()
	if held == slot.Invalid || tb.Load(held) != slot.Pending {
		t.Fatalf("expected pending slot, got %d", held)
	}

	// WakeAgain: slot is rearmed and the future polled again.
	g.fire(1)
	if _, _, err = slot.Advance(tb, susp); !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock after wake, got %v", err)
	}
	if g.polls != 2 {
		t.Fatalf("polls got %d, want 2", g.polls)
	}
	if got := tb.Load(held); got != slot.Pending {
		t.Fatalf("slot not rearmed: %v", got)
	}

	g.fire(0)
	result, next, err := slot.Advance(tb, susp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != nil {
		t.Fatal("expected completion")
	}
	if result != "ok" {
		t.Fatalf("got %q, want %q", result, "ok")
	}
	if got := tb.InUse(); got != 0 {
		t.Fatalf("slot not released: InUse %d", got)
	}
}

func TestAdvanceExhausted(t *testing.T) {
	tb := slot.NewTable(1)
	hold, _ := tb.Alloc()
	g := &gate{}
	_, susp := slot.Step[int](slot.ExprAwaitDone(g, 1))

	if _, _, err := slot.Advance(tb, susp); !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock on exhausted table, got %v", err)
	}
	if g.polls != 0 {
		t.Fatal("future polled without a slot")
	}

	tb.Free(hold)
	if _, _, err := slot.Advance(tb, susp); !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock while pending, got %v", err)
	}
	if g.polls != 1 {
		t.Fatalf("polls got %d, want 1", g.polls)
	}
	g.fire(0)
	if result, next, err := slot.Advance(tb, susp); err != nil || next != nil || result != 1 {
		t.Fatalf("got (%d, %v, %v), want (1, nil, nil)", result, next, err)
	}
}

func TestAdvanceInlineNotification(t *testing.T) {
	// The engine notifies before Poll returns; the first dispatch completes.
	tb := slot.NewTable(2)
	e := sim.New(sim.WithInline())
	_, susp := slot.Step[int](slot.ExprAwaitDone(e.Start(1), 5))

	result, next, err := slot.Advance(tb, susp)
	if err != nil || next != nil || result != 5 {
		t.Fatalf("got (%d, %v, %v), want (5, nil, nil)", result, next, err)
	}
}

func TestAbandonReleasesSlot(t *testing.T) {
	tb := slot.NewTable(1)
	g := &gate{}
	_, susp := slot.Step[int](slot.ExprAwaitDone(g, 1))
	if _, _, err := slot.Advance(tb, susp); !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
	if tb.InUse() != 1 {
		t.Fatal("expected held slot")
	}

	slot.Abandon(tb, susp)
	if got := tb.InUse(); got != 0 {
		t.Fatalf("InUse got %d, want 0", got)
	}

	// A late callback from the abandoned poll must not touch the next owner.
	id, _ := tb.Alloc()
	g.fire(0)
	if got := tb.Load(id); got != slot.Pending {
		t.Fatalf("late callback leaked into reused slot: %v", got)
	}
}

func TestExprAwaitBind(t *testing.T) {
	tb := slot.NewTable(2)
	e := sim.New()
	f := e.Start(2)
	protocol := slot.ExprAwaitBind(f,
		func() int { return f.Polls() },
		func(polls int) kont.Expr[string] {
			return kont.ExprReturn(fmt.Sprintf("polls=%d", polls))
		},
	)

	if got := execExpr(tb, protocol); got != "polls=2" {
		t.Fatalf("got %q, want %q", got, "polls=2")
	}
}

func TestAdvanceUnhandledPanics(t *testing.T) {
	type bogus struct{ kont.Phantom[int] }

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unhandled effect")
		}
		msg, ok := r.(string)
		if !ok || msg != "slot: unhandled effect in Advance" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	_, susp := slot.Step[int](kont.Reify(kont.Perform(bogus{})))
	slot.Advance(slot.NewTable(1), susp)
}
