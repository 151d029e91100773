// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"code.hybscloud.com/kont"
)

// errorDispatcher is the structural interface of kont's Error effect
// operations for error type E.
type errorDispatcher[E any] interface {
	DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
}

// dispatchError runs an Error operation against ctx. thrown reports
// whether the operation was a Throw; v is meaningful only when it was not.
func dispatchError[E any](op errorDispatcher[E], ctx *kont.ErrorContext[E]) (v kont.Resumed, thrown bool) {
	v, _ = op.DispatchError(ctx)
	return v, ctx.HasErr
}

// awaitErrorHandler waits out Await operations on its table and lets a
// Throw abort the protocol with Left.
type awaitErrorHandler[E, A any] struct {
	t      *Table
	errCtx *kont.ErrorContext[E]
}

func (h awaitErrorHandler[E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	switch op := op.(type) {
	case slotDispatcher:
		return dispatchWait(h.t, op), true
	case errorDispatcher[E]:
		v, thrown := dispatchError(op, h.errCtx)
		if thrown {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("slot: unhandled effect in awaitErrorHandler")
}

func right[E, R any](r R) kont.Either[E, R] {
	return kont.Right[E, R](r)
}

// ExecError is Exec for protocols that may Throw an E.
// The result is Right with the protocol's value, or Left with the thrown
// error. Every Await that completed before the Throw has already released
// its slot.
func ExecError[E, R any](t *Table, protocol kont.Eff[R]) kont.Either[E, R] {
	var errCtx kont.ErrorContext[E]
	return kont.Handle(
		kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, right[E, R]),
		awaitErrorHandler[E, R]{t: t, errCtx: &errCtx},
	)
}

// ExecErrorExpr is ExecExpr for protocols that may Throw an E.
func ExecErrorExpr[E, R any](t *Table, protocol kont.Expr[R]) kont.Either[E, R] {
	var errCtx kont.ErrorContext[E]
	return kont.HandleExpr(
		kont.ExprMap(protocol, right[E, R]),
		awaitErrorHandler[E, R]{t: t, errCtx: &errCtx},
	)
}

// StepError starts a protocol that may Throw an E and runs it up to its
// first Await or Throw. Drive the returned suspension with AdvanceError.
func StepError[E, R any](protocol kont.Expr[R]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	return kont.StepExpr(kont.ExprMap(protocol, right[E, R]))
}

// AdvanceError is Advance for protocols started with StepError.
// A pending Await returns iox.ErrWouldBlock with the suspension intact.
// A Throw ends the protocol at once: the suspension is discarded and the
// result is Left.
func AdvanceError[E, R any](t *Table, susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]], error) {
	var v kont.Resumed
	switch op := susp.Op().(type) {
	case slotDispatcher:
		var err error
		if v, err = op.DispatchSlot(t); err != nil {
			var zero kont.Either[E, R]
			return zero, susp, err
		}
	case errorDispatcher[E]:
		var ctx kont.ErrorContext[E]
		var thrown bool
		if v, thrown = dispatchError(op, &ctx); thrown {
			susp.Discard()
			return kont.Left[E, R](ctx.Err), nil, nil
		}
	default:
		panic("slot: unhandled effect in AdvanceError")
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
