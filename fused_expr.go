// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is pre-boxed to avoid a heap escape per constructor.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprAwaitThen waits for f and then continues with next.
// Fuses ExprPerform(NewAwait(f)) + ExprThen.
func ExprAwaitThen[B any](f Future, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = NewAwait(f)
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprAwaitDone waits for f and returns a.
// Fuses ExprPerform(NewAwait(f)) + ExprThen + ExprReturn.
func ExprAwaitDone[A any](f Future, a A) kont.Expr[A] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(a), Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = NewAwait(f)
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[A](ef)
}

func awaitBindUnwind[T, B any](data, data2, _ kont.Erased, _ kont.Erased) (kont.Erased, kont.Frame) {
	complete := data.(func() T)
	next := data2.(func(T) kont.Expr[B])
	result := next(complete())
	return kont.Erased(result.Value), result.Frame
}

// ExprAwaitBind waits for f, fetches its result with complete and passes
// it to next.
// Fuses ExprPerform(NewAwait(f)) + ExprBind.
func ExprAwaitBind[T, B any](f Future, complete func() T, next func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = complete
	bf.Data2 = next
	bf.Unwind = awaitBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = NewAwait(f)
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}
