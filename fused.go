// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"code.hybscloud.com/kont"
)

// AwaitThen waits for f and then continues with next.
// Fuses Perform(NewAwait(f)) + Then.
func AwaitThen[B any](f Future, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(NewAwait(f)), next)
}

// AwaitDone waits for f and returns a.
// Fuses Perform(NewAwait(f)) + Then + Pure.
func AwaitDone[A any](f Future, a A) kont.Eff[A] {
	return kont.Then(kont.Perform(NewAwait(f)), kont.Pure(a))
}

// AwaitBind waits for f, fetches its result with complete and passes it
// to next. complete runs on the polling goroutine after f is Ready.
func AwaitBind[T, B any](f Future, complete func() T, next func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(NewAwait(f)), func(struct{}) kont.Eff[B] {
		return next(complete())
	})
}
