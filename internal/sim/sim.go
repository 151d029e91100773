// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sim simulates a native async engine: every poll of a future is
// answered from a fresh goroutine, standing in for the engine's worker
// thread pool.
package sim

import (
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/slot"
)

// Engine owns the simulated worker threads.
type Engine struct {
	delay    time.Duration
	spurious bool
	inline   bool

	wg       sync.WaitGroup
	polls    atomix.Int64
	notifies atomix.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithDelay makes every worker sleep d before notifying.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) { e.delay = d }
}

// WithSpurious makes every worker notify twice with the same code.
func WithSpurious() Option {
	return func(e *Engine) { e.spurious = true }
}

// WithInline makes Poll notify synchronously on the polling goroutine.
func WithInline() Option {
	return func(e *Engine) { e.inline = true }
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start creates a future that needs steps polls to complete: the first
// steps-1 polls report "poll again", every later one reports ready.
// steps < 1 is treated as 1.
func (e *Engine) Start(steps int) *Future {
	f := &Future{e: e}
	f.remaining.Store(int32(max(steps, 1)))
	return f
}

// Wait blocks until every notification scheduled so far has been delivered.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Polls returns the number of polls received by all futures.
func (e *Engine) Polls() int64 {
	return e.polls.Load()
}

// Notifies returns the number of callback invocations made.
func (e *Engine) Notifies() int64 {
	return e.notifies.Load()
}

// Future is a simulated native operation. It implements slot.Future.
type Future struct {
	e         *Engine
	remaining atomix.Int32
	polls     atomix.Int32
}

// Poll schedules one notification of cb(data, code).
func (f *Future) Poll(cb slot.Callback, data uint64) {
	f.polls.Add(1)
	f.e.polls.Add(1)
	if f.e.inline {
		f.notify(cb, data)
		return
	}
	f.e.wg.Add(1)
	go func() {
		defer f.e.wg.Done()
		if f.e.delay > 0 {
			time.Sleep(f.e.delay)
		}
		f.notify(cb, data)
	}()
}

func (f *Future) notify(cb slot.Callback, data uint64) {
	code := int8(1)
	if f.remaining.Add(-1) <= 0 {
		code = 0
	}
	n := 1
	if f.e.spurious {
		n = 2
	}
	for range n {
		cb(data, code)
		f.e.notifies.Add(1)
	}
}

// Polls returns the number of times f has been polled.
func (f *Future) Polls() int {
	return int(f.polls.Load())
}

// Done reports whether f has reported ready at least once.
func (f *Future) Done() bool {
	return f.remaining.Load() <= 0
}
