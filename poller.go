// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import (
	"context"
	"runtime"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"go.uber.org/zap"
)

// request is one submission. w is touched only by the Run goroutine.
type request struct {
	future Future
	done   func(error)
	serial Serial
	w      waiter
}

// Poller is a single-threaded consumer of a Table.
//
// Any goroutine may Submit futures. Run drives them from one goroutine
// locked to its OS thread, and every done callback runs there, so hosts
// whose callbacks are only safe on a fixed thread can use Run as that
// thread's loop.
//
// Intake is a bounded lock-free MPSC queue from lfq; Submit returns
// iox.ErrWouldBlock when it is full. Futures that cannot get a slot wait
// in submission order until one is released.
type Poller struct {
	table    *Table
	queue    lfq.Queue[*request]
	log      *zap.Logger
	closed   atomix.Uint32
	entering atomix.Int64

	// Run goroutine only.
	waiting   []*request
	active    []*request
	exhausted bool
	drained   bool
}

// NewPoller creates a poller over table t.
func NewPoller(t *Table, opts ...Option) *Poller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Poller{
		table: t,
		queue: lfq.NewMPSC[*request](o.queueCapacity),
		log:   o.logger,
	}
}

// Submit hands f to the poll loop. done, if non-nil, is called exactly
// once on the Run goroutine: with nil when f is Ready, or with the
// context's error if Run is cancelled first.
//
// Non-blocking: returns iox.ErrWouldBlock when the submission queue is
// full, and ErrClosed after Close.
func (p *Poller) Submit(f Future, done func(error)) (Serial, error) {
	p.entering.Add(1)
	defer p.entering.Add(-1)
	if p.closed.Load() != 0 {
		return 0, ErrClosed
	}
	r := &request{future: f, done: done, serial: nextSerial(), w: waiter{id: Invalid}}
	if err := p.queue.Enqueue(&r); err != nil {
		return 0, err
	}
	return r.serial, nil
}

// Close stops accepting submissions. Run returns nil once every accepted
// future has completed. Safe to call more than once and from any goroutine.
func (p *Poller) Close() {
	p.closed.Store(1)
}

// Run polls submitted futures until the poller is closed and drained, or
// ctx is done. On cancellation, the poller is closed and every accepted
// future still in flight is abandoned: its slot is released and done
// receives ctx.Err(). Later submissions return ErrClosed.
//
// Run must not be called concurrently with itself.
func (p *Poller) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p.log.Debug("poller started", zap.Int("capacity", p.table.Cap()))
	var bo iox.Backoff
	for {
		if err := ctx.Err(); err != nil {
			p.abandon(err)
			return err
		}
		progress := p.intake()
		if p.tick() {
			progress = true
		}
		if p.idle() && p.finished() {
			p.log.Debug("poller stopped")
			return nil
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
}

// intake moves queued submissions to the waiting list.
func (p *Poller) intake() bool {
	progress := false
	for {
		r, err := p.queue.Dequeue()
		if err != nil {
			return progress
		}
		p.waiting = append(p.waiting, r)
		progress = true
	}
}

// tick starts waiting futures while slots are available and advances
// every active one by at most one step.
func (p *Poller) tick() bool {
	progress := false

	n := 0
	for _, r := range p.waiting {
		err := r.w.step(p.table, r.future)
		if err != nil && !r.w.armed {
			break
		}
		n++
		progress = true
		if err == nil {
			p.complete(r, Invalid)
			continue
		}
		p.active = append(p.active, r)
	}
	if n > 0 {
		m := copy(p.waiting, p.waiting[n:])
		clear(p.waiting[m:])
		p.waiting = p.waiting[:m]
	}
	switch {
	case len(p.waiting) > 0 && !p.exhausted:
		p.exhausted = true
		p.log.Debug("slot table exhausted, deferring submissions",
			zap.Int("pending", len(p.waiting)),
			zap.Int("active", len(p.active)))
	case len(p.waiting) == 0:
		p.exhausted = false
	}

	kept := p.active[:0]
	for _, r := range p.active {
		id := r.w.id
		if res := p.table.Load(id); res != Ready && res != WakeAgain {
			kept = append(kept, r)
			continue
		}
		progress = true
		if r.w.step(p.table, r.future) == nil {
			p.complete(r, id)
			continue
		}
		kept = append(kept, r)
	}
	clear(p.active[len(kept):])
	p.active = kept
	return progress
}

// complete reports r as ready. id is the slot r held, or Invalid if it
// completed on the dispatch that allocated it.
func (p *Poller) complete(r *request, id ID) {
	if ce := p.log.Check(zap.DebugLevel, "future ready"); ce != nil {
		ce.Write(zap.Uint64("serial", r.serial), zap.Int32("slot", int32(id)))
	}
	if r.done != nil {
		r.done(nil)
	}
}

func (p *Poller) idle() bool {
	return len(p.waiting) == 0 && len(p.active) == 0
}

// finished reports whether the poller is closed and no submission can
// still arrive. A Submit that passed the closed check before Close is
// counted in entering until its enqueue is visible.
func (p *Poller) finished() bool {
	if p.closed.Load() == 0 || p.entering.Load() != 0 {
		return false
	}
	p.drain()
	return !p.intake()
}

// drain tells the queue that no producer will enqueue again.
func (p *Poller) drain() {
	if p.drained {
		return
	}
	if d, ok := p.queue.(lfq.Drainer); ok {
		d.Drain()
	}
	p.drained = true
}

// abandon closes p, releases every in-flight slot and fails every
// accepted request, including submissions still entering the queue.
func (p *Poller) abandon(err error) {
	p.closed.Store(1)
	for p.entering.Load() != 0 {
		runtime.Gosched()
	}
	p.drain()
	p.intake()
	if !p.idle() {
		p.log.Warn("abandoning futures",
			zap.Int("pending", len(p.waiting)),
			zap.Int("active", len(p.active)),
			zap.Error(err))
	}
	for _, r := range p.active {
		r.w.release(p.table)
		if r.done != nil {
			r.done(err)
		}
	}
	for _, r := range p.waiting {
		if r.done != nil {
			r.done(err)
		}
	}
	clear(p.active)
	clear(p.waiting)
	p.active = p.active[:0]
	p.waiting = p.waiting[:0]
}
