// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host runs the cooperative event loop that cadkit
// documents, observers, and timers live on, and the application
// object that ties the loop to documents and settings.
package host

import (
	"log/slog"
	"os"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/cadkit/cadkit/base/logx"
	"github.com/cadkit/cadkit/events"
	"github.com/cadkit/cadkit/model"
)

var (
	// TraceLoop logs each event loop step at the debug level.
	TraceLoop bool

	// TraceTimers logs timer starts and fires at the debug level.
	TraceTimers bool
)

// Loop is a single-goroutine cooperative event loop. All documents,
// observers, and timers belonging to a Loop are confined to the
// goroutine that steps it; [Loop.Post] and [Loop.Quit] are the only
// methods safe to call from other goroutines.
type Loop struct {

	// funcs is the queue of functions posted from any goroutine.
	funcs events.Queue[func()]

	// timers is the active timer table, loop goroutine only.
	timers []*Timer

	// wake signals [Loop.Run] that new work may be available.
	wake chan struct{}

	// quit stops [Loop.Run].
	quit chan struct{}

	// quitOnce guards closing quit.
	quitOnce sync.Once
}

var _ model.Scheduler = (*Loop)(nil)

// NewLoop returns a new event loop, ready to step or run.
func NewLoop() *Loop {
	lp := &Loop{wake: make(chan struct{}, 1), quit: make(chan struct{})}
	lp.funcs.Init()
	return lp
}

// Post schedules the given function to run on the loop goroutine,
// after the current step if called from the loop itself. It is safe
// to call from any goroutine.
func (lp *Loop) Post(fun func()) {
	if fun == nil {
		return
	}
	lp.funcs.Send(fun)
	lp.notify()
}

// Defer schedules the given function to run on the loop goroutine
// once the current call stack has unwound, using a zero-delay
// one-shot timer. It implements [model.Scheduler] and must be
// called on the loop goroutine; see [Loop.StartTimer] for why the
// function can be invoked more than once.
func (lp *Loop) Defer(fun func()) {
	lp.StartTimer(0, false, fun)
}

// notify wakes a blocked [Loop.Run] without blocking the caller.
func (lp *Loop) notify() {
	select {
	case lp.wake <- struct{}{}:
	default:
	}
}

// Timer is one active loop timer; see [Loop.StartTimer].
type Timer struct {

	// Delay is the time from when the timer was started or last
	// repeated until it is due.
	Delay time.Duration

	// Repeat keeps the timer in the table after it fires,
	// rescheduled Delay into the future.
	Repeat bool

	// Func is called on the loop goroutine when the timer is due.
	Func func()

	// due is when the timer next fires.
	due time.Time

	// stopped marks a timer for removal from the table.
	stopped bool
}

// Stop cancels the timer so it does not fire again. It must be
// called on the loop goroutine.
func (tm *Timer) Stop() {
	tm.stopped = true
}

// StartTimer adds a timer that calls fun on the loop goroutine
// after the given delay, and every delay after that if repeat is
// set. A zero delay with no repeat defers fun until the current
// call stack unwinds. It must be called on the loop goroutine.
//
// One-shot timers are removed from the table only after their
// callback returns, matching how modeling hosts dispatch timers.
// A callback that pumps the loop re-entrantly (directly or through
// anything that steps it) therefore sees its own timer as still
// active and fires it again. Callers that need exactly-once
// semantics must guard the callback with a completion flag; the
// safe package does this for deferred model work.
func (lp *Loop) StartTimer(delay time.Duration, repeat bool, fun func()) *Timer {
	tm := &Timer{Delay: delay, Repeat: repeat, Func: fun, due: time.Now().Add(delay)}
	lp.timers = append(lp.timers, tm)
	if TraceTimers {
		logx.PrintfDebug("host: timer started: delay=%v repeat=%v\n", delay, repeat)
	}
	return tm
}

// Step runs one pass of the loop on the calling goroutine: first
// all functions currently posted, then all timers currently due.
// It returns whether it did any work. Functions posted during the
// pass run in the same pass; timers started during it fire no
// earlier than the next one.
func (lp *Loop) Step() bool {
	now := time.Now() // timers started during the pass are due after this
	did := false
	for {
		fun, ok := lp.funcs.Next()
		if !ok {
			break
		}
		did = true
		lp.invoke(fun)
	}
	for i := 0; i < len(lp.timers); i++ {
		tm := lp.timers[i]
		if tm.stopped || now.Before(tm.due) {
			continue
		}
		did = true
		if tm.Repeat {
			tm.due = now.Add(tm.Delay)
		}
		if TraceTimers {
			logx.PrintfDebug("host: timer fired: delay=%v repeat=%v\n", tm.Delay, tm.Repeat)
		}
		lp.invoke(tm.Func)
		if !tm.Repeat {
			tm.stopped = true // removed only after the callback returns
		}
	}
	lp.timers = slices.DeleteFunc(lp.timers, func(tm *Timer) bool { return tm.stopped })
	if TraceLoop && did {
		logx.PrintfDebug("host: step did work; %d timers active\n", len(lp.timers))
	}
	return did
}

// Settle steps the loop until no work is pending: all posted
// functions have run and no started timer is due. It does not wait
// out timers with remaining delay, and it never returns while a
// zero-delay repeating timer is active.
func (lp *Loop) Settle() {
	for lp.Step() {
	}
}

// invoke calls the given function, recovering and logging any
// panic so one bad callback cannot take down the loop.
func (lp *Loop) invoke(fun func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("host: panic in event loop callback", "panic", r)
			if logx.UserLevel <= slog.LevelDebug {
				os.Stderr.Write(debug.Stack())
			}
		}
	}()
	fun()
}

// Run steps the loop on the calling goroutine until [Loop.Quit],
// sleeping between steps until posted work arrives or the next
// timer is due. Everything owned by the loop is confined to this
// goroutine for the duration.
func (lp *Loop) Run() {
	for {
		select {
		case <-lp.quit:
			return
		default:
		}
		lp.Step()
		lp.wait()
	}
}

// Quit stops [Loop.Run]. It is safe to call from any goroutine and
// more than once.
func (lp *Loop) Quit() {
	lp.quitOnce.Do(func() { close(lp.quit) })
	lp.notify()
}

// wait blocks until posted work arrives, the next timer is due, or
// the loop quits.
func (lp *Loop) wait() {
	if lp.funcs.Len() > 0 {
		return
	}
	due := lp.nextDue()
	if due == 0 {
		return
	}
	if due < 0 { // no timers: wait for posted work
		select {
		case <-lp.wake:
		case <-lp.quit:
		}
		return
	}
	tick := time.NewTimer(due)
	defer tick.Stop()
	select {
	case <-lp.wake:
	case <-tick.C:
	case <-lp.quit:
	}
}

// nextDue returns the time until the soonest active timer is due,
// 0 if one is due now, or -1 if there are no active timers.
func (lp *Loop) nextDue() time.Duration {
	var soonest time.Time
	for _, tm := range lp.timers {
		if tm.stopped {
			continue
		}
		if soonest.IsZero() || tm.due.Before(soonest) {
			soonest = tm.due
		}
	}
	if soonest.IsZero() {
		return -1
	}
	return max(time.Until(soonest), 0)
}
