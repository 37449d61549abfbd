// Package schedule wraps delayed callbacks so owners can cancel every pending
// callback at teardown.
package schedule

import (
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. It also provides the wall clock so tests can
// drive both from one fake.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

type realScheduler struct{}

// Real returns a Scheduler backed by the time package.
func Real() Scheduler { return realScheduler{} }

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
func (realScheduler) Now() time.Time                            { return time.Now() }

// Group tracks timers created through it. Stop cancels all pending timers and
// refuses new ones.
type Group struct {
	sched Scheduler

	mu      sync.Mutex
	pending map[*entry]struct{}
	stopped bool
}

type entry struct {
	timer Timer
}

func NewGroup(s Scheduler) *Group {
	if s == nil {
		s = Real()
	}
	return &Group{sched: s, pending: make(map[*entry]struct{})}
}

// AfterFunc schedules f. It returns false when the group is already stopped.
func (g *Group) AfterFunc(d time.Duration, f func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return false
	}

	e := &entry{}
	g.pending[e] = struct{}{}
	e.timer = g.sched.AfterFunc(d, func() {
		g.mu.Lock()
		_, live := g.pending[e]
		delete(g.pending, e)
		g.mu.Unlock()
		if live {
			f()
		}
	})
	return true
}

// Pending reports how many callbacks have not fired yet.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *Group) Now() time.Time { return g.sched.Now() }

// Stop cancels every pending callback. It is safe to call more than once.
func (g *Group) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = true
	for e := range g.pending {
		e.timer.Stop()
		delete(g.pending, e)
	}
}
