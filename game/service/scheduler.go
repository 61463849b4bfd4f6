package service

import (
	"sync"
	"time"
)

// TimerKind names a presentation timer attached to a session.
type TimerKind string

const (
	TimerClearMessage      TimerKind = "clear_message"
	TimerAcknowledgeFinish TimerKind = "acknowledge_finish"
)

// Stopper cancels a pending callback. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// AfterFunc arranges for f to run once d has elapsed.
type AfterFunc func(d time.Duration, f func()) Stopper

func timeAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

type timerKey struct {
	session string
	kind    TimerKind
}

type pendingTimer struct {
	gen  uint64
	stop Stopper
}

// Scheduler owns at most one pending callback per (session, kind). Scheduling
// again replaces the previous callback; a callback whose generation is no
// longer current does nothing when it fires.
type Scheduler struct {
	mu     sync.Mutex
	after  AfterFunc
	timers map[timerKey]*pendingTimer
	gen    uint64
}

// NewScheduler creates a scheduler. A nil after uses time.AfterFunc.
func NewScheduler(after AfterFunc) *Scheduler {
	if after == nil {
		after = timeAfterFunc
	}
	return &Scheduler{
		after:  after,
		timers: make(map[timerKey]*pendingTimer),
	}
}

// Schedule runs fn after d, replacing any pending timer of the same kind.
// fn receives the timer's generation; callbacks that serialise behind another
// lock should Claim it once they hold that lock.
func (s *Scheduler) Schedule(sessionID string, kind TimerKind, d time.Duration, fn func(gen uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := timerKey{session: sessionID, kind: kind}
	if p, ok := s.timers[key]; ok {
		p.stop.Stop()
	}

	s.gen++
	gen := s.gen
	p := &pendingTimer{gen: gen}
	s.timers[key] = p
	p.stop = s.after(d, func() { s.fire(key, gen, fn) })
}

// Cancel drops the pending timer of one kind.
func (s *Scheduler) Cancel(sessionID string, kind TimerKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := timerKey{session: sessionID, kind: kind}
	if p, ok := s.timers[key]; ok {
		p.stop.Stop()
		delete(s.timers, key)
	}
}

// CancelSession drops every pending timer of a session.
func (s *Scheduler) CancelSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, p := range s.timers {
		if key.session == sessionID {
			p.stop.Stop()
			delete(s.timers, key)
		}
	}
}

// Pending reports whether a timer of the given kind is waiting to fire.
func (s *Scheduler) Pending(sessionID string, kind TimerKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[timerKey{session: sessionID, kind: kind}]
	return ok
}

// Stop cancels all pending timers.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, p := range s.timers {
		p.stop.Stop()
		delete(s.timers, key)
	}
}

// Claim drops the pending timer if gen is still its current generation and
// reports whether it was. A false result means the timer was cancelled or
// replaced after it started firing.
func (s *Scheduler) Claim(sessionID string, kind TimerKind, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := timerKey{session: sessionID, kind: kind}
	p, ok := s.timers[key]
	if !ok || p.gen != gen {
		return false
	}
	delete(s.timers, key)
	return true
}

func (s *Scheduler) fire(key timerKey, gen uint64, fn func(uint64)) {
	s.mu.Lock()
	p, ok := s.timers[key]
	current := ok && p.gen == gen
	s.mu.Unlock()
	if !current {
		return
	}

	fn(gen)
	s.Claim(key.session, key.kind, gen)
}
