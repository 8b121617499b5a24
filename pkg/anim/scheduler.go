package anim

import "time"

// Scheduler advances running sets from an external clock.
type Scheduler struct {
	sets   []*Set
	redraw func()
}

// NewScheduler creates a scheduler that calls redraw once per tick.
func NewScheduler(redraw func()) *Scheduler {
	return &Scheduler{redraw: redraw}
}

// Run starts s at now and schedules it.
func (sc *Scheduler) Run(s *Set, now time.Time) {
	s.Start(now)
	sc.sets = append(sc.sets, s)
}

// Active reports whether any set is still running.
func (sc *Scheduler) Active() bool { return len(sc.sets) > 0 }

// Tick applies every running set at now, drops completed sets, then redraws
// once. It reports whether any set is still running.
func (sc *Scheduler) Tick(now time.Time) bool {
	if len(sc.sets) == 0 {
		return false
	}
	running := sc.sets[:0]
	for _, s := range sc.sets {
		if !s.Tick(now) {
			running = append(running, s)
		}
	}
	sc.sets = running
	if sc.redraw != nil {
		sc.redraw()
	}
	return len(sc.sets) > 0
}
