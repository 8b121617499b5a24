package anim

import "time"

// Set runs animations concurrently on one clock origin.
type Set struct {
	anims   []Animation
	start   time.Time
	started bool
	done    bool
	onDone  []func()
}

// NewSet creates an empty set.
func NewSet() *Set { return &Set{} }

// Add appends animations to the set.
func (s *Set) Add(a ...Animation) { s.anims = append(s.anims, a...) }

// Animations returns the members of the set.
func (s *Set) Animations() []Animation { return s.anims }

// Len returns the number of members.
func (s *Set) Len() int { return len(s.anims) }

// OnDone registers a completion callback.
func (s *Set) OnDone(fn func()) { s.onDone = append(s.onDone, fn) }

// Count returns how many members are of kind k.
func (s *Set) Count(k Kind) int {
	n := 0
	for _, a := range s.anims {
		if a.Kind() == k {
			n++
		}
	}
	return n
}

// Duration returns the longest member duration.
func (s *Set) Duration() time.Duration {
	var d time.Duration
	for _, a := range s.anims {
		d = max(d, a.Timing().Duration)
	}
	return d
}

// Start sets the clock origin of every member.
func (s *Set) Start(now time.Time) {
	s.start = now
	s.started = true
}

// Done reports whether the completion callbacks have run.
func (s *Set) Done() bool { return s.done }

// Tick applies every member at time now and reports whether the set is
// complete. Completion callbacks run once, on the first tick at which every
// member reached progress 1.
func (s *Set) Tick(now time.Time) bool {
	if s.done {
		return true
	}
	if !s.started {
		s.Start(now)
	}
	return s.Seek(now.Sub(s.start))
}

// Seek applies every member at elapsed time since start.
func (s *Set) Seek(elapsed time.Duration) bool {
	if s.done {
		return true
	}
	complete := true
	for _, a := range s.anims {
		p := progress(elapsed, a.Timing().Duration)
		if p < 1 {
			complete = false
		}
		a.Apply(a.Timing().Easing.At(p))
	}
	if complete {
		s.done = true
		for _, fn := range s.onDone {
			fn()
		}
	}
	return complete
}

// Finish jumps every member to its end state and completes the set.
func (s *Set) Finish() {
	s.Seek(s.Duration())
}

func progress(elapsed, d time.Duration) float64 {
	if d <= 0 || elapsed >= d {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(d)
}
