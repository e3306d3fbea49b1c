// Package perf has small frame-timing helpers.
package perf

// Number is the element type of a RunningAverage.
type Number interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// RunningAverage is the mean of the last N samples.
type RunningAverage[T Number] struct {
	buf  []T
	next int
	n    int
	sum  T
}

// NewRunningAverage returns an average over the last size samples (at least 1).
func NewRunningAverage[T Number](size int) *RunningAverage[T] {
	if size < 1 {
		size = 1
	}
	return &RunningAverage[T]{buf: make([]T, size)}
}

func (a *RunningAverage[T]) Add(v T) {
	if a.n == len(a.buf) {
		a.sum -= a.buf[a.next]
	} else {
		a.n++
	}
	a.buf[a.next] = v
	a.sum += v
	a.next = (a.next + 1) % len(a.buf)
}

// Value returns the current mean, or 0 before the first sample.
func (a *RunningAverage[T]) Value() T {
	if a.n == 0 {
		return 0
	}
	return a.sum / T(a.n)
}

func (a *RunningAverage[T]) Len() int { return a.n }

func (a *RunningAverage[T]) Reset() {
	a.next, a.n = 0, 0
	a.sum = 0
}

// Stopwatch measures elapsed ticks of a monotonic clock.
type Stopwatch struct {
	now   func() uint64
	start uint64
}

// NewStopwatch starts a stopwatch on the given clock.
func NewStopwatch(now func() uint64) *Stopwatch {
	return &Stopwatch{now: now, start: now()}
}

// Elapsed returns the ticks since the last Reset or Lap.
func (s *Stopwatch) Elapsed() uint64 { return s.now() - s.start }

// Lap returns Elapsed and restarts the stopwatch.
func (s *Stopwatch) Lap() uint64 {
	t := s.now()
	d := t - s.start
	s.start = t
	return d
}

func (s *Stopwatch) Reset() { s.start = s.now() }
