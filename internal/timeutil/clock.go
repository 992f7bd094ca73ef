package timeutil

import "time"

// Clock supplies the current time. Window-bound computations take a Clock
// instead of reading the wall clock so they stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall-clock backed Clock.
func System() Clock {
	return systemClock{}
}

// Fixed returns a Clock frozen at the given instant.
func Fixed(t time.Time) Clock {
	return fixedClock{t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }
