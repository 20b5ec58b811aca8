package game

import "time"

// Clock schedules deferred callbacks. AfterFunc returns a stop function with
// time.Timer.Stop semantics.
type Clock interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// SystemClock returns a Clock backed by the runtime timers
func SystemClock() Clock {
	return systemClock{}
}
