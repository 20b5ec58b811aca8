package game

import "time"

// completionNotifier schedules the finish callback the first time it observes
// a complete board. It is not safe for concurrent use; Session guards it.
type completionNotifier struct {
	clock Clock
	delay time.Duration
	fired bool
	stop  func() bool
}

// Observe schedules finish after the settle delay if s is complete and
// nothing was scheduled before. It reports whether it scheduled.
func (n *completionNotifier) Observe(s State, finish func()) bool {
	if n.fired || !s.Complete() {
		return false
	}
	n.fired = true
	n.stop = n.clock.AfterFunc(n.delay, finish)
	return true
}

// Stop cancels a scheduled finish, if any
func (n *completionNotifier) Stop() {
	if n.stop != nil {
		n.stop()
	}
}
