package find

import "time"

// Timer is a pending delayed callback.
type Timer interface {
	// Stop cancels the callback and reports whether it was still pending.
	Stop() bool
}

// Scheduler runs a callback after a delay. Callbacks must be delivered on
// the same control thread that drives the session.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Immediate is a Scheduler that runs callbacks synchronously. Hosts without
// an event loop use it to search on every query change.
type Immediate struct{}

// AfterFunc runs fn before returning.
func (Immediate) AfterFunc(_ time.Duration, fn func()) Timer {
	fn()
	return stopped{}
}

type stopped struct{}

func (stopped) Stop() bool { return false }
