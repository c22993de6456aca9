package ledger

import "time"

// Timer is a pending single-shot callback.
type Timer interface {
	// Stop prevents the callback from running if it has not started yet.
	Stop() bool
}

// Clock supplies the current time and deferred callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock backed by time.AfterFunc.
var SystemClock Clock = realClock{}
