package engine

import "time"

// Clock supplies the ledger's notion of current time. Every window check
// (20h/48h check-in gaps, pool end) goes through it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
