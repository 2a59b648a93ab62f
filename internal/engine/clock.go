package engine

import "time"

// Clock abstracts wall time so tests can control elapsed-time accounting.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
