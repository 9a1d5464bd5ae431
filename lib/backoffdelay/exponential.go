package backoffdelay

import (
	"time"
)

type exponential struct {
	interval  time.Duration
	limit     time.Duration
	shift     uint
	sleepFunc func(time.Duration)
}

func newExponential(minimumDelay, maximumDelay time.Duration,
	growthRate uint) *exponential {
	if minimumDelay <= 0 {
		minimumDelay = time.Second
	}
	if maximumDelay <= minimumDelay {
		maximumDelay = 10 * minimumDelay
	}
	return &exponential{
		interval:  minimumDelay,
		limit:     maximumDelay,
		shift:     growthRate,
		sleepFunc: time.Sleep,
	}
}

func (e *exponential) Sleep() {
	e.sleepFunc(e.interval)
	if next := e.interval + e.interval>>e.shift; next < e.limit {
		e.interval = next
	} else {
		e.interval = e.limit
	}
}
