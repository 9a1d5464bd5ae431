/*
Package backoffdelay provides sleepers with increasing delays, for use in
polling loops such as waiting for a partition device node to appear.
*/
package backoffdelay

import (
	"time"
)

type Sleeper interface {
	Sleep()
}

// NewExponential creates a Sleeper with specified minimum and maximum
// delays. If minimumDelay is less than or equal to 0, the default is 1
// second. If maximumDelay is less than or equal to minimumDelay, the
// default is 10 times minimumDelay.
// The Sleep interval will increase by a factor of 2 raised to the power
// of -growthRate (i.e. growthRate 0 doubles the interval each Sleep,
// growthRate 1 grows it by half).
func NewExponential(minimumDelay, maximumDelay time.Duration,
	growthRate uint) Sleeper {
	return newExponential(minimumDelay, maximumDelay, growthRate)
}
