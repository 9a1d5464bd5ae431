/*
Package concurrent provides a simple way to run functions concurrently
and then reap the results, by default limiting the parallelism to the
number of CPUs.
*/
package concurrent

type SimpleRunner interface {
	GoRun(doFunc func() error) error
	Reap() error
}

// State maintains state needed to manage running functions concurrently.
type State struct {
	entered      bool
	err          error
	errorChannel chan error
	pending      uint64
	reaped       bool
	semaphore    chan struct{}
}

var _ SimpleRunner = (*State)(nil)

// NewState returns a new State which will limit the number of concurrent
// functions to numConcurrent (the number of CPUs if zero).
func NewState(numConcurrent uint) *State {
	return newState(numConcurrent)
}

// GoRun will run the provided function in a goroutine. If the function
// returns a non-nil error, this will be returned in a future call to
// GoRun or by Reap. GoRun cannot be called concurrently with GoRun or
// Reap.
func (state *State) GoRun(doFunc func() error) error {
	return state.goRun(doFunc)
}

// Reap returns the first error encountered by the functions and waits for
// remaining functions to complete. The State can no longer be used after
// Reap.
func (state *State) Reap() error {
	if state.entered {
		panic("GoRun is running")
	}
	return state.reap()
}
