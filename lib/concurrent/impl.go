package concurrent

import (
	"runtime"
)

func newState(numConcurrent uint) *State {
	if numConcurrent < 1 {
		numConcurrent = uint(runtime.NumCPU())
	}
	return &State{
		errorChannel: make(chan error, numConcurrent),
		semaphore:    make(chan struct{}, numConcurrent),
	}
}

func (state *State) goRun(doFunc func() error) error {
	if state.reaped {
		panic("State has been reaped")
	}
	state.entered = true
	defer func() { state.entered = false }()
	// Collect available results so that errors are reported early.
	for {
		select {
		case err := <-state.errorChannel:
			state.pending--
			state.saveError(err)
			continue
		default:
		}
		break
	}
	state.semaphore <- struct{}{} // Wait for a free slot.
	state.pending++
	go func() {
		err := doFunc()
		<-state.semaphore
		state.errorChannel <- err
	}()
	return state.err
}

func (state *State) reap() error {
	if state.reaped {
		panic("State has been reaped")
	}
	state.reaped = true
	for ; state.pending > 0; state.pending-- {
		state.saveError(<-state.errorChannel)
	}
	return state.err
}

func (state *State) saveError(err error) {
	if err != nil && state.err == nil {
		state.err = err
	}
}
