package monitor

import "sync"

// CycleTracker holds the loop's attempt counter and state.
// The loop goroutine is the only writer; observers read copies.
type CycleTracker struct {
	mutex     sync.RWMutex
	state     LoopState
	maxCycles int
}

// NewCycleTracker creates a tracker. maxCycles 0 means run indefinitely.
func NewCycleTracker(maxCycles int) *CycleTracker {
	return &CycleTracker{
		state:     LoopState{Attempt: 1, State: StateIdle},
		maxCycles: maxCycles,
	}
}

// Start marks the loop as running
func (ct *CycleTracker) Start() {
	ct.mutex.Lock()
	defer ct.mutex.Unlock()
	ct.state.Running = true
}

// Transition moves the loop into a new state
func (ct *CycleTracker) Transition(state State) {
	ct.mutex.Lock()
	defer ct.mutex.Unlock()
	ct.state.State = state
	if state == StateStopped {
		ct.state.Running = false
	}
}

// EndCycle counts the finished cycle, whatever its outcome
func (ct *CycleTracker) EndCycle() {
	ct.mutex.Lock()
	defer ct.mutex.Unlock()
	ct.state.Attempt++
}

// ShouldContinue returns false once the maximum number of cycles has run.
func (ct *CycleTracker) ShouldContinue() bool {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	if ct.maxCycles == 0 {
		return true
	}
	return ct.state.Attempt <= ct.maxCycles
}

// Attempt returns the number of the current cycle
func (ct *CycleTracker) Attempt() int {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.state.Attempt
}

// Completed returns how many cycles have finished
func (ct *CycleTracker) Completed() int {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.state.Attempt - 1
}

// Snapshot returns a copy of the current state
func (ct *CycleTracker) Snapshot() LoopState {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.state
}
