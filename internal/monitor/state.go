package monitor

import "github.com/aleister1102/tixwatch/internal/models"

// State is the loop's position in its cycle
type State string

const (
	StateIdle     State = "idle"
	StateChecking State = "checking"
	StateFound    State = "found"
	StateNotFound State = "not_found"
	StateStopped  State = "stopped"
)

// StopReason records why a run ended
type StopReason string

const (
	// StopOperator means the operator declined to keep monitoring
	StopOperator StopReason = "operator"
	// StopInterrupted means the run context was cancelled
	StopInterrupted StopReason = "interrupted"
	// StopExhausted means MaxAttempts cycles ran
	StopExhausted StopReason = "exhausted"
)

// LoopState is a point-in-time copy of the loop's progress
type LoopState struct {
	Attempt int
	Running bool
	State   State
}

// RunResult summarizes a finished run
type RunResult struct {
	Attempts   int
	Detections int
	Reason     StopReason
	FinalMode  models.DetectionMode
}
