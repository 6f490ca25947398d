package monitor

import (
	"context"
	"time"
)

// Sleeper suspends the loop between cycles
type Sleeper interface {
	// Sleep returns ctx.Err() if ctx is cancelled before d elapses
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper sleeps on a real timer
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
