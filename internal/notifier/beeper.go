package notifier

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/aleister1102/tixwatch/internal/models"
)

const bell = "\a"

// Beeper rings the terminal bell a fixed number of times
type Beeper struct {
	out      io.Writer
	count    int
	interval time.Duration
}

// NewBeeper writes BEL bytes to out, or stderr when out is nil
func NewBeeper(out io.Writer, count int, interval time.Duration) *Beeper {
	if out == nil {
		out = os.Stderr
	}
	return &Beeper{out: out, count: count, interval: interval}
}

func (b *Beeper) Name() string {
	return ChannelBeeper
}

// Notify stops early if ctx is cancelled between beeps
func (b *Beeper) Notify(ctx context.Context, _ models.Alert) error {
	for i := 0; i < b.count; i++ {
		if _, err := io.WriteString(b.out, bell); err != nil {
			return err
		}
		if i == b.count-1 || b.interval <= 0 {
			continue
		}
		timer := time.NewTimer(b.interval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return nil
}
