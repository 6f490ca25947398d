package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aleister1102/tixwatch/internal/models"
)

// ConsoleNotifier prints the alert message for the operator
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier writes to out, or stdout when out is nil
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out}
}

func (c *ConsoleNotifier) Name() string {
	return ChannelConsole
}

func (c *ConsoleNotifier) Notify(_ context.Context, alert models.Alert) error {
	_, err := fmt.Fprintln(c.out, alert.Message)
	return err
}
