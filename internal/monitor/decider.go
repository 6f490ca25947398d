package monitor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ContinuePrompt is shown after every detection
const ContinuePrompt = "Keyword found! Keep monitoring? (y/n): "

// Decider asks whether to keep monitoring after a detection
type Decider interface {
	Continue(ctx context.Context) (bool, error)
}

// DeciderFunc adapts a function to Decider
type DeciderFunc func(ctx context.Context) (bool, error)

func (f DeciderFunc) Continue(ctx context.Context) (bool, error) {
	return f(ctx)
}

// ConsoleDecider prompts the operator on a terminal
type ConsoleDecider struct {
	reader *bufio.Reader
	out    io.Writer
	mutex  sync.Mutex
}

// NewConsoleDecider reads answers from in and prompts on out. Nil means stdin and stdout.
func NewConsoleDecider(in io.Reader, out io.Writer) *ConsoleDecider {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleDecider{reader: bufio.NewReader(in), out: out}
}

type answer struct {
	line string
	err  error
}

// Continue returns true only for "y" or "yes". The read runs off the calling
// goroutine so a cancelled ctx returns immediately.
func (d *ConsoleDecider) Continue(ctx context.Context) (bool, error) {
	if _, err := fmt.Fprint(d.out, ContinuePrompt); err != nil {
		return false, err
	}

	answers := make(chan answer, 1)
	go func() {
		d.mutex.Lock()
		defer d.mutex.Unlock()
		line, err := d.reader.ReadString('\n')
		answers <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-answers:
		if a.err != nil && !(errors.Is(a.err, io.EOF) && a.line != "") {
			return false, a.err
		}
		return isAffirmative(a.line), nil
	}
}

func isAffirmative(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
