package notifier

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/aleister1102/tixwatch/internal/models"
)

// CommandRunner executes an external command
type CommandRunner func(name string, args ...string) error

func defaultCommandRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// openCommandForOS picks the desktop command that opens url in the default browser
func openCommandForOS(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// Opener opens the alert URL in the operator's browser
type Opener struct {
	goos   string
	runner CommandRunner
}

// NewOpener uses the current platform and exec
func NewOpener() *Opener {
	return NewOpenerWithRunner(runtime.GOOS, defaultCommandRunner)
}

// NewOpenerWithRunner separates command selection from execution
func NewOpenerWithRunner(goos string, runner CommandRunner) *Opener {
	return &Opener{goos: goos, runner: runner}
}

func (o *Opener) Name() string {
	return ChannelOpener
}

func (o *Opener) Notify(_ context.Context, alert models.Alert) error {
	name, args := openCommandForOS(o.goos, alert.URL)
	return o.runner(name, args...)
}
