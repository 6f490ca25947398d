// Package notifier announces a keyword detection over every configured channel.
package notifier

import (
	"context"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/rs/zerolog"
)

// Notifier is one alert channel
type Notifier interface {
	Name() string
	Notify(ctx context.Context, alert models.Alert) error
}

// Dispatcher fans an alert out to its channels in order. A failing channel
// never stops the others.
type Dispatcher struct {
	channels []Notifier
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given channels
func NewDispatcher(logger zerolog.Logger, channels ...Notifier) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		logger:   logger.With().Str("module", "Dispatcher").Logger(),
	}
}

// Channels returns the names of the configured channels
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Dispatch delivers the alert and returns every channel failure as *common.NotifyError.
// Callers log the failures; they are never fatal.
func (d *Dispatcher) Dispatch(ctx context.Context, alert models.Alert) []error {
	var errs []error
	for _, ch := range d.channels {
		if err := ch.Notify(ctx, alert); err != nil {
			notifyErr := common.NewNotifyError(ch.Name(), err)
			d.logger.Warn().Err(notifyErr).Str("channel", ch.Name()).Msg("Alert channel failed")
			errs = append(errs, notifyErr)
		}
	}
	return errs
}
