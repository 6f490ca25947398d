package notifier

import (
	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/aleister1102/tixwatch/internal/httpclient"
	"github.com/rs/zerolog"
)

// NewDispatcherFromConfig wires the console channel plus every enabled optional channel
func NewDispatcherFromConfig(cfg config.NotificationConfig, httpCfg config.HTTPConfig, logger zerolog.Logger) (*Dispatcher, error) {
	channels := []Notifier{NewConsoleNotifier(nil)}

	if cfg.BeepCount > 0 {
		channels = append(channels, NewBeeper(nil, cfg.BeepCount, cfg.BeepInterval()))
	}
	if cfg.OpenBrowser {
		channels = append(channels, NewOpener())
	}
	if cfg.DiscordWebhookURL != "" {
		client, err := httpclient.NewHTTPClientBuilder(logger).FromConfig(httpCfg).Build()
		if err != nil {
			return nil, common.WrapError(err, "failed to create discord HTTP client")
		}
		discord, err := NewDiscordNotifier(cfg.DiscordWebhookURL, cfg.MentionRoles, client, logger)
		if err != nil {
			return nil, err
		}
		channels = append(channels, discord)
	}

	return NewDispatcher(logger, channels...), nil
}
