package fetcher

import (
	"context"
	"errors"

	"github.com/aleister1102/tixwatch/internal/browser"
	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/aleister1102/tixwatch/internal/httpclient"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/rs/zerolog"
)

// DefaultFactory opens fetchers from the application config
type DefaultFactory struct {
	cfg        *config.GlobalConfig
	logger     zerolog.Logger
	newSession func() PageSession
}

// NewFactory creates a factory backed by real HTTP clients and Chrome sessions
func NewFactory(cfg *config.GlobalConfig, logger zerolog.Logger) *DefaultFactory {
	return &DefaultFactory{
		cfg:    cfg,
		logger: logger,
		newSession: func() PageSession {
			return browser.NewSession(cfg.BrowserConfig, logger)
		},
	}
}

// WithSessionConstructor replaces how scripted sessions are created
func (f *DefaultFactory) WithSessionConstructor(fn func() PageSession) *DefaultFactory {
	f.newSession = fn
	return f
}

func (f *DefaultFactory) Open(ctx context.Context, mode models.DetectionMode) (Fetcher, error) {
	switch mode {
	case models.ModeStatic:
		client, err := httpclient.NewHTTPClientBuilder(f.logger).
			FromConfig(f.cfg.HTTPConfig).
			Build()
		if err != nil {
			return nil, common.WrapError(err, "failed to create HTTP client")
		}
		return NewStaticFetcher(client, f.cfg.DetectorConfig.StaticStructuralScan, f.logger), nil

	case models.ModeScripted:
		session := f.newSession()
		if err := session.Start(ctx); err != nil {
			_ = session.Close()
			return nil, asSessionInitError(err)
		}
		return NewScriptedFetcher(session, f.cfg.BrowserConfig, f.logger), nil

	default:
		return nil, common.NewError("unknown detection mode %q", string(mode))
	}
}

func asSessionInitError(err error) error {
	var initErr *common.SessionInitError
	if errors.As(err, &initErr) {
		return err
	}
	return common.NewSessionInitError("start", err)
}
