package fetcher

import (
	"context"
	"time"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/go-rod/rod"
	"github.com/rs/zerolog"
)

// queryTimeout bounds each structural query against the live page
const queryTimeout = 10 * time.Second

// PageSession is the browser session a scripted fetcher renders into
type PageSession interface {
	Start(ctx context.Context) error
	Page() (*rod.Page, error)
	Close() error
}

// ScriptedFetcher renders the page in a headless browser it owns for the whole run
type ScriptedFetcher struct {
	session PageSession
	cfg     config.BrowserConfig
	logger  zerolog.Logger
}

// NewScriptedFetcher wraps a started session
func NewScriptedFetcher(session PageSession, cfg config.BrowserConfig, logger zerolog.Logger) *ScriptedFetcher {
	return &ScriptedFetcher{
		session: session,
		cfg:     cfg,
		logger:  logger.With().Str("component", "ScriptedFetcher").Logger(),
	}
}

func (f *ScriptedFetcher) Fetch(ctx context.Context, url string) (*models.PageSnapshot, error) {
	mode := models.ModeScripted.String()

	page, err := f.session.Page()
	if err != nil {
		return nil, common.NewFetchError("page", url, mode, err)
	}
	page = page.Context(ctx)

	if err := f.load(page, url); err != nil {
		return nil, err
	}

	if err := sleepContext(ctx, f.cfg.SettleDelay()); err != nil {
		return nil, common.NewFetchError("settle", url, mode, err)
	}

	text, err := renderedText(page, queryTimeout)
	if err != nil {
		return nil, common.NewFetchError("read text", url, mode, err)
	}

	f.logger.Debug().Str("url", url).Int("text_length", len(text)).Msg("Page rendered")

	return &models.PageSnapshot{
		URL:       url,
		Mode:      models.ModeScripted,
		RawText:   text,
		FetchedAt: time.Now(),
		Structure: newRodQuerier(page, queryTimeout),
	}, nil
}

// load navigates and waits for the ready selector within the page-ready timeout
func (f *ScriptedFetcher) load(page *rod.Page, url string) error {
	mode := models.ModeScripted.String()

	p := page.Timeout(f.cfg.PageReadyTimeout())
	defer p.CancelTimeout()

	if err := p.Navigate(url); err != nil {
		return common.NewFetchError("navigate", url, mode, err)
	}
	if _, err := p.Element(f.cfg.ReadySelector); err != nil {
		return common.NewFetchError("wait ready", url, mode, err)
	}
	return nil
}

func (f *ScriptedFetcher) Mode() models.DetectionMode {
	return models.ModeScripted
}

func (f *ScriptedFetcher) Close() error {
	return f.session.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
