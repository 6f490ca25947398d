// Package browser owns the single headless Chrome session used by scripted polling.
package browser

import (
	"context"
	"sync"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog"
)

// Session is one launched browser with one reusable page.
// It is created once per run and closed exactly once by its owner.
type Session struct {
	cfg      config.BrowserConfig
	logger   zerolog.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	mutex    sync.Mutex
	started  bool
	closed   bool
}

// NewSession creates an unstarted session
func NewSession(cfg config.BrowserConfig, logger zerolog.Logger) *Session {
	return &Session{
		cfg:    cfg,
		logger: logger.With().Str("component", "BrowserSession").Logger(),
	}
}

// Start launches Chrome, connects and opens the working page.
// Every failure is a *common.SessionInitError and leaves nothing running.
func (s *Session) Start(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return common.NewSessionInitError("start", common.ErrSessionClosed)
	}
	if s.started {
		return nil
	}

	l := s.newLauncher()
	controlURL, err := l.Context(ctx).Launch()
	if err != nil {
		// Cleanup waits for a process exit that never comes when Launch fails
		l.Kill()
		return common.NewSessionInitError("launch", err)
	}
	s.launcher = l

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		s.cleanupLocked()
		return common.NewSessionInitError("connect", err)
	}
	s.browser = browser

	page, err := s.openPage()
	if err != nil {
		s.cleanupLocked()
		return common.NewSessionInitError("open page", err)
	}
	s.page = page

	s.started = true
	s.logger.Info().
		Bool("stealth", s.cfg.Stealth).
		Int("window_width", s.cfg.WindowWidth).
		Int("window_height", s.cfg.WindowHeight).
		Msg("Headless browser session started")
	return nil
}

// newLauncher applies the configured Chrome flags
func (s *Session) newLauncher() *launcher.Launcher {
	l := launcher.New().Headless(true)

	if s.cfg.ChromePath != "" {
		l = l.Bin(s.cfg.ChromePath)
	}
	if s.cfg.UserDataDir != "" {
		l = l.UserDataDir(s.cfg.UserDataDir)
	}

	l = l.
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-blink-features", "AutomationControlled")

	if s.cfg.DisableImages {
		l = l.Set("blink-settings", "imagesEnabled=false")
	}
	return l
}

// openPage creates the page used for every poll, with stealth evasions if enabled
func (s *Session) openPage() (*rod.Page, error) {
	var page *rod.Page
	var err error
	if s.cfg.Stealth {
		page, err = stealth.Page(s.browser)
	} else {
		page, err = s.browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  s.cfg.WindowWidth,
		Height: s.cfg.WindowHeight,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to set viewport")
	}
	return page, nil
}

// Page returns the session's working page
func (s *Session) Page() (*rod.Page, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed || !s.started {
		return nil, common.ErrSessionClosed
	}
	return s.page, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (s *Session) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	err := s.cleanupLocked()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Browser did not close cleanly")
	} else {
		s.logger.Info().Msg("Headless browser session closed")
	}
	return err
}

func (s *Session) cleanupLocked() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
		s.page = nil
	}
	if s.launcher != nil {
		// The process may still be up when connect or page creation failed
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
	return err
}
