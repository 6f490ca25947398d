// Package monitor runs the polling loop: fetch, detect, alert, ask, wait.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/aleister1102/tixwatch/internal/fetcher"
	"github.com/aleister1102/tixwatch/internal/interval"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/rs/zerolog"
)

// KeywordDetector decides whether a snapshot shows the keyword
type KeywordDetector interface {
	Detect(snapshot *models.PageSnapshot, keyword string) models.DetectionResult
}

// AlertDispatcher delivers an alert over every channel and reports channel failures
type AlertDispatcher interface {
	Dispatch(ctx context.Context, alert models.Alert) []error
}

// Dependencies are the collaborators a Loop drives
type Dependencies struct {
	Factory    fetcher.Factory
	Detector   KeywordDetector
	Policy     *interval.Policy
	Dispatcher AlertDispatcher
	Decider    Decider
	// Sleeper defaults to TimerSleeper
	Sleeper Sleeper
	// Now defaults to time.Now
	Now func() time.Time
}

// Loop polls one URL until the operator stops it, ctx is cancelled or MaxAttempts runs out.
type Loop struct {
	cfg     config.MonitorConfig
	deps    Dependencies
	tracker *CycleTracker
	logger  zerolog.Logger
}

// NewLoop creates a loop for the monitor section of the config
func NewLoop(cfg config.MonitorConfig, deps Dependencies, logger zerolog.Logger) (*Loop, error) {
	if deps.Factory == nil || deps.Detector == nil || deps.Dispatcher == nil || deps.Decider == nil {
		return nil, common.NewError("monitor loop: factory, detector, dispatcher and decider are required")
	}
	if deps.Policy == nil {
		deps.Policy = interval.NewPolicy()
	}
	if deps.Sleeper == nil {
		deps.Sleeper = TimerSleeper{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Loop{
		cfg:     cfg,
		deps:    deps,
		tracker: NewCycleTracker(cfg.MaxAttempts),
		logger:  logger.With().Str("component", "MonitorLoop").Logger(),
	}, nil
}

// State returns a copy of the loop's current state
func (l *Loop) State() LoopState {
	return l.tracker.Snapshot()
}

// Run drives the loop until it stops. The returned error is non-nil only when
// no fetcher could be opened; every stop after that is reported in RunResult.
func (l *Loop) Run(ctx context.Context) (*RunResult, error) {
	f, err := l.openFetcher(ctx)
	if err != nil {
		l.tracker.Transition(StateStopped)
		return nil, err
	}
	release := l.releaseOnce(f)
	defer release()

	l.logStartup(f.Mode())
	l.tracker.Start()

	result := &RunResult{FinalMode: f.Mode()}
	result.Reason = l.cycle(ctx, f, result)

	l.tracker.Transition(StateStopped)
	result.Attempts = l.tracker.Completed()

	l.logger.Info().
		Str("reason", string(result.Reason)).
		Int("attempts", result.Attempts).
		Int("detections", result.Detections).
		Msg("Monitoring stopped")
	return result, nil
}

func (l *Loop) cycle(ctx context.Context, f fetcher.Fetcher, result *RunResult) StopReason {
	for {
		if ctx.Err() != nil {
			return StopInterrupted
		}

		detection := l.check(ctx, f)
		attempt := l.tracker.Attempt()
		l.tracker.EndCycle()

		if detection.Found {
			result.Detections++
			if !l.handleFound(ctx, attempt, detection) {
				if ctx.Err() != nil {
					return StopInterrupted
				}
				return StopOperator
			}
			if !l.tracker.ShouldContinue() {
				return StopExhausted
			}
			continue
		}

		l.tracker.Transition(StateNotFound)
		if !l.tracker.ShouldContinue() {
			return StopExhausted
		}

		wait := l.deps.Policy.NextWaitDuration(l.cfg.BasePeriodSeconds, l.cfg.MinFactor, l.cfg.MaxFactor)
		l.logger.Info().
			Int("attempt", attempt).
			Dur("wait", wait).
			Msgf("Keyword not found, checking again in %d seconds", int(wait/time.Second))

		if err := l.deps.Sleeper.Sleep(ctx, wait); err != nil {
			return StopInterrupted
		}
	}
}

// check runs one fetch and detect. A fetch failure counts as not found.
func (l *Loop) check(ctx context.Context, f fetcher.Fetcher) models.DetectionResult {
	l.tracker.Transition(StateChecking)
	attempt := l.tracker.Attempt()

	l.logger.Info().
		Int("attempt", attempt).
		Str("time", l.deps.Now().Format(models.AlertTimeFormat)).
		Msgf("Checking attempt %d", attempt)

	snapshot, err := f.Fetch(context.WithoutCancel(ctx), l.cfg.TargetURL)
	if err != nil {
		var fetchErr *common.FetchError
		if errors.As(err, &fetchErr) {
			l.logger.Warn().Err(err).Str("op", fetchErr.Op).Str("cause", common.GetRootCause(err).Error()).Int("attempt", attempt).Msg("Fetch failed, treating as not found")
		} else {
			l.logger.Warn().Err(err).Int("attempt", attempt).Msg("Fetch failed, treating as not found")
		}
		return models.NotFound()
	}

	return l.deps.Detector.Detect(snapshot, l.cfg.Keyword)
}

// handleFound alerts and asks the operator. It returns true to keep monitoring.
func (l *Loop) handleFound(ctx context.Context, attempt int, detection models.DetectionResult) bool {
	l.tracker.Transition(StateFound)

	alert := models.NewAlert(l.deps.Now(), l.cfg.Keyword, l.cfg.TargetURL, attempt, detection.MatchedVia)
	l.logger.Info().
		Int("attempt", attempt).
		Str("matched_via", string(detection.MatchedVia)).
		Str("detail", detection.Detail).
		Msg(alert.Message)

	for _, err := range l.deps.Dispatcher.Dispatch(ctx, alert) {
		l.logger.Warn().Err(err).Msg("Alert delivery failed")
	}

	keepGoing, err := l.deps.Decider.Continue(ctx)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Could not read operator answer, stopping")
		return false
	}
	if !keepGoing {
		l.logger.Info().Msg("Operator chose to stop monitoring")
	}
	return keepGoing
}

// openFetcher falls back to static mode once if the browser session cannot start
func (l *Loop) openFetcher(ctx context.Context) (fetcher.Fetcher, error) {
	mode := l.cfg.Mode()
	f, err := l.deps.Factory.Open(ctx, mode)
	if err == nil {
		return f, nil
	}

	var initErr *common.SessionInitError
	if mode != models.ModeScripted || !errors.As(err, &initErr) {
		return nil, common.WrapErrorf(err, "failed to open %s fetcher", mode)
	}

	l.logger.Warn().Err(err).Msg("Browser session failed to start, falling back to static mode")
	f, err = l.deps.Factory.Open(ctx, models.ModeStatic)
	if err != nil {
		return nil, common.WrapError(err, "failed to open static fallback fetcher")
	}
	return f, nil
}

// releaseOnce closes the fetcher at most once. Close errors and panics are logged, never propagated.
func (l *Loop) releaseOnce(f fetcher.Fetcher) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			defer func() {
				if r := recover(); r != nil {
					l.logger.Error().Str("panic", fmt.Sprint(r)).Msg("Panic while releasing fetcher")
				}
			}()
			if err := f.Close(); err != nil {
				l.logger.Warn().Err(err).Msg("Failed to release fetcher")
			}
		})
	}
}

func (l *Loop) logStartup(mode models.DetectionMode) {
	lo, hi := interval.Bounds(l.cfg.BasePeriodSeconds, l.cfg.MinFactor, l.cfg.MaxFactor)
	method := "static HTTP fetch"
	if mode == models.ModeScripted {
		method = "headless browser rendering"
	}
	l.logger.Info().
		Str("url", l.cfg.TargetURL).
		Str("keyword", l.cfg.Keyword).
		Str("mode", mode.String()).
		Int("base_period_seconds", l.cfg.BasePeriodSeconds).
		Int("min_wait_seconds", lo).
		Int("max_wait_seconds", hi).
		Int("max_attempts", l.cfg.MaxAttempts).
		Msgf("Monitoring started, checking every %d to %d seconds using %s", lo, hi, method)
}
