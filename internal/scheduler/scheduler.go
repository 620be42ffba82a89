// Package scheduler drives periodic ticks on a cron cadence. It never touches
// simulation data itself; it only calls a Ticker.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"airport_traffic/internal/logging"
	"airport_traffic/internal/models"
)

const DefaultInterval = 30 * time.Second

type Ticker interface {
	Tick() error
}

// Status is the externally visible refresh state.
type Status struct {
	Enabled   bool      `json:"enabled"`
	Interval  string    `json:"interval"`
	LastRun   time.Time `json:"last_run,omitzero"`
	LastError string    `json:"last_error,omitempty"`
	Runs      int       `json:"runs"`
}

type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	ticker   Ticker
	interval time.Duration
	entry    cron.EntryID
	enabled  bool
	lastRun  time.Time
	lastErr  error
	runs     int
	lg       *logging.Logger
}

// New returns a disabled scheduler; call Enable and Start to run it.
func New(t Ticker, interval time.Duration, lg *logging.Logger) (*Scheduler, error) {
	if t == nil {
		return nil, fmt.Errorf("scheduler needs a ticker")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: refresh interval %s", models.ErrOutOfRange, interval)
	}
	lg = lg.With(slog.String("component", "scheduler"))
	cl := cronLogger{lg}
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)), cron.WithLogger(cl)),
		ticker:   t,
		interval: interval,
		lg:       lg,
	}, nil
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Enable registers the periodic entry. It is a no-op when already enabled.
func (s *Scheduler) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		return nil
	}
	id, err := s.cron.AddFunc("@every "+s.interval.String(), func() { s.run("cron") })
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	s.entry, s.enabled = id, true
	s.lg.Info("auto refresh enabled", slog.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	s.cron.Remove(s.entry)
	s.entry, s.enabled = 0, false
	s.lg.Info("auto refresh disabled")
}

func (s *Scheduler) SetEnabled(on bool) error {
	if on {
		return s.Enable()
	}
	s.Disable()
	return nil
}

func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// TriggerNow runs one tick synchronously whether or not the periodic entry
// is enabled.
func (s *Scheduler) TriggerNow() error {
	return s.run("manual")
}

func (s *Scheduler) run(source string) error {
	err := s.ticker.Tick()

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastErr = err
	s.runs++
	s.mu.Unlock()

	if err != nil {
		s.lg.Warn("refresh failed", slog.String("source", source), slog.Any("error", err))
	} else {
		s.lg.Debug("refresh done", slog.String("source", source))
	}
	return err
}

func (s *Scheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Enabled:  s.enabled,
		Interval: s.interval.String(),
		LastRun:  s.lastRun,
		Runs:     s.runs,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// Start launches the cron goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and waits for a running tick to finish or for
// ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger routes cron's own logging through the service logger.
type cronLogger struct {
	lg *logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.lg.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.lg.Error("cron: "+msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}
