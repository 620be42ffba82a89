// Package sim owns the live simulation state. The Engine is the only writer:
// every transition is computed by the pure packages on a copy and committed
// under the write lock, and readers get deep copies.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/brunoga/deep"
	"github.com/google/uuid"

	"airport_traffic/internal/airports"
	"airport_traffic/internal/flights"
	"airport_traffic/internal/logging"
	"airport_traffic/internal/models"
	"airport_traffic/internal/notify"
	"airport_traffic/internal/projection"
	"airport_traffic/internal/rand"
	"airport_traffic/internal/stats"
	"airport_traffic/internal/traffic"
)

const (
	maxEvents      = 20
	publishTimeout = 2 * time.Second
)

// Options configures a new Engine. A zero TrafficEnd means the current time.
type Options struct {
	Seed         int64
	FlightCount  int
	TrafficStart time.Time
	TrafficEnd   time.Time
	Profile      traffic.Profile
	Growth       projection.Growth
	Generate     flights.GenerateRules
	TickRules    flights.TickRules
	Now          func() time.Time
}

func DefaultOptions() Options {
	return Options{
		FlightCount:  200,
		TrafficStart: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Profile:      traffic.DefaultProfile(),
		Growth:       projection.DefaultGrowth(),
		Generate:     flights.DefaultGenerateRules(),
		TickRules:    flights.DefaultTickRules(),
		Now:          time.Now,
	}
}

type tickFunc func(*rand.Rand, []models.Flight, flights.TickRules) ([]models.Flight, flights.TickResult, error)

// Engine owns the flight board, the traffic history and the random source.
type Engine struct {
	mu       sync.RWMutex
	rng      *rand.Rand
	reg      *airports.Registry
	opts     Options
	flights  []models.Flight
	traffic  []models.TrafficRecord
	activity []models.CarrierActivity
	tick     int
	last     flights.TickResult
	lastAt   time.Time
	events   []string

	step     tickFunc
	lg       *logging.Logger
	notifier notify.Notifier

	// Tick events are published in commit order: a tick waits until the
	// previous committed tick has been published.
	pubMu     sync.Mutex
	pubCond   *sync.Cond
	published int
}

// New seeds the engine and builds the initial board, the traffic history and
// the carrier activity table.
func New(reg *airports.Registry, opts Options, lg *logging.Logger, n notify.Notifier) (*Engine, error) {
	if reg == nil {
		reg = airports.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if n == nil {
		n = notify.Nop{}
	}
	e := &Engine{
		rng:      rand.New(opts.Seed),
		reg:      reg,
		opts:     opts,
		step:     flights.Tick,
		lg:       lg.With(slog.String("component", "engine")),
		notifier: n,
	}
	e.pubCond = sync.NewCond(&e.pubMu)

	end := opts.TrafficEnd
	if end.IsZero() {
		end = opts.Now()
	}
	hist, err := traffic.Build(e.rng, reg.List(), opts.TrafficStart, end, opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("building traffic history: %w", err)
	}
	e.traffic = hist
	e.activity = stats.GenerateActivity(e.rng, reg.Carriers())

	if err := e.RegenerateFlights(opts.FlightCount); err != nil {
		return nil, err
	}
	e.lg.Info("engine ready",
		slog.Int("airports", reg.Len()),
		slog.Int("traffic_records", len(hist)),
		slog.Int("flights", opts.FlightCount))
	return e, nil
}

func (e *Engine) Registry() *airports.Registry {
	return e.reg
}

func (e *Engine) Airports() []models.Airport {
	return e.reg.List()
}

func (e *Engine) Airport(code string) (models.Airport, error) {
	return e.reg.Lookup(code)
}

// RegenerateFlights replaces the board with n freshly generated flights.
// The current board is kept when generation fails.
func (e *Engine) RegenerateFlights(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	list, err := flights.GenerateInitial(e.rng, n, e.reg, e.opts.Now(), e.opts.Generate)
	if err != nil {
		return err
	}
	e.flights = list
	e.last = flights.TickResult{}
	e.addEventLocked(fmt.Sprintf("board regenerated with %d flights", n))
	e.lg.Info("flights regenerated", slog.Int("count", n))
	return nil
}

// Advance runs one tick. The new board is computed from a copy, validated
// and only then committed; on any failure, including a panic, the previous
// board stays in place and the error wraps models.ErrTickAborted.
func (e *Engine) Advance(ctx context.Context) (flights.TickResult, error) {
	e.mu.Lock()
	next, res, err := e.computeLocked()
	if err != nil {
		attempted := e.tick + 1
		e.mu.Unlock()
		e.lg.Warn("tick aborted", slog.Int("tick", attempted), slog.Any("error", err))
		return flights.TickResult{}, err
	}
	e.flights = next
	e.tick++
	e.last = res
	e.lastAt = e.opts.Now().UTC()
	e.addEventLocked(fmt.Sprintf("tick %d: %d resampled, %d changed", e.tick, res.Resampled, res.Changed))
	ev := notify.TickEvent{
		Tick:           e.tick,
		Resampled:      res.Resampled,
		Changed:        res.Changed,
		Flights:        len(next),
		PunctualityPct: stats.OnTimeRate(next),
		CommittedAt:    e.lastAt,
	}
	e.mu.Unlock()

	e.lg.Debug("tick committed", slog.Int("tick", ev.Tick), slog.Int("resampled", res.Resampled), slog.Int("changed", res.Changed))

	e.publish(ctx, ev)
	return res, nil
}

// publish hands ev to the notifier once every earlier tick has been handed
// over. Committed ticks are numbered without gaps, so ev.Tick-1 is the tick
// that has to go first.
func (e *Engine) publish(ctx context.Context, ev notify.TickEvent) {
	e.pubMu.Lock()
	defer e.pubMu.Unlock()
	for e.published != ev.Tick-1 {
		e.pubCond.Wait()
	}
	defer func() {
		e.published = ev.Tick
		e.pubCond.Broadcast()
	}()

	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := e.notifier.Publish(pctx, ev); err != nil {
		e.lg.Warn("tick notification failed", slog.Int("tick", ev.Tick), slog.Any("error", err))
	}
}

// Tick runs one tick in the background context.
func (e *Engine) Tick() error {
	_, err := e.Advance(context.Background())
	return err
}

func (e *Engine) computeLocked() (next []models.Flight, res flights.TickResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, err = nil, fmt.Errorf("%w: panic: %v", models.ErrTickAborted, r)
		}
	}()

	next, res, err = e.step(e.rng, slices.Clone(e.flights), e.opts.TickRules)
	if err != nil {
		return nil, res, fmt.Errorf("%w: %w", models.ErrTickAborted, err)
	}
	if len(next) != len(e.flights) {
		return nil, res, fmt.Errorf("%w: flight count changed from %d to %d", models.ErrTickAborted, len(e.flights), len(next))
	}
	if err := flights.ValidateAll(next); err != nil {
		return nil, res, fmt.Errorf("%w: %w", models.ErrTickAborted, err)
	}
	return next, res, nil
}

// Flights returns a copy of the board in generation order.
func (e *Engine) Flights() []models.Flight {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return deep.MustCopy(e.flights)
}

func (e *Engine) Traffic() []models.TrafficRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return deep.MustCopy(e.traffic)
}

func (e *Engine) CarrierActivity() []models.CarrierActivity {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return deep.MustCopy(e.activity)
}

// Projections extrapolates the current history horizon months ahead.
func (e *Engine) Projections(horizon int) ([]models.ProjectionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return projection.Project(e.rng, e.traffic, e.reg.List(), horizon, e.opts.Growth)
}

// Snapshot returns a consistent deep copy of the state. Projections are
// included when horizon is positive.
func (e *Engine) Snapshot(horizon int) (models.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := models.Snapshot{
		ID:       uuid.New().String(),
		Tick:     e.tick,
		TakenAt:  e.opts.Now().UTC(),
		Flights:  deep.MustCopy(e.flights),
		Traffic:  deep.MustCopy(e.traffic),
		Carriers: deep.MustCopy(e.activity),
	}
	if horizon > 0 {
		proj, err := projection.Project(e.rng, e.traffic, e.reg.List(), horizon, e.opts.Growth)
		if err != nil {
			return models.Snapshot{}, err
		}
		snap.Projections = proj
	}
	return snap, nil
}

// Status reports the tick counter and the last committed tick.
type Status struct {
	Tick    int                `json:"tick"`
	Last    flights.TickResult `json:"last"`
	LastAt  time.Time          `json:"last_at,omitzero"`
	Flights int                `json:"flights"`
	Recent  []string           `json:"recent_events"`
}

func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Status{
		Tick:    e.tick,
		Last:    e.last,
		LastAt:  e.lastAt,
		Flights: len(e.flights),
		Recent:  append([]string(nil), e.events...),
	}
}

func (e *Engine) addEventLocked(msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	e.events = append(e.events, msg)
	if len(e.events) > maxEvents {
		e.events = e.events[len(e.events)-maxEvents:]
	}
}
