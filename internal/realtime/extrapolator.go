package realtime

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/debtwatch/internal/metrics"
	"github.com/rickgao/debtwatch/internal/model"
)

// SecondsPerYear is the Julian year used to spread the annual increase.
const SecondsPerYear = 365.25 * 24 * 60 * 60

// Config holds extrapolator configuration.
type Config struct {
	Interval time.Duration // Emission cadence (default: 1s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: time.Second,
	}
}

// Estimate is one emitted projection.
type Estimate struct {
	At            time.Time `json:"at"`
	Value         float64   `json:"value"`           // Estimated debt in euros
	Increase      float64   `json:"increase"`        // Euros added since the anchor
	PerSecondRate float64   `json:"per_second_rate"` // Euros per second
}

// Handle identifies a subscription.
type Handle string

// Handler receives estimates. Handlers run on the ticker goroutine and must
// not block; they may call Unsubscribe but not Start or Stop.
type Handler func(Estimate)

// Option configures an Extrapolator.
type Option func(*Extrapolator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Extrapolator) {
		e.now = now
	}
}

// Extrapolator produces a continuously increasing debt estimate between refreshes.
type Extrapolator struct {
	cfg    Config
	now    func() time.Time
	logger *slog.Logger

	// Lifecycle, guarded by mu
	mu     sync.Mutex
	state  model.ExtrapolationState
	cancel context.CancelFunc
	done   chan struct{}

	subMu sync.RWMutex
	subs  map[Handle]Handler
}

// New creates an idle Extrapolator.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Extrapolator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	e := &Extrapolator{
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
		subs:   make(map[Handle]Handler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start anchors a new projection on the last two points of debt (millions of
// euros) and begins emitting. Any running instance is cancelled first.
//
// Start returns false and leaves the current state untouched when debt has
// fewer than two points or either of its last two values is zero or NaN.
func (e *Extrapolator) Start(debt model.TimeSeries) bool {
	latest, okLatest := debt.Last()
	previous, okPrevious := debt.Previous()
	if !okLatest || !okPrevious || !usable(latest.Value) || !usable(previous.Value) {
		e.logger.Debug("not enough debt data for real-time estimate", "points", debt.Len())
		return false
	}

	annualIncrease := (latest.Value - previous.Value) * 1_000_000

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	e.state = model.ExtrapolationState{
		AnchorTimestamp: e.now(),
		BaseValue:       latest.Value * 1_000_000,
		PerSecondRate:   annualIncrease / SecondsPerYear,
		Active:          true,
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})

	go e.run(ctx, e.state, e.done)

	e.logger.Info("real-time estimate started",
		"anchor_year", latest.Year,
		"base_value", e.state.BaseValue,
		"per_second_rate", e.state.PerSecondRate,
		"interval", e.cfg.Interval,
	)
	return true
}

// Stop cancels emission and clears the anchor. Stop is idempotent.
func (e *Extrapolator) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopLocked() {
		e.logger.Info("real-time estimate stopped")
	}
}

// stopLocked cancels the ticker goroutine and waits for it. Must be called with mu held.
func (e *Extrapolator) stopLocked() bool {
	if e.cancel == nil {
		return false
	}
	e.cancel()
	<-e.done

	e.cancel = nil
	e.done = nil
	e.state = model.ExtrapolationState{}
	return true
}

// State returns the current anchor.
func (e *Extrapolator) State() model.ExtrapolationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Running reports whether a ticker is active.
func (e *Extrapolator) Running() bool {
	return e.State().Active
}

// EstimateAt projects the current anchor to t. The second return is false
// when the extrapolator is idle.
func (e *Extrapolator) EstimateAt(t time.Time) (Estimate, bool) {
	state := e.State()
	if !state.Active {
		return Estimate{}, false
	}
	return project(state, t), true
}

// Subscribe registers a handler for emitted estimates.
func (e *Extrapolator) Subscribe(h Handler) Handle {
	handle := Handle(uuid.NewString())

	e.subMu.Lock()
	e.subs[handle] = h
	n := len(e.subs)
	e.subMu.Unlock()

	metrics.SetSubscribers(n)
	return handle
}

// Unsubscribe removes a handler. It returns false for an unknown handle.
func (e *Extrapolator) Unsubscribe(handle Handle) bool {
	e.subMu.Lock()
	_, ok := e.subs[handle]
	delete(e.subs, handle)
	n := len(e.subs)
	e.subMu.Unlock()

	metrics.SetSubscribers(n)
	return ok
}

// run is the emission loop.
func (e *Extrapolator) run(ctx context.Context, state model.ExtrapolationState, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.emit(project(state, e.now()))
		}
	}
}

func (e *Extrapolator) emit(est Estimate) {
	e.subMu.RLock()
	handlers := make([]Handler, 0, len(e.subs))
	for _, h := range e.subs {
		handlers = append(handlers, h)
	}
	e.subMu.RUnlock()

	metrics.SetEstimate(est.Value)
	for _, h := range handlers {
		h(est)
	}
}

// project computes base + elapsed * rate.
func project(state model.ExtrapolationState, t time.Time) Estimate {
	elapsed := t.Sub(state.AnchorTimestamp).Seconds()
	increase := elapsed * state.PerSecondRate
	return Estimate{
		At:            t,
		Value:         state.BaseValue + increase,
		Increase:      increase,
		PerSecondRate: state.PerSecondRate,
	}
}

func usable(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}
