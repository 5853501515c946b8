package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/debtwatch/internal/api"
	"github.com/rickgao/debtwatch/internal/derive"
	"github.com/rickgao/debtwatch/internal/fallback"
	"github.com/rickgao/debtwatch/internal/metrics"
	"github.com/rickgao/debtwatch/internal/model"
	"github.com/rickgao/debtwatch/internal/realtime"
	"github.com/rickgao/debtwatch/internal/window"
)

var tracer = otel.Tracer("debtwatch.pipeline")

var (
	// ErrBatchFailure marks a cycle in which at least one fetch failed outright.
	ErrBatchFailure = errors.New("batch failure")

	// ErrNotLoaded is returned by accessors before the first cycle completes.
	ErrNotLoaded = errors.New("dataset not loaded")

	// ErrUnknownBatchPolicy is returned by ParseBatchPolicy.
	ErrUnknownBatchPolicy = errors.New("unknown batch policy")
)

// Fetcher retrieves one live dataset.
//
// Failures that should trigger a per-dataset fallback are reported as an
// empty series with a nil error. A non-nil error is an outright failure and
// is subject to the batch policy.
type Fetcher interface {
	Fetch(ctx context.Context, req api.Request) (model.TimeSeries, error)
}

// BatchPolicy decides what an outright fetch failure does to the cycle.
type BatchPolicy string

const (
	// PolicyAllOrNothing discards every result of the cycle and publishes
	// the full static snapshot.
	PolicyAllOrNothing BatchPolicy = "all_or_nothing"

	// PolicyPerDataset treats a failed fetch like an empty one and keeps
	// the datasets that succeeded.
	PolicyPerDataset BatchPolicy = "per_dataset"
)

// ParseBatchPolicy parses a policy name. The empty string selects PolicyAllOrNothing.
func ParseBatchPolicy(s string) (BatchPolicy, error) {
	switch BatchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyAllOrNothing:
		return PolicyAllOrNothing, nil
	case PolicyPerDataset:
		return PolicyPerDataset, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBatchPolicy, s)
}

// Config holds pipeline configuration.
type Config struct {
	Geo                 string        // Eurostat geo code (default: FR)
	CountryCode         string        // Code looked up in the EU comparison table (default: FR)
	RefreshInterval     time.Duration // Reload interval; zero disables the loop (default: 6h)
	BatchPolicy         BatchPolicy   // Outright failure handling (default: all_or_nothing)
	AssumedInterestRate float64       // Rate for the interest-charge estimate (default: 0.028)
	DefaultPopulation   float64       // Per-capita divisor when population is missing (default: 68M)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Geo:                 "FR",
		CountryCode:         "FR",
		RefreshInterval:     6 * time.Hour,
		BatchPolicy:         PolicyAllOrNothing,
		AssumedInterestRate: derive.DefaultAssumedInterestRate,
		DefaultPopulation:   derive.DefaultPopulation,
	}
}

// LoadReport summarizes one load cycle.
type LoadReport struct {
	CycleID      string            `json:"cycle_id"`
	StartedAt    time.Time         `json:"started_at"`
	Duration     time.Duration     `json:"duration"`
	Live         []model.DatasetID `json:"live"`          // Datasets served from the remote API
	FallbackUsed []model.DatasetID `json:"fallback_used"` // Live datasets resolved from fallback
	Degraded     bool              `json:"degraded"`
	Warning      string            `json:"warning,omitempty"`
	Failure      error             `json:"-"` // Wraps ErrBatchFailure when a fetch failed outright
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithExtrapolator attaches the real-time extrapolator restarted after each cycle.
func WithExtrapolator(e *realtime.Extrapolator) Option {
	return func(p *Pipeline) {
		p.extrapolator = e
	}
}

// WithResolver replaces the default fallback resolver.
func WithResolver(r *fallback.Resolver) Option {
	return func(p *Pipeline) {
		p.resolver = r
	}
}

// Pipeline owns the canonical dataset.
type Pipeline struct {
	cfg          Config
	fetcher      Fetcher
	resolver     *fallback.Resolver
	extrapolator *realtime.Extrapolator
	logger       *slog.Logger
	now          func() time.Time

	current atomic.Pointer[model.CanonicalDataset]
	report  atomic.Pointer[LoadReport]

	// loadMu serializes load cycles.
	loadMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Pipeline. Zero config fields take their defaults.
func New(cfg Config, fetcher Fetcher, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = withDefaults(cfg)

	p := &Pipeline{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.resolver == nil {
		p.resolver = fallback.NewResolver(logger)
	}
	if p.extrapolator == nil {
		p.extrapolator = realtime.New(realtime.DefaultConfig(), logger, realtime.WithClock(p.now))
	}
	return p
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Geo == "" {
		cfg.Geo = def.Geo
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = cfg.Geo
	}
	if cfg.BatchPolicy == "" {
		cfg.BatchPolicy = def.BatchPolicy
	}
	if cfg.AssumedInterestRate <= 0 {
		cfg.AssumedInterestRate = def.AssumedInterestRate
	}
	if cfg.DefaultPopulation <= 0 {
		cfg.DefaultPopulation = def.DefaultPopulation
	}
	return cfg
}

// Load runs one load-and-fallback cycle and publishes its dataset.
//
// An outright fetch failure never fails the cycle; it is reported through
// LoadReport.Failure and LoadReport.Warning. The returned error is non-nil
// only when ctx is cancelled, in which case nothing is published.
func (p *Pipeline) Load(ctx context.Context) (LoadReport, error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	report := LoadReport{
		CycleID:   uuid.NewString(),
		StartedAt: p.now(),
	}

	ctx, span := tracer.Start(ctx, "pipeline.Load",
		trace.WithAttributes(
			attribute.String("cycle_id", report.CycleID),
			attribute.String("batch_policy", string(p.cfg.BatchPolicy)),
		),
	)
	defer span.End()

	results, err := p.fetchLive(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		span.RecordError(ctxErr)
		span.SetStatus(codes.Error, "context canceled")
		return report, fmt.Errorf("load cycle %s: %w", report.CycleID, ctxErr)
	}

	var dataset model.CanonicalDataset
	switch {
	case err != nil && p.cfg.BatchPolicy == PolicyAllOrNothing:
		report.Failure = err
		report.Degraded = true
		report.FallbackUsed = append([]model.DatasetID(nil), model.LiveDatasets...)
		report.Warning = "live data unavailable, showing reference data"
		dataset = fallback.StaticSnapshot()
		metrics.RecordBatchFailure()
		p.logger.Warn("batch failure, publishing static snapshot",
			"cycle_id", report.CycleID,
			"error", err,
		)
	default:
		if err != nil {
			report.Failure = err
			report.Warning = "some live datasets unavailable, showing reference data for them"
			p.logger.Warn("batch failure, falling back per dataset",
				"cycle_id", report.CycleID,
				"error", err,
			)
		}
		dataset = p.assemble(results, &report)
	}

	dataset.PerCapita = derive.PerCapita(dataset.Debt, dataset.Population, p.cfg.DefaultPopulation)
	dataset.LoadedAt = p.now()
	dataset.Degraded = report.Degraded
	dataset.FallbackUsed = report.FallbackUsed

	p.current.Store(&dataset)
	report.Duration = p.now().Sub(report.StartedAt)
	p.report.Store(&report)

	p.extrapolator.Start(dataset.Debt)
	metrics.RecordLoad(report.Duration, dataset.LoadedAt, dataset.Degraded)

	span.SetAttributes(
		attribute.Int("debt_points", dataset.Debt.Len()),
		attribute.Int("fallback_count", len(report.FallbackUsed)),
		attribute.Bool("degraded", report.Degraded),
	)
	if report.Failure != nil {
		span.RecordError(report.Failure)
		span.SetStatus(codes.Error, report.Failure.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	p.logger.Info("load cycle complete",
		"cycle_id", report.CycleID,
		"live", report.Live,
		"fallback", report.FallbackUsed,
		"degraded", report.Degraded,
		"duration", report.Duration,
	)

	return report, nil
}

// fetchResult is the outcome of one live fetch.
type fetchResult struct {
	id     model.DatasetID
	series model.TimeSeries
	err    error
}

// fetchLive issues every live request concurrently and waits for all of
// them to settle. The returned error wraps ErrBatchFailure and every
// outright failure.
func (p *Pipeline) fetchLive(ctx context.Context) ([]fetchResult, error) {
	requests := api.LiveRequests(p.cfg.Geo)
	results := make([]fetchResult, len(requests))

	var g errgroup.Group
	for i, req := range requests {
		i, req := i, req
		results[i].id = req.ID
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("fetch %s panicked: %v", req.ID, r)
					results[i].err = err
				}
			}()

			series, err := p.fetcher.Fetch(ctx, req)
			results[i].series = series
			results[i].err = err
			return err
		})
	}

	if g.Wait() == nil {
		return results, nil
	}

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.id, r.err))
		}
	}
	return results, fmt.Errorf("%w: %w", ErrBatchFailure, errors.Join(errs...))
}

// assemble merges live results with the fallback cascade. Failed and empty
// live datasets resolve against the dataset being built in this cycle, never
// a previously published one.
func (p *Pipeline) assemble(results []fetchResult, report *LoadReport) model.CanonicalDataset {
	var out model.CanonicalDataset
	var failed []model.DatasetID
	for _, r := range results {
		if r.err != nil || r.series.Len() == 0 {
			failed = append(failed, r.id)
			continue
		}
		report.Live = append(report.Live, r.id)
		setSeries(&out, r.id, r.series)
	}

	for _, id := range failed {
		setSeries(&out, id, p.resolver.Fallback(id, out).Series)
		report.FallbackUsed = append(report.FallbackUsed, id)
	}

	out.EUComparison = p.resolver.Fallback(model.DatasetEUComparison, out).Table
	out.Indicators = p.resolver.Fallback(model.DatasetEconomicIndicators, out).Indicators

	return out
}

func setSeries(d *model.CanonicalDataset, id model.DatasetID, series model.TimeSeries) {
	switch id {
	case model.DatasetDebt:
		d.Debt = series
	case model.DatasetGDPRatio:
		d.GDPRatio = series
	case model.DatasetPopulation:
		d.Population = series
	}
}

// CanonicalDataset returns a copy of the published dataset.
func (p *Pipeline) CanonicalDataset() (model.CanonicalDataset, bool) {
	cur := p.current.Load()
	if cur == nil {
		return model.CanonicalDataset{}, false
	}
	return cur.Clone(), true
}

// LastReport returns the report of the most recent cycle.
func (p *Pipeline) LastReport() (LoadReport, bool) {
	r := p.report.Load()
	if r == nil {
		return LoadReport{}, false
	}
	return *r, true
}

// FilteredSeries returns a series of the published dataset restricted to a
// trailing window ending at the current year.
func (p *Pipeline) FilteredSeries(kind model.SeriesKind, token model.WindowToken) (model.TimeSeries, error) {
	cur := p.current.Load()
	if cur == nil {
		return model.TimeSeries{}, ErrNotLoaded
	}

	series, err := cur.Series(kind)
	if err != nil {
		return model.TimeSeries{}, err
	}
	if _, err := model.ParseWindowToken(string(token)); err != nil {
		return model.TimeSeries{}, err
	}
	return window.Filter(series, token, p.now().Year()), nil
}

// DerivedMetrics computes the headline figures of the published dataset.
func (p *Pipeline) DerivedMetrics() (derive.Metrics, error) {
	cur := p.current.Load()
	if cur == nil {
		return derive.Metrics{}, ErrNotLoaded
	}
	return derive.Compute(*cur, p.deriveOptions()), nil
}

func (p *Pipeline) deriveOptions() derive.Options {
	return derive.Options{
		CountryCode:         p.cfg.CountryCode,
		AssumedInterestRate: p.cfg.AssumedInterestRate,
		DefaultPopulation:   p.cfg.DefaultPopulation,
	}
}

// AssumedInterestRate returns the configured rate used for derived figures.
func (p *Pipeline) AssumedInterestRate() float64 {
	return p.cfg.AssumedInterestRate
}

// SubscribeRealTimeEstimate registers a handler for real-time estimates.
func (p *Pipeline) SubscribeRealTimeEstimate(h realtime.Handler) realtime.Handle {
	return p.extrapolator.Subscribe(h)
}

// Unsubscribe removes a real-time estimate handler.
func (p *Pipeline) Unsubscribe(handle realtime.Handle) bool {
	return p.extrapolator.Unsubscribe(handle)
}

// Estimate returns the current real-time estimate.
func (p *Pipeline) Estimate() (realtime.Estimate, bool) {
	return p.extrapolator.EstimateAt(p.now())
}

// ExtrapolationState returns the current real-time anchor.
func (p *Pipeline) ExtrapolationState() model.ExtrapolationState {
	return p.extrapolator.State()
}
