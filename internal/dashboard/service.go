package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/kalshi-signals/internal/cache"
	"github.com/rickgao/kalshi-signals/internal/combo"
	"github.com/rickgao/kalshi-signals/internal/fairvalue"
	"github.com/rickgao/kalshi-signals/internal/history"
	"github.com/rickgao/kalshi-signals/internal/market"
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/polls"
	"github.com/rickgao/kalshi-signals/internal/pricing"
	"github.com/rickgao/kalshi-signals/internal/signal"
)

// Cache operation names. They label cache metrics and prefix cache keys.
const (
	OpMarkets     = "markets"
	OpMarketPrice = "market_price"
	OpCandles     = "candles"
	OpPolls       = "polls"
	OpBalance     = "balance"
	OpPositions   = "positions"
	OpOrders      = "orders"
	OpSettlements = "settlements"
)

// TTLs holds one cache lifetime per operation. Zero disables caching for it.
type TTLs struct {
	Markets     time.Duration
	MarketPrice time.Duration
	Candles     time.Duration
	Polls       time.Duration
	Portfolio   time.Duration
	Settlements time.Duration
}

// DefaultTTLs returns the documented cache lifetimes.
func DefaultTTLs() TTLs {
	return TTLs{
		Markets:     2 * time.Minute,
		MarketPrice: 2 * time.Minute,
		Candles:     5 * time.Minute,
		Polls:       10 * time.Minute,
		Portfolio:   2 * time.Minute,
		Settlements: 5 * time.Minute,
	}
}

// Config holds the cycle parameters.
type Config struct {
	Series         market.Series
	HouseParty     model.Party
	SenateParty    model.Party
	Model          fairvalue.Model
	Fallback       polls.Generic
	DriftTolerance float64
	TTL            TTLs
	Range          history.Range
	PortfolioLimit int
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		Series: market.Series{
			House:  "CONTROLH",
			Senate: "CONTROLS",
			Combo:  "KXBALANCEPOWERCOMBO",
		},
		HouseParty:     model.Democrat,
		SenateParty:    model.Republican,
		Model:          fairvalue.Default(),
		Fallback:       polls.Fallback(polls.FallbackDem, polls.FallbackRep),
		DriftTolerance: 5,
		TTL:            DefaultTTLs(),
		Range:          history.Quarter,
		PortfolioLimit: 100,
	}
}

// Service computes snapshots.
type Service struct {
	cfg       Config
	markets   MarketSource
	polls     PollSource
	portfolio PortfolioSource
	cache     *cache.Cache
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPolls sets the generic ballot source. Without one the fallback is used.
func WithPolls(p PollSource) Option {
	return func(s *Service) {
		s.polls = p
	}
}

// WithPortfolio enables the authenticated portfolio section.
func WithPortfolio(p PortfolioSource) Option {
	return func(s *Service) {
		s.portfolio = p
	}
}

// WithCache routes every upstream call through c.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service reading markets from src.
func New(cfg Config, src MarketSource, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		markets:  src,
		recorder: nopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticated reports whether the portfolio section is enabled.
func (s *Service) Authenticated() bool {
	return s.portfolio != nil
}

// ClearCache drops every cached upstream result.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}

// cycle carries per-refresh state.
type cycle struct {
	logger   *slog.Logger
	set      market.Set
	warnings []string
}

func (c *cycle) warn(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// Refresh runs one cycle. It only fails when ctx is done.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	start := s.now()
	id := uuid.NewString()
	cy := &cycle{logger: s.logger.With("cycle_id", id)}

	snap := &Snapshot{
		CycleID:     id,
		GeneratedAt: start.UTC(),
		Range:       s.cfg.Range,
	}

	set, errs := market.Discover(ctx, cachedLister{s}, s.cfg.Series)
	for _, err := range errs {
		s.recorder.FetchError(OpMarkets)
		cy.logger.Warn("market discovery failed", "source", OpMarkets, "err", err)
		cy.warn("Market discovery failed: %v", err)
	}
	cy.set = set
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap.Polls = s.generic(ctx, cy)

	house := market.ChamberSpec{Chamber: model.House, Party: s.cfg.HouseParty}
	senate := market.ChamberSpec{Chamber: model.Senate, Party: s.cfg.SenateParty}
	snap.Fair = FairValues{
		House:  s.houseFair(snap.Polls),
		Senate: s.senateFair(),
	}

	var resolved *combo.Result
	if r, ok := combo.Resolve(set.Combo); ok {
		resolved = &r
		snap.Combo = newComboView(r)
		if r.Drift() > s.cfg.DriftTolerance {
			cy.logger.Warn("combo legs do not sum to 100", "total", r.Total())
			cy.warn("Combo legs sum to %.1f%%; implied marginals may be stale", r.Total())
		}
	} else if len(set.Combo) > 0 {
		cy.logger.Info("combo unresolved", "markets", len(set.Combo))
	}

	inputs := make([]signal.Input, 0, 2)
	for _, spec := range []struct {
		market.ChamberSpec
		fair float64
	}{
		{house, snap.Fair.House},
		{senate, snap.Fair.Senate},
	} {
		sel := market.Select(spec.ChamberSpec, set, resolved)
		name := model.ControlMarketName(spec.Party, spec.Chamber)
		if !sel.OK {
			cy.warn("No price available for %s", name)
		}
		inputs = append(inputs, signal.Input{
			Market:    name,
			Chamber:   spec.Chamber,
			Price:     sel.Percent,
			Available: sel.OK,
			Source:    sel.Source,
			Fair:      spec.fair,
		})
	}
	snap.Signals = signal.Build(inputs...)

	snap.Markets = append(marketRows(model.House, set.House), marketRows(model.Senate, set.Senate)...)

	if s.portfolio != nil {
		snap.Portfolio = s.loadPortfolio(ctx, cy)
	}
	snap.History = s.loadHistory(ctx, cy)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap.Warnings = cy.warnings
	if snap.Warnings == nil {
		snap.Warnings = []string{}
	}

	elapsed := s.now().Sub(start)
	s.recorder.ObserveRefresh(elapsed, start)
	for _, sig := range snap.Signals {
		s.recorder.RecordSignal(sig)
	}
	cy.logger.Info("refresh complete",
		"signals", len(snap.Signals),
		"markets", set.Len(),
		"warnings", len(snap.Warnings),
		"duration", elapsed,
	)
	return snap, nil
}

// generic returns the poll reading, or the configured fallback.
func (s *Service) generic(ctx context.Context, cy *cycle) polls.Generic {
	if s.polls == nil {
		return s.cfg.Fallback
	}
	g, err := cache.Fetch(ctx, s.cache, OpPolls, s.cfg.TTL.Polls, s.polls.Fetch)
	if err != nil {
		s.recorder.FetchError(OpPolls)
		cy.logger.Warn("poll fetch failed", "source", OpPolls, "err", err)
		cy.warn("Poll data unavailable (%v); using fallback %.1f/%.1f", err, s.cfg.Fallback.Dem, s.cfg.Fallback.Rep)
		return s.cfg.Fallback
	}
	return g
}

// houseFair is the fair value for the configured House party. The model is
// stated for Democratic control, so a Republican House view is its complement.
func (s *Service) houseFair(g polls.Generic) float64 {
	dem := s.cfg.Model.House(g.Dem, g.Rep)
	if s.cfg.HouseParty == model.Republican {
		return pricing.Round(100-dem, 1)
	}
	return dem
}

// senateFair is the fair value for the configured Senate party. The
// configured constant is for Republican control.
func (s *Service) senateFair() float64 {
	rep := s.cfg.Model.Senate()
	if s.cfg.SenateParty == model.Democrat {
		return pricing.Round(100-rep, 1)
	}
	return rep
}

// cachedLister lists a series through the cache.
type cachedLister struct {
	s *Service
}

func (l cachedLister) OpenMarkets(ctx context.Context, series string) ([]model.Quote, error) {
	return cache.Fetch(ctx, l.s.cache, OpMarkets, l.s.cfg.TTL.Markets, func(ctx context.Context) ([]model.Quote, error) {
		return l.s.markets.OpenMarkets(ctx, series)
	}, series)
}
