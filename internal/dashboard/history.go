package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/kalshi-signals/internal/cache"
	"github.com/rickgao/kalshi-signals/internal/combo"
	"github.com/rickgao/kalshi-signals/internal/history"
	"github.com/rickgao/kalshi-signals/internal/market"
	"github.com/rickgao/kalshi-signals/internal/model"
)

// historyConcurrency bounds parallel candlestick requests.
const historyConcurrency = 4

type historyTarget struct {
	series string
	ticker string
	label  string
}

// historyTargets lists the direct control markets followed by each
// combination leg, in a stable order.
func (s *Service) historyTargets(set market.Set) []historyTarget {
	var out []historyTarget
	for _, d := range []struct {
		series string
		quotes []model.Quote
		party  model.Party
		c      model.Chamber
	}{
		{s.cfg.Series.House, set.House, s.cfg.HouseParty, model.House},
		{s.cfg.Series.Senate, set.Senate, s.cfg.SenateParty, model.Senate},
	} {
		spec := market.ChamberSpec{Chamber: d.c, Party: d.party}
		if q, ok := market.FindBySuffix(d.quotes, spec.Suffix()); ok {
			out = append(out, historyTarget{d.series, q.Ticker, history.DirectLabel(d.party, d.c)})
		}
	}

	legs := make(map[combo.Outcome]string)
	for _, q := range set.Combo {
		if o, ok := combo.Classify(q.Ticker); ok {
			legs[o] = q.Ticker
		}
	}
	for _, o := range combo.Outcomes {
		if t, ok := legs[o]; ok {
			out = append(out, historyTarget{s.cfg.Series.Combo, t, history.ComboLabel(o.House, o.Senate)})
		}
	}
	return out
}

// loadHistory fetches candles for every target. Series with no points are
// omitted; failures become warnings.
func (s *Service) loadHistory(ctx context.Context, cy *cycle) []history.Series {
	targets := s.historyTargets(cy.set)
	results := make([]history.Series, len(targets))
	failed := make([]error, len(targets))

	window := s.cfg.Range.Window(s.now())

	var g errgroup.Group
	g.SetLimit(historyConcurrency)
	for i, t := range targets {
		g.Go(func() error {
			points, err := cache.Fetch(ctx, s.cache, OpCandles, s.cfg.TTL.Candles, func(ctx context.Context) ([]history.Point, error) {
				resp, err := s.markets.GetCandlesticks(ctx, t.series, t.ticker, window)
				if err != nil {
					return nil, err
				}
				return history.Parse(resp.Candlesticks), nil
			}, t.ticker, s.cfg.Range)
			if err != nil {
				failed[i] = err
				return nil
			}
			results[i] = history.Series{Label: t.label, Ticker: t.ticker, Points: points}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]history.Series, 0, len(targets))
	for i, t := range targets {
		if err := failed[i]; err != nil {
			s.recorder.FetchError(OpCandles)
			cy.logger.Warn("candlestick fetch failed", "source", OpCandles, "ticker", t.ticker, "err", err)
			cy.warn("Candlestick fetch failed for %s: %v", t.ticker, err)
			continue
		}
		if len(results[i].Points) == 0 {
			continue
		}
		out = append(out, results[i])
	}
	return out
}
