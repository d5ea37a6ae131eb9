package dashboard

import (
	"context"
	"strings"

	"github.com/rickgao/kalshi-signals/internal/api"
	"github.com/rickgao/kalshi-signals/internal/cache"
	"github.com/rickgao/kalshi-signals/internal/portfolio"
	"github.com/rickgao/kalshi-signals/internal/pricing"
)

// loadPortfolio loads each account section independently; a failed section
// is left empty and reported as a warning.
func (s *Service) loadPortfolio(ctx context.Context, cy *cycle) *Portfolio {
	p := &Portfolio{
		Positions:   []portfolio.Position{},
		Orders:      []portfolio.Order{},
		Settlements: []portfolio.Settlement{},
	}
	ttl := s.cfg.TTL.Portfolio
	limit := s.cfg.PortfolioLimit

	bal, err := cache.Fetch(ctx, s.cache, OpBalance, ttl, func(ctx context.Context) (api.BalanceResponse, error) {
		b, err := s.portfolio.GetBalance(ctx)
		if err != nil {
			return api.BalanceResponse{}, err
		}
		return *b, nil
	})
	if s.check(cy, OpBalance, "Balance", err) {
		b := portfolio.NewBalance(bal)
		p.Balance = &b
	}

	positions, err := cache.Fetch(ctx, s.cache, OpPositions, ttl, func(ctx context.Context) ([]api.APIPosition, error) {
		return s.portfolio.GetPositions(ctx, api.PositionsOptions{CountFilter: "position", Limit: limit})
	}, limit)
	if s.check(cy, OpPositions, "Positions", err) {
		p.Positions = portfolio.BuildPositions(ctx, positions, s.priceFunc(cy))
	}

	orders, err := cache.Fetch(ctx, s.cache, OpOrders, ttl, func(ctx context.Context) ([]api.APIOrder, error) {
		return s.portfolio.GetOrders(ctx, api.OrdersOptions{Status: "resting", Limit: limit})
	}, limit)
	if s.check(cy, OpOrders, "Orders", err) {
		p.Orders = portfolio.BuildOrders(orders)
	}

	settlements, err := cache.Fetch(ctx, s.cache, OpSettlements, s.cfg.TTL.Settlements, func(ctx context.Context) ([]api.APISettlement, error) {
		return s.portfolio.GetSettlements(ctx, limit)
	}, limit)
	if s.check(cy, OpSettlements, "Settlements", err) {
		p.Settlements = portfolio.BuildSettlements(settlements)
	}

	return p
}

// check reports a failed section and returns whether err is nil.
func (s *Service) check(cy *cycle, op, section string, err error) bool {
	if err == nil {
		return true
	}
	s.recorder.FetchError(op)
	cy.logger.Warn("portfolio fetch failed", "source", op, "err", err)
	cy.warn("%s fetch failed: %v", section, err)
	return false
}

// priceFunc prices a position from the discovered markets first, then from
// a single-market lookup.
func (s *Service) priceFunc(cy *cycle) portfolio.PriceFunc {
	return func(ctx context.Context, ticker string) (float64, bool) {
		if q, ok := cy.set.Lookup(ticker); ok {
			if pct, ok := pricing.Percent(q); ok {
				return pct, true
			}
		}
		m, err := cache.Fetch(ctx, s.cache, OpMarketPrice, s.cfg.TTL.MarketPrice, func(ctx context.Context) (api.APIMarket, error) {
			m, err := s.markets.GetMarket(ctx, ticker)
			if err != nil {
				return api.APIMarket{}, err
			}
			return *m, nil
		}, strings.ToUpper(ticker))
		if err != nil {
			s.recorder.FetchError(OpMarketPrice)
			cy.logger.Debug("position price unavailable", "ticker", ticker, "err", err)
			return 0, false
		}
		return pricing.Percent(m.ToQuote())
	}
}
