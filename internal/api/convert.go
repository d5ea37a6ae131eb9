package api

import (
	"context"

	"github.com/rickgao/kalshi-signals/internal/model"
)

// ToQuote converts an APIMarket to model.Quote, keeping every price
// representation so the normalizer can choose.
func (m *APIMarket) ToQuote() model.Quote {
	return model.Quote{
		Ticker: m.Ticker,
		Title:  m.Title,
		Prices: model.PriceFields{
			YesBidDollars:    m.YesBidDollars.String(),
			LastPriceDollars: m.LastPriceDollars.String(),
			YesBidCents:      m.YesBid.String(),
			LastPriceCents:   m.LastPrice.String(),
		},
		Volume: max(m.Volume.Int64(), 0),
	}
}

// ToQuotes converts a page of markets.
func ToQuotes(markets []APIMarket) []model.Quote {
	out := make([]model.Quote, 0, len(markets))
	for i := range markets {
		out = append(out, markets[i].ToQuote())
	}
	return out
}

// SeriesLister lists the open markets of a series as quotes.
type SeriesLister struct {
	Client *Client
	Limit  int
}

// OpenMarkets fetches one page of open markets for series.
func (l SeriesLister) OpenMarkets(ctx context.Context, series string) ([]model.Quote, error) {
	resp, err := l.Client.GetMarkets(ctx, GetMarketsOptions{
		SeriesTicker: series,
		Status:       "open",
		Limit:        l.Limit,
	})
	if err != nil {
		return nil, err
	}
	return ToQuotes(resp.Markets), nil
}
