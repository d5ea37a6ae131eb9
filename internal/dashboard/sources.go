package dashboard

import (
	"context"
	"time"

	"github.com/rickgao/kalshi-signals/internal/api"
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/polls"
)

// MarketSource is the public market-data collaborator.
type MarketSource interface {
	OpenMarkets(ctx context.Context, series string) ([]model.Quote, error)
	GetMarket(ctx context.Context, ticker string) (*api.APIMarket, error)
	GetCandlesticks(ctx context.Context, series, ticker string, opts api.CandlesticksOptions) (*api.CandlesticksResponse, error)
}

// PortfolioSource is the authenticated account collaborator.
type PortfolioSource interface {
	GetBalance(ctx context.Context) (*api.BalanceResponse, error)
	GetPositions(ctx context.Context, opts api.PositionsOptions) ([]api.APIPosition, error)
	GetOrders(ctx context.Context, opts api.OrdersOptions) ([]api.APIOrder, error)
	GetSettlements(ctx context.Context, limit int) ([]api.APISettlement, error)
}

// PollSource reads the generic ballot.
type PollSource interface {
	Fetch(ctx context.Context) (polls.Generic, error)
}

// Recorder receives per-cycle measurements.
type Recorder interface {
	FetchError(source string)
	ObserveRefresh(d time.Duration, at time.Time)
	RecordSignal(s model.Signal)
}

type nopRecorder struct{}

func (nopRecorder) FetchError(string)                       {}
func (nopRecorder) ObserveRefresh(time.Duration, time.Time) {}
func (nopRecorder) RecordSignal(model.Signal)               {}

// KalshiSource adapts an API client to MarketSource.
type KalshiSource struct {
	*api.Client
	lister api.SeriesLister
}

// NewKalshiSource lists at most limit open markets per series.
func NewKalshiSource(client *api.Client, limit int) *KalshiSource {
	return &KalshiSource{
		Client: client,
		lister: api.SeriesLister{Client: client, Limit: limit},
	}
}

// OpenMarkets implements market.Lister.
func (k *KalshiSource) OpenMarkets(ctx context.Context, series string) ([]model.Quote, error) {
	return k.lister.OpenMarkets(ctx, series)
}
