package portfolio

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rickgao/kalshi-signals/internal/api"
	"github.com/rickgao/kalshi-signals/internal/pricing"
)

// Balance is the account balance in dollars.
type Balance struct {
	Cash           float64 `json:"cash"`
	PortfolioValue float64 `json:"portfolio_value"`
}

// NewBalance converts the cents-denominated API response.
func NewBalance(b api.BalanceResponse) Balance {
	return Balance{
		Cash:           float64(b.Balance) / 100,
		PortfolioValue: float64(b.PortfolioValue) / 100,
	}
}

// Side of a position or order.
const (
	SideYes = "Yes"
	SideNo  = "No"
)

// Position is one open position with its P&L.
type Position struct {
	Ticker    string  `json:"ticker"`
	Side      string  `json:"side"`
	Contracts int64   `json:"contracts"`
	MarketPct float64 `json:"market_pct"`
	HasPrice  bool    `json:"has_price"`
	Exposure  float64 `json:"exposure"`
	Realized  float64 `json:"realized_pnl"`
	Fees      float64 `json:"fees"`

	// Unrealized and Total are nil when no current price is known.
	Unrealized *float64 `json:"unrealized_pnl,omitempty"`
	Total      *float64 `json:"total_pnl,omitempty"`
}

// PriceFunc returns the current yes price of a ticker as a percentage.
type PriceFunc func(ctx context.Context, ticker string) (float64, bool)

// BuildPositions converts API positions to rows, skipping flat ones.
// Unrealized P&L is the mark value minus exposure, where a Yes contract is
// marked at price/100 and a No contract at (100-price)/100.
func BuildPositions(ctx context.Context, positions []api.APIPosition, price PriceFunc) []Position {
	out := make([]Position, 0, len(positions))
	for _, p := range positions {
		n := p.Position.Int64()
		if !p.Position.IsSet() {
			n = p.PositionFP.Int64()
		}
		if n == 0 {
			continue
		}

		row := Position{
			Ticker:    p.Ticker,
			Side:      SideYes,
			Contracts: n,
			Exposure:  dollars(p.MarketExposureDollars, p.MarketExposure),
			Realized:  dollars(p.RealizedPnlDollars, p.RealizedPnl),
			Fees:      dollars(p.FeesPaidDollars, p.FeesPaid),
		}
		if n < 0 {
			row.Side = SideNo
			row.Contracts = -n
		}

		if price != nil {
			if pct, ok := price(ctx, p.Ticker); ok {
				row.MarketPct = pct
				row.HasPrice = true

				mark := pct / 100
				if row.Side == SideNo {
					mark = (100 - pct) / 100
				}
				unrealized := pricing.Round(mark*float64(row.Contracts)-row.Exposure, 2)
				total := pricing.Round(row.Realized+unrealized, 2)
				row.Unrealized = &unrealized
				row.Total = &total
			}
		}
		out = append(out, row)
	}
	return out
}

// dollars prefers the decimal-dollar field and falls back to cents.
func dollars(d, cents api.FlexString) float64 {
	if v, ok := d.Float64(); ok {
		return v
	}
	if v, ok := cents.Float64(); ok {
		return v / 100
	}
	return 0
}

// Order is a resting order row.
type Order struct {
	Ticker    string `json:"ticker"`
	Side      string `json:"side"`
	Action    string `json:"action"`
	Price     string `json:"price"`
	Remaining string `json:"remaining"`
	Created   string `json:"created"`
}

// BuildOrders converts resting orders to rows.
func BuildOrders(orders []api.APIOrder) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, Order{
			Ticker:    o.Ticker,
			Side:      capitalize(o.Side),
			Action:    capitalize(o.Action),
			Price:     orderPrice(o),
			Remaining: remaining(o),
			Created:   truncate(o.CreatedTime, 16),
		})
	}
	return out
}

func orderPrice(o api.APIOrder) string {
	raw := o.YesPriceDollars
	if !raw.IsSet() {
		raw = o.NoPriceDollars
	}
	if raw.IsSet() {
		if v, ok := raw.Float64(); ok {
			return strconv.FormatFloat(v*100, 'f', 1, 64) + "¢"
		}
		return raw.String()
	}

	cents := o.YesPrice.Int64()
	if cents == 0 {
		cents = o.NoPrice.Int64()
	}
	return fmt.Sprintf("%d¢", cents)
}

func remaining(o api.APIOrder) string {
	if o.RemainingCountFP.IsSet() {
		return o.RemainingCountFP.String()
	}
	return strconv.FormatInt(o.RemainingCount.Int64(), 10)
}

// Settlement is one settled market row.
type Settlement struct {
	Ticker   string  `json:"ticker"`
	Result   string  `json:"result"`
	YesCount int64   `json:"yes_count"`
	NoCount  int64   `json:"no_count"`
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Net      float64 `json:"net"`
	Settled  string  `json:"settled"`
}

// BuildSettlements converts settlements to rows. Net is revenue minus the
// combined yes and no cost.
func BuildSettlements(settlements []api.APISettlement) []Settlement {
	out := make([]Settlement, 0, len(settlements))
	for _, s := range settlements {
		revenue := cents(s.Revenue)
		cost := cents(s.YesTotalCost) + cents(s.NoTotalCost)
		out = append(out, Settlement{
			Ticker:   s.Ticker,
			Result:   capitalize(s.MarketResult),
			YesCount: s.YesCount.Int64(),
			NoCount:  s.NoCount.Int64(),
			Revenue:  revenue,
			Cost:     cost,
			Net:      pricing.Round(revenue-cost, 2),
			Settled:  truncate(s.SettledTime, 16),
		})
	}
	return out
}

func cents(v api.FlexString) float64 {
	f, _ := v.Float64()
	return f / 100
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
