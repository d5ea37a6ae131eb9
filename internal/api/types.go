package api

// ExchangeStatusResponse from GET /exchange/status
type ExchangeStatusResponse struct {
	ExchangeActive      bool   `json:"exchange_active"`
	TradingActive       bool   `json:"trading_active"`
	EstimatedResumeTime string `json:"exchange_estimated_resume_time,omitempty"`
}

// MarketsResponse from GET /markets
type MarketsResponse struct {
	Markets []APIMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

// APIMarket represents a market from the Kalshi API.
type APIMarket struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Status      string `json:"status"`

	// Prices in cents
	YesBid    FlexString `json:"yes_bid"`
	YesAsk    FlexString `json:"yes_ask"`
	LastPrice FlexString `json:"last_price"`

	// Prices as fractional dollars (sub-penny)
	YesBidDollars    FlexString `json:"yes_bid_dollars"`
	YesAskDollars    FlexString `json:"yes_ask_dollars"`
	LastPriceDollars FlexString `json:"last_price_dollars"`

	Volume       FlexString `json:"volume"`
	OpenInterest FlexString `json:"open_interest"`

	CloseTime string `json:"close_time"`
}

// SingleMarketResponse from GET /markets/{ticker}
type SingleMarketResponse struct {
	Market APIMarket `json:"market"`
}

// GetMarketsOptions configures a GetMarkets request.
type GetMarketsOptions struct {
	Limit        int
	Cursor       string
	EventTicker  string
	SeriesTicker string
	Tickers      []string
	Status       string
}

// CandlesticksResponse from GET /series/{series}/markets/{ticker}/candlesticks
type CandlesticksResponse struct {
	Ticker       string      `json:"ticker"`
	Candlesticks []APICandle `json:"candlesticks"`
}

// APICandle is one OHLC bucket. EndPeriodTS is Unix seconds; zero means absent.
type APICandle struct {
	EndPeriodTS  int64          `json:"end_period_ts"`
	Price        APICandlePrice `json:"price"`
	Volume       FlexString     `json:"volume"`
	OpenInterest FlexString     `json:"open_interest"`
}

// APICandlePrice carries each component in cents and in dollars.
type APICandlePrice struct {
	Open         FlexString `json:"open"`
	High         FlexString `json:"high"`
	Low          FlexString `json:"low"`
	Close        FlexString `json:"close"`
	OpenDollars  FlexString `json:"open_dollars"`
	HighDollars  FlexString `json:"high_dollars"`
	LowDollars   FlexString `json:"low_dollars"`
	CloseDollars FlexString `json:"close_dollars"`
}

// CandlesticksOptions configures a GetCandlesticks request.
// PeriodInterval is in minutes: 1, 60 or 1440.
type CandlesticksOptions struct {
	StartTS        int64
	EndTS          int64
	PeriodInterval int
}

// BalanceResponse from GET /portfolio/balance. Amounts are in cents.
type BalanceResponse struct {
	Balance        int64 `json:"balance"`
	PortfolioValue int64 `json:"portfolio_value"`
}

// PositionsResponse from GET /portfolio/positions
type PositionsResponse struct {
	MarketPositions []APIPosition `json:"market_positions"`
	Cursor          string        `json:"cursor"`
}

// APIPosition is a held market position. Positive Position is Yes contracts,
// negative is No. Dollar fields are preferred over the cents fields.
type APIPosition struct {
	Ticker     string     `json:"ticker"`
	Position   FlexString `json:"position"`
	PositionFP FlexString `json:"position_fp"`

	MarketExposure        FlexString `json:"market_exposure"`
	MarketExposureDollars FlexString `json:"market_exposure_dollars"`
	RealizedPnl           FlexString `json:"realized_pnl"`
	RealizedPnlDollars    FlexString `json:"realized_pnl_dollars"`
	FeesPaid              FlexString `json:"fees_paid"`
	FeesPaidDollars       FlexString `json:"fees_paid_dollars"`
}

// PositionsOptions configures a GetPositions request.
type PositionsOptions struct {
	CountFilter string
	Limit       int
}

// OrdersResponse from GET /portfolio/orders
type OrdersResponse struct {
	Orders []APIOrder `json:"orders"`
	Cursor string     `json:"cursor"`
}

// APIOrder is a resting order.
type APIOrder struct {
	OrderID          string     `json:"order_id"`
	Ticker           string     `json:"ticker"`
	Side             string     `json:"side"`
	Action           string     `json:"action"`
	Status           string     `json:"status"`
	YesPrice         FlexString `json:"yes_price"`
	NoPrice          FlexString `json:"no_price"`
	YesPriceDollars  FlexString `json:"yes_price_dollars"`
	NoPriceDollars   FlexString `json:"no_price_dollars"`
	RemainingCount   FlexString `json:"remaining_count"`
	RemainingCountFP FlexString `json:"remaining_count_fp"`
	CreatedTime      string     `json:"created_time"`
}

// OrdersOptions configures a GetOrders request.
type OrdersOptions struct {
	Status string
	Limit  int
}

// SettlementsResponse from GET /portfolio/settlements
type SettlementsResponse struct {
	Settlements []APISettlement `json:"settlements"`
	Cursor      string          `json:"cursor"`
}

// APISettlement is one settled market. Amounts are in cents.
type APISettlement struct {
	Ticker       string     `json:"ticker"`
	MarketResult string     `json:"market_result"`
	YesCount     FlexString `json:"yes_count"`
	NoCount      FlexString `json:"no_count"`
	YesTotalCost FlexString `json:"yes_total_cost"`
	NoTotalCost  FlexString `json:"no_total_cost"`
	Revenue      FlexString `json:"revenue"`
	SettledTime  string     `json:"settled_time"`
}
