package dashboard

import (
	"time"

	"github.com/rickgao/kalshi-signals/internal/combo"
	"github.com/rickgao/kalshi-signals/internal/history"
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/polls"
	"github.com/rickgao/kalshi-signals/internal/portfolio"
	"github.com/rickgao/kalshi-signals/internal/pricing"
)

// Snapshot is everything a presentation layer needs for one cycle.
type Snapshot struct {
	CycleID     string           `json:"cycle_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Polls       polls.Generic    `json:"polls"`
	Fair        FairValues       `json:"fair_values"`
	Signals     []model.Signal   `json:"signals"`
	Combo       *ComboView       `json:"combo,omitempty"`
	Markets     []MarketRow      `json:"markets"`
	Portfolio   *Portfolio       `json:"portfolio,omitempty"`
	Range       history.Range    `json:"range"`
	History     []history.Series `json:"history"`
	Warnings    []string         `json:"warnings"`
}

// FairValues are the model outputs for the cycle, each stated for the
// configured party of its chamber.
type FairValues struct {
	House  float64 `json:"house"`
	Senate float64 `json:"senate"`
}

// ComboView is the combination breakdown in display order.
type ComboView struct {
	Legs      []ComboLeg `json:"legs"`
	DemHouse  float64    `json:"dem_house"`
	RepHouse  float64    `json:"rep_house"`
	RepSenate float64    `json:"rep_senate"`
	DemSenate float64    `json:"dem_senate"`
	Total     float64    `json:"total"`
	Drift     float64    `json:"drift"`
}

// ComboLeg is one priced combination outcome.
type ComboLeg struct {
	Code    string  `json:"code"`
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// MarketRow is one direct market for the sidebar.
type MarketRow struct {
	Chamber  model.Chamber `json:"chamber"`
	Ticker   string        `json:"ticker"`
	Title    string        `json:"title"`
	Percent  float64       `json:"percent"`
	HasPrice bool          `json:"has_price"`
	Volume   int64         `json:"volume"`
}

// Portfolio is the authenticated account view. A nil section failed to load.
type Portfolio struct {
	Balance     *portfolio.Balance     `json:"balance,omitempty"`
	Positions   []portfolio.Position   `json:"positions"`
	Orders      []portfolio.Order      `json:"orders"`
	Settlements []portfolio.Settlement `json:"settlements"`
}

// Signal returns the signal for chamber c, if one was produced.
func (s *Snapshot) Signal(c model.Chamber) (model.Signal, bool) {
	for _, sig := range s.Signals {
		if sig.Chamber == c {
			return sig, true
		}
	}
	return model.Signal{}, false
}

func newComboView(r combo.Result) *ComboView {
	v := &ComboView{
		Legs:      make([]ComboLeg, 0, len(combo.Outcomes)),
		DemHouse:  r.DemHouse,
		RepHouse:  r.RepHouse,
		RepSenate: r.RepSenate,
		DemSenate: r.DemSenate,
		Total:     pricing.Round(r.Total(), 1),
		Drift:     pricing.Round(r.Drift(), 1),
	}
	for _, o := range combo.Outcomes {
		v.Legs = append(v.Legs, ComboLeg{
			Code:    o.Code(),
			Label:   history.ComboLabel(o.House, o.Senate),
			Percent: r.Legs[o],
		})
	}
	return v
}

func marketRows(c model.Chamber, quotes []model.Quote) []MarketRow {
	rows := make([]MarketRow, 0, len(quotes))
	for _, q := range quotes {
		pct, ok := pricing.Percent(q)
		rows = append(rows, MarketRow{
			Chamber:  c,
			Ticker:   q.Ticker,
			Title:    q.Title,
			Percent:  pct,
			HasPrice: ok,
			Volume:   q.Volume,
		})
	}
	return rows
}
