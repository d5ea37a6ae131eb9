package combo

import (
	"math"
	"strings"

	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/pricing"
)

// Outcome is one cell of the House x Senate control grid.
type Outcome struct {
	House  model.Party
	Senate model.Party
}

// Code returns the two-letter suffix code, e.g. "DR".
func (o Outcome) Code() string {
	return string(o.House) + string(o.Senate)
}

// Outcomes lists all four legs in a stable order.
var Outcomes = [4]Outcome{
	{model.Republican, model.Republican},
	{model.Republican, model.Democrat},
	{model.Democrat, model.Republican},
	{model.Democrat, model.Democrat},
}

// Classify maps a ticker to its combination outcome by suffix. Matching is
// case-insensitive and the dash is required, so "FOODD" does not match.
func Classify(ticker string) (Outcome, bool) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	for _, o := range Outcomes {
		if strings.HasSuffix(t, "-"+o.Code()) {
			return o, true
		}
	}
	return Outcome{}, false
}

// Result holds the four leg prices and the marginals derived from them.
type Result struct {
	Legs map[Outcome]float64

	DemHouse  float64
	RepHouse  float64
	RepSenate float64
	DemSenate float64
}

// Resolve computes the marginal control probabilities from a list of quotes.
// Quotes that are not combination legs, or whose price is unavailable, are
// ignored. When the same leg appears twice the later quote wins. ok is false
// unless all four legs are priced.
func Resolve(quotes []model.Quote) (Result, bool) {
	legs := make(map[Outcome]float64, len(Outcomes))
	for _, q := range quotes {
		o, ok := Classify(q.Ticker)
		if !ok {
			continue
		}
		pct, ok := pricing.Percent(q)
		if !ok {
			continue
		}
		legs[o] = pct
	}
	if len(legs) != len(Outcomes) {
		return Result{}, false
	}

	leg := func(house, senate model.Party) float64 {
		return legs[Outcome{House: house, Senate: senate}]
	}
	r, d := model.Republican, model.Democrat
	return Result{
		Legs:      legs,
		DemHouse:  pricing.Round(leg(d, r)+leg(d, d), 1),
		RepHouse:  pricing.Round(leg(r, r)+leg(r, d), 1),
		RepSenate: pricing.Round(leg(r, r)+leg(d, r), 1),
		DemSenate: pricing.Round(leg(r, d)+leg(d, d), 1),
	}, true
}

// Marginal returns the derived probability that party controls chamber.
func (r Result) Marginal(p model.Party, c model.Chamber) float64 {
	switch {
	case c == model.House && p == model.Democrat:
		return r.DemHouse
	case c == model.House:
		return r.RepHouse
	case p == model.Republican:
		return r.RepSenate
	default:
		return r.DemSenate
	}
}

// Total is the sum of the four leg prices, ideally 100.
func (r Result) Total() float64 {
	var sum float64
	for _, v := range r.Legs {
		sum += v
	}
	return pricing.Round(sum, 1)
}

// Drift reports how far the legs are from summing to 100.
func (r Result) Drift() float64 {
	return math.Abs(r.Total() - 100)
}

// Label names the legs summed for a marginal, e.g. "DR+DD".
func Label(p model.Party, c model.Chamber) string {
	var parts []string
	for _, o := range Outcomes {
		side := o.Senate
		if c == model.House {
			side = o.House
		}
		if side == p {
			parts = append(parts, o.Code())
		}
	}
	return strings.Join(parts, "+")
}
