package signal

import (
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/pricing"
)

// Recommendation is a categorical trading signal.
type Recommendation string

const (
	StrongBuy  Recommendation = "Strong Buy"
	StrongSell Recommendation = "Strong Sell"
	Buy        Recommendation = "Buy"
	Sell       Recommendation = "Sell"
	Watch      Recommendation = "Watch"
)

// Rule maps an edge to a recommendation: strictly above Band gives Above,
// strictly below -Band gives Below, anything else is Watch.
type Rule struct {
	Band  float64
	Above Recommendation
	Below Recommendation
}

var (
	HouseRule  = Rule{Band: 8, Above: StrongBuy, Below: StrongSell}
	SenateRule = Rule{Band: 5, Above: Sell, Below: Buy}
)

// RuleFor returns the rule used for chamber c.
func RuleFor(c model.Chamber) Rule {
	if c == model.Senate {
		return SenateRule
	}
	return HouseRule
}

// Classify applies the rule to an edge.
func (r Rule) Classify(edge float64) Recommendation {
	switch {
	case edge > r.Band:
		return r.Above
	case edge < -r.Band:
		return r.Below
	}
	return Watch
}

// Input is everything needed to produce one chamber's signal.
type Input struct {
	Market    string
	Chamber   model.Chamber
	Price     float64
	Available bool
	Source    string
	Fair      float64
}

// Generate builds the signal for in. ok is false when the market price
// is unavailable, in which case no signal is emitted.
func Generate(in Input) (model.Signal, bool) {
	if !in.Available {
		return model.Signal{}, false
	}
	edge := pricing.Round(in.Price-in.Fair, 1)
	return model.Signal{
		Market:         in.Market,
		Chamber:        in.Chamber,
		MarketPct:      in.Price,
		Source:         in.Source,
		FairPct:        in.Fair,
		Edge:           edge,
		Recommendation: string(RuleFor(in.Chamber).Classify(edge)),
	}, true
}

// Build generates signals for each input in order, skipping unavailable ones.
func Build(inputs ...Input) []model.Signal {
	out := make([]model.Signal, 0, len(inputs))
	for _, in := range inputs {
		if s, ok := Generate(in); ok {
			out = append(out, s)
		}
	}
	return out
}
