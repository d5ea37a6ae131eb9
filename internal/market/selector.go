package market

import (
	"fmt"

	"github.com/rickgao/kalshi-signals/internal/combo"
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/pricing"
)

// ChamberSpec is the party of interest for one chamber.
type ChamberSpec struct {
	Chamber model.Chamber
	Party   model.Party
}

// Suffix is the ticker suffix of the chamber's direct market, e.g. "-D".
func (c ChamberSpec) Suffix() string {
	return "-" + string(c.Party)
}

// Name is the display name of the chamber's control market.
func (c ChamberSpec) Name() string {
	return model.ControlMarketName(c.Party, c.Chamber)
}

// Selection is the chosen price source for one chamber.
type Selection struct {
	Percent float64
	Source  string
	OK      bool

	// Direct is set when the price came from a directly traded market.
	Direct *model.Quote
}

// Select picks the price for spec. A direct market in the chamber's series
// wins, even when the combination disagrees. When the direct market is
// missing or unpriced, the combination marginal is used if resolved.
// Otherwise the selection is not OK and Source is empty.
func Select(spec ChamberSpec, set Set, resolved *combo.Result) Selection {
	quotes := set.House
	if spec.Chamber == model.Senate {
		quotes = set.Senate
	}

	if q, ok := FindBySuffix(quotes, spec.Suffix()); ok {
		if pct, ok := pricing.Percent(q); ok {
			return Selection{
				Percent: pct,
				Source:  fmt.Sprintf("direct (%s)", q.Ticker),
				OK:      true,
				Direct:  &q,
			}
		}
	}

	if resolved != nil {
		return Selection{
			Percent: resolved.Marginal(spec.Party, spec.Chamber),
			Source:  fmt.Sprintf("combo-implied (%s)", combo.Label(spec.Party, spec.Chamber)),
			OK:      true,
		}
	}

	return Selection{}
}
