package history

import "github.com/rickgao/kalshi-signals/internal/model"

// DirectLabel names the series of a chamber's direct market,
// e.g. "Dem House (Yes)".
func DirectLabel(p model.Party, c model.Chamber) string {
	return p.Short() + " " + c.Title() + " (Yes)"
}

// ComboLabel names a combination leg, e.g. "Dem House + Rep Senate".
func ComboLabel(house, senate model.Party) string {
	return house.Short() + " House + " + senate.Short() + " Senate"
}
