// Package fairvalue maps generic-ballot polling to a control probability.
//
// The House model is a linear heuristic: every point of Democratic
// generic-ballot margin moves the probability by Sensitivity points,
// clamped to [Floor, Ceiling]. The Senate value is a configured constant.
package fairvalue

import "github.com/rickgao/kalshi-signals/internal/pricing"

// Model defaults
const (
	// DefaultSensitivity is probability points per point of generic-ballot margin.
	DefaultSensitivity = 6.0

	// DefaultFloor and DefaultCeiling bound the House fair value.
	DefaultFloor   = 10.0
	DefaultCeiling = 90.0

	// DefaultSenateFair is a placeholder for Republican Senate control.
	DefaultSenateFair = 58.0
)

// Model holds the fair-value parameters. It has no other state.
type Model struct {
	Sensitivity float64
	Floor       float64
	Ceiling     float64
	SenateFair  float64
}

// Default returns the documented parameters.
func Default() Model {
	return Model{
		Sensitivity: DefaultSensitivity,
		Floor:       DefaultFloor,
		Ceiling:     DefaultCeiling,
		SenateFair:  DefaultSenateFair,
	}
}

// House returns the fair probability of Democratic House control given
// Democrat and Republican generic-ballot percentages.
func (m Model) House(dem, rep float64) float64 {
	p := 50 + (dem-rep)*m.Sensitivity
	p = max(m.Floor, min(m.Ceiling, p))
	return pricing.Round(p, 1)
}

// Senate returns the configured Senate fair value unchanged.
func (m Model) Senate() float64 {
	return m.SenateFair
}
