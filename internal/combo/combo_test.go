package combo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/kalshi-signals/internal/model"
)

func leg(suffix, dollars string) model.Quote {
	return model.Quote{
		Ticker: "KXBALANCEPOWERCOMBO-27FEB-" + suffix,
		Prices: model.PriceFields{YesBidDollars: dollars},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
		ok     bool
	}{
		{"KXBALANCEPOWERCOMBO-27FEB-RR", "RR", true},
		{"kxbalancepowercombo-27feb-dr", "DR", true},
		{"X-RD", "RD", true},
		{"X-DD", "DD", true},
		{"XDD", "", false},
		{"CONTROLH-2026-D", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			o, ok := Classify(tt.ticker)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, o.Code())
			}
		})
	}
}

func TestResolve(t *testing.T) {
	quotes := []model.Quote{
		leg("RR", "0.30"),
		leg("RD", "0.20"),
		leg("DR", "0.15"),
		leg("DD", "0.35"),
	}

	r, ok := Resolve(quotes)
	require.True(t, ok)

	assert.Equal(t, 50.0, r.DemHouse)
	assert.Equal(t, 50.0, r.RepHouse)
	assert.Equal(t, 45.0, r.RepSenate)
	assert.Equal(t, 55.0, r.DemSenate)
	assert.Equal(t, 100.0, r.Total())
	assert.Equal(t, 0.0, r.Drift())

	assert.Equal(t, 50.0, r.Marginal(model.Democrat, model.House))
	assert.Equal(t, 45.0, r.Marginal(model.Republican, model.Senate))
}

func TestResolve_MarginalsSumToTwiceTotal(t *testing.T) {
	quotes := []model.Quote{
		leg("RR", "0.31"),
		leg("RD", "0.22"),
		leg("DR", "0.17"),
		leg("DD", "0.33"),
	}

	r, ok := Resolve(quotes)
	require.True(t, ok)

	sum := r.DemHouse + r.RepHouse + r.RepSenate + r.DemSenate
	assert.InDelta(t, 2*r.Total(), sum, 1e-9)
	assert.InDelta(t, 3.0, r.Drift(), 1e-9)
}

func TestResolve_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		quotes []model.Quote
	}{
		{"empty", nil},
		{"three legs", []model.Quote{leg("RR", "0.3"), leg("RD", "0.2"), leg("DR", "0.15")}},
		{"unpriced leg", []model.Quote{leg("RR", "0.3"), leg("RD", "0.2"), leg("DR", "0.15"), leg("DD", "")}},
		{"duplicate leg does not fill a gap", []model.Quote{leg("RR", "0.3"), leg("RR", "0.3"), leg("RD", "0.2"), leg("DR", "0.15")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Resolve(tt.quotes)
			assert.False(t, ok)
		})
	}
}

func TestResolve_LaterDuplicateWins(t *testing.T) {
	quotes := []model.Quote{
		leg("RR", "0.10"),
		leg("RD", "0.20"),
		leg("DR", "0.15"),
		leg("DD", "0.35"),
		leg("RR", "0.30"),
	}

	r, ok := Resolve(quotes)
	require.True(t, ok)
	assert.Equal(t, 45.0, r.RepSenate)
	assert.Equal(t, 50.0, r.RepHouse)
}

func TestResolve_IgnoresNonComboQuotes(t *testing.T) {
	quotes := []model.Quote{
		{Ticker: "CONTROLH-2026-D", Prices: model.PriceFields{YesBidDollars: "0.99"}},
		leg("RR", "0.25"),
		leg("RD", "0.25"),
		leg("DR", "0.25"),
		leg("DD", "0.25"),
	}

	r, ok := Resolve(quotes)
	require.True(t, ok)
	assert.Equal(t, 50.0, r.DemHouse)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "DR+DD", Label(model.Democrat, model.House))
	assert.Equal(t, "RR+RD", Label(model.Republican, model.House))
	assert.Equal(t, "RR+DR", Label(model.Republican, model.Senate))
	assert.Equal(t, "RD+DD", Label(model.Democrat, model.Senate))
}

func ExampleResolve() {
	r, _ := Resolve([]model.Quote{
		leg("RR", "0.30"), leg("RD", "0.20"), leg("DR", "0.15"), leg("DD", "0.35"),
	})
	fmt.Println(r.DemHouse, r.RepSenate)
	// Output: 50 45
}
