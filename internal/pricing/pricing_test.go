package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickgao/kalshi-signals/internal/model"
)

func quote(p model.PriceFields) model.Quote {
	return model.Quote{Ticker: "TEST", Prices: p}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name   string
		prices model.PriceFields
		want   float64
		ok     bool
	}{
		{"yes bid dollars", model.PriceFields{YesBidDollars: "0.54"}, 54.0, true},
		{"sub-penny dollars round to one place", model.PriceFields{YesBidDollars: "0.5467"}, 54.7, true},
		{"last price dollars when bid absent", model.PriceFields{LastPriceDollars: "0.31"}, 31.0, true},
		{"cents when no dollar field", model.PriceFields{YesBidCents: "42"}, 42.0, true},
		{"last price cents", model.PriceFields{LastPriceCents: "7"}, 7.0, true},
		{"dollars win over cents", model.PriceFields{YesBidDollars: "0.60", YesBidCents: "12"}, 60.0, true},
		{"bid dollars win over last dollars", model.PriceFields{YesBidDollars: "0.10", LastPriceDollars: "0.90"}, 10.0, true},
		{"bad dollar string skipped", model.PriceFields{YesBidDollars: "n/a", LastPriceDollars: "0.25"}, 25.0, true},
		{"bad dollars fall through to cents", model.PriceFields{YesBidDollars: "abc", LastPriceDollars: "NaN", YesBidCents: "33"}, 33.0, true},
		{"out of range dollars skipped", model.PriceFields{YesBidDollars: "1.5", YesBidCents: "40"}, 40.0, true},
		{"zero is a real price", model.PriceFields{YesBidDollars: "0"}, 0.0, true},
		{"one dollar is 100", model.PriceFields{LastPriceDollars: "1.0000"}, 100.0, true},
		{"whitespace tolerated", model.PriceFields{YesBidDollars: " 0.5 "}, 50.0, true},
		{"nothing present", model.PriceFields{}, 0, false},
		{"nothing parseable", model.PriceFields{YesBidDollars: "x", YesBidCents: "-3", LastPriceCents: "101"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Percent(quote(tt.prices))
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFromDollars(t *testing.T) {
	tests := map[string]float64{
		"0.01":  1.0,
		"0.125": 12.5,
		"0.333": 33.3,
		"0.875": 87.5,
		"0.99":  99.0,
	}
	for in, want := range tests {
		got, ok := FromDollars(in, 1)
		assert.True(t, ok, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
}

func TestCandlePercent(t *testing.T) {
	got, ok := CandlePercent("0.4567", "12")
	assert.True(t, ok)
	assert.InDelta(t, 45.67, got, 1e-9)

	got, ok = CandlePercent("", "45")
	assert.True(t, ok)
	assert.InDelta(t, 45.0, got, 1e-9)

	_, ok = CandlePercent("", "")
	assert.False(t, ok)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.1, Round(2.05, 1))
	assert.Equal(t, -8.0, Round(-7.96, 1))
	assert.Equal(t, 10.0, Round(60-50, 1))
	assert.Equal(t, 0.3, Round(0.1+0.2, 1))
}
