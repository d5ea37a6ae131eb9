package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/kalshi-signals/internal/model"
)

func house(price, fair float64) Input {
	return Input{Market: "Dem House Control", Chamber: model.House, Price: price, Available: true, Source: "direct (CONTROLH-2026-D)", Fair: fair}
}

func senate(price, fair float64) Input {
	return Input{Market: "Rep Senate Control", Chamber: model.Senate, Price: price, Available: true, Source: "combo-implied (RR+DR)", Fair: fair}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		wantEdge float64
		wantRec  Recommendation
	}{
		{"house strong buy", house(60, 50), 10, StrongBuy},
		{"house strong sell", house(40, 50), -10, StrongSell},
		{"house watch", house(52, 50), 2, Watch},
		{"house band edge is watch", house(58, 50), 8, Watch},
		{"house just past band", house(58.1, 50), 8.1, StrongBuy},
		{"senate sell", senate(65, 58), 7, Sell},
		{"senate buy", senate(50, 58), -8, Buy},
		{"senate watch", senate(60, 58), 2, Watch},
		{"senate negative band edge is watch", senate(53, 58), -5, Watch},
		{"edge rounded", house(54.37, 50), 4.4, Watch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Generate(tt.in)
			require.True(t, ok)
			assert.InDelta(t, tt.wantEdge, s.Edge, 1e-9)
			assert.Equal(t, string(tt.wantRec), s.Recommendation)
			assert.Equal(t, tt.in.Market, s.Market)
			assert.Equal(t, tt.in.Source, s.Source)
			assert.Equal(t, tt.in.Price, s.MarketPct)
			assert.Equal(t, tt.in.Fair, s.FairPct)
		})
	}
}

func TestGenerate_Unavailable(t *testing.T) {
	in := house(0, 50)
	in.Available = false

	_, ok := Generate(in)
	assert.False(t, ok)
}

func TestBuild(t *testing.T) {
	missing := senate(0, 58)
	missing.Available = false

	signals := Build(house(60, 50), missing)
	require.Len(t, signals, 1)
	assert.Equal(t, "Dem House Control", signals[0].Market)
	assert.Equal(t, "Strong Buy", signals[0].Recommendation)
}

func TestRuleFor(t *testing.T) {
	assert.Equal(t, HouseRule, RuleFor(model.House))
	assert.Equal(t, SenateRule, RuleFor(model.Senate))
}
