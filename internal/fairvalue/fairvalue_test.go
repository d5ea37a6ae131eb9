package fairvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_HouseDefault(t *testing.T) {
	tests := []struct {
		name     string
		dem, rep float64
		want     float64
	}{
		{"tied", 45, 45, 50},
		{"dem +1", 46, 45, 56},
		{"fallback poll", 47, 43, 74},
		{"ceiling", 50, 40, 90},
		{"floor", 35, 55, 10},
		{"fractional margin", 46.3, 45.1, 57.2},
		{"just under ceiling", 48.6, 42, 89.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Default().House(tt.dem, tt.rep), 1e-9)
		})
	}
}

func TestModel_HouseMonotonic(t *testing.T) {
	m := Default()
	prev := m.House(0, 30)
	for margin := -30.0; margin <= 30; margin += 0.5 {
		got := m.House(50+margin/2, 50-margin/2)
		assert.GreaterOrEqual(t, got, prev, "margin %.1f", margin)
		assert.GreaterOrEqual(t, got, m.Floor)
		assert.LessOrEqual(t, got, m.Ceiling)
		prev = got
	}
}

func TestModel_Senate(t *testing.T) {
	assert.Equal(t, 58.0, Default().Senate())

	m := Default()
	m.SenateFair = 61.5
	assert.Equal(t, 61.5, m.Senate())
}

func TestModel_CustomBounds(t *testing.T) {
	m := Model{Sensitivity: 3, Floor: 20, Ceiling: 80}
	assert.Equal(t, 80.0, m.House(60, 40))
	assert.Equal(t, 20.0, m.House(40, 60))
	assert.Equal(t, 53.0, m.House(46, 45))
}
