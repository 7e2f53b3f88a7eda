package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToKilograms(t *testing.T) {
	tests := []struct {
		quantity float64
		unit     string
		want     float64
	}{
		{2, "kg", 2},
		{250, "g", 0.25},
		{1, "LBS", 0.453592},
		{2, "lb", 0.907184},
		{16, "oz", 0.453592},
		{1500, "ml", 1.5},
		{1, " ltr ", 1},
		{4, "servings", 1},
		{2, "items", 0.3},
		{500000, "mg", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got, err := ToKilograms(tt.quantity, tt.unit)
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestToKilogramsErrors(t *testing.T) {
	_, err := ToKilograms(1, "bushel")
	assert.ErrorIs(t, err, ErrInvalidUnit)

	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := ToKilograms(q, "kg")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"g", "items", "kg", "l", "lb", "lbs", "ltr", "mg", "ml", "oz", "servings"}, Names())
}
