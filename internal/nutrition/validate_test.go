package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsFiniteValues(t *testing.T) {
	require.NoError(t, Validate(Inputs{AlcoholPercent: 13, ResidualSugar: 5, TotalAcidity: 6}))
	require.NoError(t, Validate(Inputs{AlcoholPercent: -1, Glycerine: ptr(8), UseManualGlycerine: true}))
}

func TestValidate_RejectsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		in    Inputs
		field string
	}{
		{"nan alcohol", Inputs{AlcoholPercent: math.NaN()}, "alcohol_percent"},
		{"inf sugar", Inputs{ResidualSugar: math.Inf(1)}, "residual_sugar"},
		{"negative inf acidity", Inputs{TotalAcidity: math.Inf(-1)}, "total_acidity"},
		{"nan manual glycerine", Inputs{Glycerine: ptr(math.NaN()), UseManualGlycerine: true}, "glycerine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNonFinite)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_IgnoresUnusedGlycerine(t *testing.T) {
	in := Inputs{AlcoholPercent: 13, Glycerine: ptr(math.Inf(1))}
	require.NoError(t, Validate(in))

	got := CalculateWineNutrition(in)
	assert.InDelta(t, 10.3, got.Glycerine, 1e-9)
}
