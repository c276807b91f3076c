package nutrition

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFinite is returned by Validate when an input is NaN or infinite.
var ErrNonFinite = errors.New("value must be a finite number")

type namedValue struct {
	field string
	value float64
}

// Validate rejects non-finite inputs. A manual glycerine value is only checked
// when UseManualGlycerine is set, since the calculator ignores it otherwise.
// Callers run it at the request boundary; CalculateWineNutrition never does.
func Validate(in Inputs) error {
	checks := []namedValue{
		{"alcohol_percent", in.AlcoholPercent},
		{"residual_sugar", in.ResidualSugar},
		{"total_acidity", in.TotalAcidity},
	}
	if in.UseManualGlycerine && in.Glycerine != nil {
		checks = append(checks, namedValue{"glycerine", *in.Glycerine})
	}

	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%s: %w", c.field, ErrNonFinite)
		}
	}
	return nil
}
