package nutrition

// Values are the derived fields a passport stores and a user may override.
type Values struct {
	EnergyKcal    float64 `json:"energy_kcal"`
	EnergyKj      float64 `json:"energy_kj"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugar         float64 `json:"sugar"`
}

// Overrides marks which stored values were entered by hand and must survive recalculation.
type Overrides struct {
	EnergyKcal    bool `json:"energy_kcal_manual"`
	EnergyKj      bool `json:"energy_kj_manual"`
	Carbohydrates bool `json:"carbohydrates_manual"`
	Sugar         bool `json:"sugar_manual"`
}

// Any reports whether at least one field is manually overridden.
func (o Overrides) Any() bool {
	return o.EnergyKcal || o.EnergyKj || o.Carbohydrates || o.Sugar
}

// Reconcile merges freshly computed results into previous values, keeping every
// field whose override flag is set.
func Reconcile(previous Values, overrides Overrides, fresh Results) Values {
	out := Values{
		EnergyKcal:    fresh.EnergyKcal,
		EnergyKj:      fresh.EnergyKj,
		Carbohydrates: fresh.Carbohydrates,
		Sugar:         fresh.Sugar,
	}
	if overrides.EnergyKcal {
		out.EnergyKcal = previous.EnergyKcal
	}
	if overrides.EnergyKj {
		out.EnergyKj = previous.EnergyKj
	}
	if overrides.Carbohydrates {
		out.Carbohydrates = previous.Carbohydrates
	}
	if overrides.Sugar {
		out.Sugar = previous.Sugar
	}
	return out
}
