package main

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Simplici0/dpp/internal/nutrition"
	"github.com/Simplici0/dpp/internal/passport"
)

const fieldInputPrefix = "field_"

// parsePassportForm reads the common passport fields, the category template
// fields and, for wine, the nutrition declaration.
func parsePassportForm(r *http.Request, category passport.Category) (*passport.Passport, error) {
	tpl := passport.TemplateFor(category)

	raw := make(map[string]string, len(tpl.Fields))
	for _, f := range tpl.Fields {
		raw[f.Key] = r.FormValue(fieldInputPrefix + f.Key)
	}

	p := &passport.Passport{
		Category:     category,
		ProductName:  strings.TrimSpace(r.FormValue("product_name")),
		Manufacturer: strings.TrimSpace(r.FormValue("manufacturer")),
		Status:       passport.StatusDraft,
		Fields:       tpl.Filter(raw),
	}

	if category == passport.CategoryWine {
		wine, err := parseWineForm(r)
		p.Wine = wine
		if err != nil {
			return p, err
		}
	}

	if p.ProductName == "" {
		return p, fmt.Errorf("product_name is required")
	}
	if err := tpl.Validate(p.Fields); err != nil {
		return p, err
	}

	return p, nil
}

// parseWineForm reads nutrition inputs, the displayed derived values and their
// manual flags, then recalculates everything that is not overridden.
func parseWineForm(r *http.Request) (*passport.WineDetails, error) {
	w := &passport.WineDetails{
		UseManualGlycerine: r.FormValue("use_manual_glycerine") == "1",
		Overrides: nutrition.Overrides{
			EnergyKcal:    r.FormValue("energy_kcal_manual") == "1",
			EnergyKj:      r.FormValue("energy_kj_manual") == "1",
			Carbohydrates: r.FormValue("carbohydrates_manual") == "1",
			Sugar:         r.FormValue("sugar_manual") == "1",
		},
	}

	var err error
	if w.AlcoholPercent, err = parseOptionalPercent(r.FormValue("alcohol_percent"), "alcohol_percent"); err != nil {
		return w, err
	}
	if w.ResidualSugar, err = parseOptionalNonNegativeFloat(r.FormValue("residual_sugar"), "residual_sugar"); err != nil {
		return w, err
	}
	if w.TotalAcidity, err = parseOptionalNonNegativeFloat(r.FormValue("total_acidity"), "total_acidity"); err != nil {
		return w, err
	}
	if raw := strings.TrimSpace(r.FormValue("glycerine")); raw != "" {
		g, err := parseNonNegativeFloat(raw, "glycerine")
		if err != nil {
			return w, err
		}
		w.ManualGlycerine = &g
	}

	manual := []struct {
		field    string
		override bool
		dst      *float64
	}{
		{"energy_kcal", w.Overrides.EnergyKcal, &w.EnergyKcal},
		{"energy_kj", w.Overrides.EnergyKj, &w.EnergyKj},
		{"carbohydrates", w.Overrides.Carbohydrates, &w.Carbohydrates},
		{"sugar", w.Overrides.Sugar, &w.Sugar},
	}
	for _, m := range manual {
		if !m.override {
			continue
		}
		raw := strings.TrimSpace(r.FormValue(m.field))
		if raw == "" {
			return w, fmt.Errorf("%s is required when %s_manual is set", m.field, m.field)
		}
		if *m.dst, err = parseNonNegativeFloat(raw, m.field); err != nil {
			return w, err
		}
	}

	w.Recalculate()
	return w, nil
}

// checkWineInputs applies the request-boundary rules on top of the
// calculator's own finiteness check.
func checkWineInputs(in nutrition.Inputs) error {
	if err := nutrition.Validate(in); err != nil {
		return err
	}
	if in.AlcoholPercent < 0 || in.AlcoholPercent > 100 {
		return fmt.Errorf("alcohol_percent must be between 0 and 100")
	}
	if in.ResidualSugar < 0 {
		return fmt.Errorf("residual_sugar must be greater than or equal to 0")
	}
	if in.TotalAcidity < 0 {
		return fmt.Errorf("total_acidity must be greater than or equal to 0")
	}
	if in.Glycerine != nil && *in.Glycerine < 0 {
		return fmt.Errorf("glycerine must be greater than or equal to 0")
	}
	return nil
}

func parseFiniteFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a finite number", field)
	}
	return value, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := parseFiniteFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parseOptionalNonNegativeFloat(raw, field string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return parseNonNegativeFloat(raw, field)
}

func parseOptionalPercent(raw, field string) (float64, error) {
	value, err := parseOptionalNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100", field)
	}
	return value, nil
}
