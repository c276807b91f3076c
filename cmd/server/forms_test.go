package main

import (
	"math"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/dpp/internal/nutrition"
	"github.com/Simplici0/dpp/internal/passport"
)

func parseWine(t *testing.T, form url.Values) (*passport.WineDetails, error) {
	t.Helper()
	req := httptest.NewRequest("POST", "/passports", nil)
	req.Form = form
	return parseWineForm(req)
}

func TestParseWineForm_ComputesDerivedValues(t *testing.T) {
	w, err := parseWine(t, url.Values{
		"alcohol_percent": {"13"},
		"residual_sugar":  {"5"},
		"total_acidity":   {"6"},
		"energy_kcal":     {"1"},
	})
	require.NoError(t, err)

	assert.Nil(t, w.ManualGlycerine)
	assert.InDelta(t, 10.3, w.Glycerine, 1e-9)
	assert.Equal(t, nutrition.Values{EnergyKcal: 78, EnergyKj: 326, Carbohydrates: 1.5, Sugar: 0.5}, w.Values)
}

func TestParseWineForm_EmptyInputsReadAsZero(t *testing.T) {
	w, err := parseWine(t, url.Values{})
	require.NoError(t, err)
	assert.Equal(t, nutrition.Values{}, w.Values)
	assert.Equal(t, 0.0, w.Glycerine)
}

func TestParseWineForm_ManualGlycerineAndOverrides(t *testing.T) {
	w, err := parseWine(t, url.Values{
		"alcohol_percent":      {"0"},
		"residual_sugar":       {"0"},
		"total_acidity":        {"0"},
		"glycerine":            {"1000"},
		"use_manual_glycerine": {"1"},
		"energy_kj":            {"1200"},
		"energy_kj_manual":     {"1"},
	})
	require.NoError(t, err)

	require.NotNil(t, w.ManualGlycerine)
	assert.Equal(t, 1000.0, *w.ManualGlycerine)
	assert.Equal(t, 240.0, w.EnergyKcal)
	assert.Equal(t, 1200.0, w.EnergyKj)
	assert.True(t, w.Overrides.EnergyKj)
}

func TestParseWineForm_Errors(t *testing.T) {
	tests := map[string]struct {
		form url.Values
		want string
	}{
		"non numeric":     {url.Values{"alcohol_percent": {"abc"}}, "alcohol_percent must be numeric"},
		"nan":             {url.Values{"residual_sugar": {"NaN"}}, "residual_sugar must be a finite number"},
		"infinite":        {url.Values{"total_acidity": {"+Inf"}}, "total_acidity must be a finite number"},
		"negative":        {url.Values{"residual_sugar": {"-2"}}, "residual_sugar must be greater than or equal to 0"},
		"alcohol over":    {url.Values{"alcohol_percent": {"120"}}, "alcohol_percent must be between 0 and 100"},
		"override empty":  {url.Values{"sugar_manual": {"1"}}, "sugar is required when sugar_manual is set"},
		"bad glycerine":   {url.Values{"glycerine": {"x"}}, "glycerine must be numeric"},
		"override bad kj": {url.Values{"energy_kj_manual": {"1"}, "energy_kj": {"lots"}}, "energy_kj must be numeric"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseWine(t, tt.form)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestParsePassportForm_FiltersTemplateFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/passports", nil)
	req.Form = url.Values{
		"product_name":         {"  Pack 75 "},
		"field_chemistry":      {"LFP"},
		"field_capacity_kwh":   {"75"},
		"field_not_a_template": {"ignored"},
	}

	p, err := parsePassportForm(req, passport.CategoryBattery)
	require.NoError(t, err)
	assert.Equal(t, "Pack 75", p.ProductName)
	assert.Equal(t, map[string]string{"chemistry": "LFP", "capacity_kwh": "75"}, p.Fields)
	assert.Nil(t, p.Wine)
}

func TestParsePassportForm_RequiresTemplateFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/passports", nil)
	req.Form = url.Values{"product_name": {"Pack"}}

	_, err := parsePassportForm(req, passport.CategoryBattery)
	assert.EqualError(t, err, "chemistry is required")

	req.Form = url.Values{"field_chemistry": {"LFP"}, "field_capacity_kwh": {"1"}}
	_, err = parsePassportForm(req, passport.CategoryBattery)
	assert.EqualError(t, err, "product_name is required")
}

func TestCheckWineInputs(t *testing.T) {
	assert.NoError(t, checkWineInputs(nutrition.Inputs{AlcoholPercent: 100}))
	assert.ErrorIs(t, checkWineInputs(nutrition.Inputs{AlcoholPercent: math.NaN()}), nutrition.ErrNonFinite)
	neg := -1.0
	assert.Error(t, checkWineInputs(nutrition.Inputs{Glycerine: &neg}))
}
