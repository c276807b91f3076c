package main

import (
	"encoding/json"
	"net/http"

	"github.com/Simplici0/dpp/internal/nutrition"
)

const maxNutritionRequestBytes = 4 << 10

type wineNutritionRequest struct {
	AlcoholPercent     float64  `json:"alcohol_percent"`
	ResidualSugar      float64  `json:"residual_sugar"`
	TotalAcidity       float64  `json:"total_acidity"`
	Glycerine          *float64 `json:"glycerine"`
	UseManualGlycerine bool     `json:"use_manual_glycerine"`
}

type wineNutritionResponse struct {
	Glycerine     float64 `json:"glycerine"`
	EnergyKcal    float64 `json:"energy_kcal"`
	EnergyKj      float64 `json:"energy_kj"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugar         float64 `json:"sugar"`
}

// handleWineNutrition backs the passport form's live recalculation.
func (s *server) handleWineNutrition(w http.ResponseWriter, r *http.Request) {
	var req wineNutritionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxNutritionRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in := nutrition.Inputs{
		AlcoholPercent:     req.AlcoholPercent,
		ResidualSugar:      req.ResidualSugar,
		TotalAcidity:       req.TotalAcidity,
		Glycerine:          req.Glycerine,
		UseManualGlycerine: req.UseManualGlycerine,
	}
	if err := checkWineInputs(in); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := nutrition.CalculateWineNutrition(in)
	writeJSON(w, http.StatusOK, wineNutritionResponse{
		Glycerine:     res.Glycerine,
		EnergyKcal:    res.EnergyKcal,
		EnergyKj:      res.EnergyKj,
		Carbohydrates: res.Carbohydrates,
		Sugar:         res.Sugar,
	})
}
