package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func postNutrition(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := &server{logger: zaptest.NewLogger(t)}
	req := httptest.NewRequest(http.MethodPost, "/api/nutrition/wine", strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.handleWineNutrition(rr, req)
	return rr
}

func TestHandleWineNutrition(t *testing.T) {
	rr := postNutrition(t, `{"alcohol_percent":13,"residual_sugar":5,"total_acidity":6,"glycerine":999,"use_manual_glycerine":false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var got wineNutritionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, wineNutritionResponse{
		Glycerine:     10.3,
		EnergyKcal:    78,
		EnergyKj:      326,
		Carbohydrates: 1.5,
		Sugar:         0.5,
	}, got)
}

func TestHandleWineNutrition_ManualGlycerine(t *testing.T) {
	rr := postNutrition(t, `{"glycerine":1000,"use_manual_glycerine":true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var got wineNutritionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 240.0, got.EnergyKcal)
	assert.Equal(t, 1004.0, got.EnergyKj)
	assert.Equal(t, 100.0, got.Carbohydrates)
}

func TestHandleWineNutrition_RejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"malformed":        `{"alcohol_percent":`,
		"unknown field":    `{"alcohol":13}`,
		"wrong type":       `{"alcohol_percent":"13"}`,
		"negative sugar":   `{"residual_sugar":-1}`,
		"alcohol over 100": `{"alcohol_percent":101}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rr := postNutrition(t, body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var payload map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
			assert.NotEmpty(t, payload["error"])
		})
	}
}
