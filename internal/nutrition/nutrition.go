package nutrition

import "math"

// Energy factors in kcal per gram, per EU Regulation 1169/2011 Annex XIV.
const (
	kcalPerGramAlcohol   = 7.0
	kcalPerGramSugar     = 4.0
	kcalPerGramAcid      = 3.12
	kcalPerGramGlycerine = 2.4

	// kJPerKcal converts the already-rounded kcal value to kJ.
	kJPerKcal = 4.184

	// ethanolDensity is g/ml; it also serves as the glycerine estimate in g/L per % vol.
	ethanolDensity = 0.789
)

// Inputs holds the raw wine measurements used to derive nutrition facts.
type Inputs struct {
	AlcoholPercent float64 // % vol
	ResidualSugar  float64 // g/L
	TotalAcidity   float64 // g/L as tartaric acid

	// Glycerine in g/L. Only consulted when UseManualGlycerine is set.
	Glycerine          *float64
	UseManualGlycerine bool
}

// Results contains the derived nutrition facts per 100ml.
type Results struct {
	Glycerine     float64 // g/L, 1 decimal
	EnergyKcal    float64
	EnergyKj      float64
	Carbohydrates float64 // g, 1 decimal
	Sugar         float64 // g, 1 decimal
}

// CalculateDefaultGlycerine estimates glycerine in g/L from the alcohol content.
func CalculateDefaultGlycerine(alcoholPercent float64) float64 {
	return round1(alcoholPercent * ethanolDensity)
}

// CalculateWineNutrition derives energy, carbohydrates and sugar per 100ml.
// It is total over all float64 inputs: NaN and Inf propagate to the results.
func CalculateWineNutrition(in Inputs) Results {
	glycerine := CalculateDefaultGlycerine(in.AlcoholPercent)
	if in.UseManualGlycerine && in.Glycerine != nil {
		glycerine = *in.Glycerine
	}

	alcoholGrams := in.AlcoholPercent * ethanolDensity
	sugarGrams := in.ResidualSugar / 10
	acidityGrams := in.TotalAcidity / 10
	glycerineGrams := glycerine / 10

	energyKcal := math.Round(
		alcoholGrams*kcalPerGramAlcohol +
			sugarGrams*kcalPerGramSugar +
			acidityGrams*kcalPerGramAcid +
			glycerineGrams*kcalPerGramGlycerine,
	)

	return Results{
		Glycerine:     round1(glycerine),
		EnergyKcal:    energyKcal,
		EnergyKj:      KcalToKj(energyKcal),
		Carbohydrates: round1(sugarGrams + glycerineGrams),
		Sugar:         round1(sugarGrams),
	}
}

// KcalToKj converts kcal to kJ rounded to the nearest integer.
func KcalToKj(kcal float64) float64 {
	return math.Round(kcal * kJPerKcal)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
