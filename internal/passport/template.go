package passport

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldKind controls how a template field is rendered and validated.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindNumber FieldKind = "number"
)

// FieldDef describes one category-specific passport field.
type FieldDef struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
}

// Template is the ordered set of fields a category's passport carries.
type Template struct {
	Category Category
	Title    string
	Fields   []FieldDef
}

var templates = map[Category]Template{
	CategoryWine: {Title: "Wine", Fields: []FieldDef{
		{Key: "grape_variety", Label: "Grape variety", Kind: KindText, Required: true},
		{Key: "vintage", Label: "Vintage", Kind: KindNumber},
		{Key: "region", Label: "Region of origin", Kind: KindText},
		{Key: "bottle_volume_ml", Label: "Bottle volume (ml)", Kind: KindNumber},
		{Key: "ingredients", Label: "Ingredients", Kind: KindText},
		{Key: "allergens", Label: "Allergens", Kind: KindText},
	}},
	CategoryBattery: {Title: "Battery", Fields: []FieldDef{
		{Key: "chemistry", Label: "Cell chemistry", Kind: KindText, Required: true},
		{Key: "capacity_kwh", Label: "Rated capacity (kWh)", Kind: KindNumber, Required: true},
		{Key: "nominal_voltage", Label: "Nominal voltage (V)", Kind: KindNumber},
		{Key: "carbon_footprint_kg", Label: "Carbon footprint (kg CO2e)", Kind: KindNumber},
		{Key: "recycled_content_percent", Label: "Recycled content (%)", Kind: KindNumber},
		{Key: "manufacturing_site", Label: "Manufacturing site", Kind: KindText},
	}},
	CategoryTextile: {Title: "Textiles", Fields: []FieldDef{
		{Key: "fiber_composition", Label: "Fiber composition", Kind: KindText, Required: true},
		{Key: "country_of_origin", Label: "Country of origin", Kind: KindText},
		{Key: "care_instructions", Label: "Care instructions", Kind: KindText},
		{Key: "recycled_content_percent", Label: "Recycled content (%)", Kind: KindNumber},
	}},
	CategoryElectronics: {Title: "Electronics", Fields: []FieldDef{
		{Key: "model_number", Label: "Model number", Kind: KindText, Required: true},
		{Key: "energy_class", Label: "Energy class", Kind: KindText},
		{Key: "repairability_score", Label: "Repairability score", Kind: KindNumber},
		{Key: "warranty_years", Label: "Warranty (years)", Kind: KindNumber},
	}},
	CategoryToys: {Title: "Toys", Fields: []FieldDef{
		{Key: "age_range", Label: "Age range", Kind: KindText, Required: true},
		{Key: "materials", Label: "Materials", Kind: KindText},
		{Key: "safety_warnings", Label: "Safety warnings", Kind: KindText},
	}},
	CategoryConstruction: {Title: "Construction products", Fields: []FieldDef{
		{Key: "product_type", Label: "Product type", Kind: KindText, Required: true},
		{Key: "declaration_of_performance", Label: "Declaration of performance", Kind: KindText},
		{Key: "fire_class", Label: "Reaction to fire class", Kind: KindText},
	}},
	CategoryFurniture: {Title: "Furniture", Fields: []FieldDef{
		{Key: "materials", Label: "Materials", Kind: KindText, Required: true},
		{Key: "dimensions", Label: "Dimensions", Kind: KindText},
		{Key: "recyclability", Label: "Recyclability", Kind: KindText},
	}},
	CategoryCosmetics: {Title: "Cosmetics", Fields: []FieldDef{
		{Key: "inci_ingredients", Label: "INCI ingredients", Kind: KindText, Required: true},
		{Key: "net_content", Label: "Net content", Kind: KindText},
		{Key: "period_after_opening_months", Label: "Period after opening (months)", Kind: KindNumber},
	}},
}

// TemplateFor returns the template of a category. Unknown categories get an empty template.
func TemplateFor(c Category) Template {
	t := templates[c]
	t.Category = c
	if t.Title == "" {
		t.Title = string(c)
	}
	return t
}

// Validate checks required fields and numeric kinds.
func (t Template) Validate(fields map[string]string) error {
	for _, f := range t.Fields {
		value := strings.TrimSpace(fields[f.Key])
		if value == "" {
			if f.Required {
				return fmt.Errorf("%s is required", f.Key)
			}
			continue
		}
		if f.Kind == KindNumber {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				return fmt.Errorf("%s must be numeric", f.Key)
			}
		}
	}
	return nil
}

// Filter keeps only the fields the template defines, trimmed, dropping empty values.
func (t Template) Filter(fields map[string]string) map[string]string {
	out := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		if v := strings.TrimSpace(fields[f.Key]); v != "" {
			out[f.Key] = v
		}
	}
	return out
}
