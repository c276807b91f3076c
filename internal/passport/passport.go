package passport

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Simplici0/dpp/internal/nutrition"
)

// Status is the publication state of a passport.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Passport is a digital product passport for one product.
type Passport struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug"`
	Category     Category          `json:"category"`
	ProductName  string            `json:"product_name"`
	Manufacturer string            `json:"manufacturer"`
	Status       Status            `json:"status"`
	Fields       map[string]string `json:"fields"`
	Wine         *WineDetails      `json:"wine,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// WineDetails holds the nutrition declaration of a wine passport.
type WineDetails struct {
	AlcoholPercent     float64  `json:"alcohol_percent"`
	ResidualSugar      float64  `json:"residual_sugar"`
	TotalAcidity       float64  `json:"total_acidity"`
	ManualGlycerine    *float64 `json:"manual_glycerine,omitempty"`
	UseManualGlycerine bool     `json:"use_manual_glycerine"`

	Glycerine float64 `json:"glycerine"`
	nutrition.Values
	Overrides nutrition.Overrides `json:"overrides"`
}

// Inputs maps the stored measurements to calculator inputs.
func (w *WineDetails) Inputs() nutrition.Inputs {
	return nutrition.Inputs{
		AlcoholPercent:     w.AlcoholPercent,
		ResidualSugar:      w.ResidualSugar,
		TotalAcidity:       w.TotalAcidity,
		Glycerine:          w.ManualGlycerine,
		UseManualGlycerine: w.UseManualGlycerine,
	}
}

// Recalculate refreshes the derived values, leaving manually overridden ones untouched.
func (w *WineDetails) Recalculate() {
	fresh := nutrition.CalculateWineNutrition(w.Inputs())
	w.Glycerine = fresh.Glycerine
	w.Values = nutrition.Reconcile(w.Values, w.Overrides, fresh)
}

// Validate checks the passport against its category template.
func (p *Passport) Validate() error {
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return err
	}
	if strings.TrimSpace(p.ProductName) == "" {
		return fmt.Errorf("product_name is required")
	}
	if p.Status != StatusDraft && p.Status != StatusPublished {
		return fmt.Errorf("status must be draft or published")
	}
	if err := TemplateFor(p.Category).Validate(p.Fields); err != nil {
		return err
	}
	if p.Category == CategoryWine {
		if p.Wine == nil {
			return fmt.Errorf("wine passports require nutrition data")
		}
		if err := nutrition.Validate(p.Wine.Inputs()); err != nil {
			return err
		}
		// Stored even when unused, and JSON has no encoding for NaN or Inf.
		if g := p.Wine.ManualGlycerine; g != nil && (math.IsNaN(*g) || math.IsInf(*g, 0)) {
			return fmt.Errorf("manual_glycerine: %w", nutrition.ErrNonFinite)
		}
	} else if p.Wine != nil {
		return fmt.Errorf("nutrition data is only supported for wine passports")
	}
	return nil
}

// Published reports whether the passport is publicly visible.
func (p Passport) Published() bool {
	return p.Status == StatusPublished
}
