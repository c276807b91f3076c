package passport

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned for categories outside the supported set.
var ErrInvalidCategory = errors.New("invalid category")

// Category is a product category with its own passport template.
type Category string

const (
	CategoryWine         Category = "wine"
	CategoryBattery      Category = "battery"
	CategoryTextile      Category = "textile"
	CategoryElectronics  Category = "electronics"
	CategoryToys         Category = "toys"
	CategoryConstruction Category = "construction"
	CategoryFurniture    Category = "furniture"
	CategoryCosmetics    Category = "cosmetics"
)

var categories = []Category{
	CategoryWine,
	CategoryBattery,
	CategoryTextile,
	CategoryElectronics,
	CategoryToys,
	CategoryConstruction,
	CategoryFurniture,
	CategoryCosmetics,
}

// Categories returns the supported categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory validates raw input against the supported categories.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

// Label is the human-readable category name.
func (c Category) Label() string {
	return TemplateFor(c).Title
}
