// internal/models/cart.go
package models

type Customization struct {
	Size      interface{} `json:"size,omitempty"`
	Engraving string      `json:"engraving,omitempty"`
	Finish    Finish      `json:"finish,omitempty"`
}

// CartItem is keyed by Design.ID inside a cart.
type CartItem struct {
	Design        Design        `json:"design"`
	Customization Customization `json:"customization"`
	Quantity      int           `json:"quantity"`
}

// FilterOptions is a query descriptor over designs. Empty sets match all.
type FilterOptions struct {
	Type       []JewelryType `json:"type,omitempty"`
	Material   []Material    `json:"material,omitempty"`
	Gemstone   []Gemstone    `json:"gemstone,omitempty"`
	PriceRange *[2]float64   `json:"priceRange,omitempty"`
	SortBy     SortBy        `json:"sortBy,omitempty"`
}

func (f FilterOptions) IsZero() bool {
	return len(f.Type) == 0 && len(f.Material) == 0 && len(f.Gemstone) == 0 &&
		f.PriceRange == nil && f.SortBy == ""
}
