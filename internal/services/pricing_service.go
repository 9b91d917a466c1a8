// internal/services/pricing_service.go
package services

import (
	"github.com/shopspring/decimal"

	"github.com/javajoker/jewelry-atelier/internal/models"
)

var basePrice = decimal.NewFromInt(1000)

type PriceQuote struct {
	Material           models.Material `json:"material"`
	Gemstone           models.Gemstone `json:"gemstone"`
	BasePrice          float64         `json:"basePrice"`
	MaterialMultiplier float64         `json:"materialMultiplier"`
	GemstoneMultiplier float64         `json:"gemstoneMultiplier"`
	Price              float64         `json:"price"`
}

// QuotePrice returns base × material × (1 + gemstone), rounded to cents.
// Unknown materials price as gold and unknown gemstones as none.
func QuotePrice(material models.Material, gemstone models.Gemstone) PriceQuote {
	materialMultiplier := decimal.NewFromInt(1)
	if opt, ok := models.LookupMaterial(material); ok {
		materialMultiplier = opt.PriceMultiplier
	}
	gemstoneMultiplier := decimal.Zero
	if opt, ok := models.LookupGemstone(gemstone); ok {
		gemstoneMultiplier = opt.PriceMultiplier
	}

	price := basePrice.
		Mul(materialMultiplier).
		Mul(decimal.NewFromInt(1).Add(gemstoneMultiplier)).
		Round(2)

	return PriceQuote{
		Material:           material,
		Gemstone:           gemstone,
		BasePrice:          basePrice.InexactFloat64(),
		MaterialMultiplier: materialMultiplier.InexactFloat64(),
		GemstoneMultiplier: gemstoneMultiplier.InexactFloat64(),
		Price:              price.InexactFloat64(),
	}
}
