// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/jewelry-atelier/internal/models"
	"github.com/javajoker/jewelry-atelier/internal/services"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

type optionView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Color           string  `json:"color"`
	PriceMultiplier float64 `json:"priceMultiplier"`
}

// GET /api/catalog/options
func (h *CatalogHandler) GetOptions(c *gin.Context) {
	materials := make([]optionView, 0, len(models.Materials))
	for _, m := range models.Materials {
		materials = append(materials, optionView{
			ID:              string(m.ID),
			Name:            m.Name,
			Color:           m.Color,
			PriceMultiplier: m.PriceMultiplier.InexactFloat64(),
		})
	}

	gemstones := make([]optionView, 0, len(models.Gemstones))
	for _, g := range models.Gemstones {
		gemstones = append(gemstones, optionView{
			ID:              string(g.ID),
			Name:            g.Name,
			Color:           g.Color,
			PriceMultiplier: g.PriceMultiplier.InexactFloat64(),
		})
	}

	utils.SuccessResponse(c, gin.H{
		"materials":    materials,
		"gemstones":    gemstones,
		"designTypes":  models.DesignTypes,
		"catalogTypes": models.CatalogTypes,
		"finishes":     models.Finishes,
		"sizes":        models.Sizes,
	})
}

// GET /api/pricing/quote
func (h *CatalogHandler) GetPriceQuote(c *gin.Context) {
	material := c.DefaultQuery("material", string(models.MaterialGold))
	gemstone := c.DefaultQuery("gemstone", string(models.GemstoneNone))

	var problems []utils.ValidationError
	if utils.ValidateVar(material, "material") != nil {
		problems = append(problems, invalidQuery("material", material))
	}
	if utils.ValidateVar(gemstone, "gemstone") != nil {
		problems = append(problems, invalidQuery("gemstone", gemstone))
	}
	if len(problems) > 0 {
		utils.ValidationErrorResponse(c, "", problems)
		return
	}

	utils.SuccessResponse(c, services.QuotePrice(models.Material(material), models.Gemstone(gemstone)))
}
