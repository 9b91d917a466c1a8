// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/services"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filters, problems := parseFilterQuery(c)
	if len(problems) > 0 {
		utils.ValidationErrorResponse(c, "", problems)
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), filters)
	if err != nil {
		storageErrorResponse(c, err, i18n.KeyProductReadFailed)
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	validationErrors, ok := bindAndValidate(c, &req)
	if !ok {
		if validationErrors == nil {
			return
		}
		if utils.HasRequiredFailure(validationErrors, "name", "price") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductMissingFields), validationErrors)
			return
		}
		utils.ValidationErrorResponse(c, "", validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		storageErrorResponse(c, err, i18n.KeyProductCreateFailed)
		return
	}

	utils.CreatedResponse(c, gin.H{"product": product})
}
