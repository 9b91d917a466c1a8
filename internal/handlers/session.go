// internal/handlers/session.go
package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/jewelry-atelier/internal/appstate"
	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/models"
	"github.com/javajoker/jewelry-atelier/internal/services"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

// SessionHandler exposes the per-session state store over HTTP.
type SessionHandler struct {
	productService  *services.ProductService
	checkoutService *services.CheckoutService
}

type UpdateUserRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name" validate:"required,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

// SaveDesignRequest saves either an entry of the generation history or an
// explicit design.
type SaveDesignRequest struct {
	GeneratedImageID string             `json:"generatedImageId"`
	Name             string             `json:"name" validate:"required_without=GeneratedImageID,max=255"`
	Type             models.JewelryType `json:"type" validate:"omitempty,design_type"`
	Material         models.Material    `json:"material" validate:"omitempty,material"`
	Gemstone         models.Gemstone    `json:"gemstone" validate:"omitempty,gemstone"`
	ImageURL         string             `json:"imageUrl" validate:"omitempty,url"`
	Prompt           string             `json:"prompt"`
	Description      string             `json:"description" validate:"max=2000"`
}

type AddToCartRequest struct {
	DesignID      string               `json:"designId" validate:"required"`
	Customization models.Customization `json:"customization"`
	Quantity      int                  `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=99"`
}

type SetFiltersRequest struct {
	Type       []models.JewelryType `json:"type" validate:"dive,jewelry_type"`
	Material   []models.Material    `json:"material" validate:"dive,material"`
	Gemstone   []models.Gemstone    `json:"gemstone" validate:"dive,gemstone"`
	PriceRange *[2]float64          `json:"priceRange"`
	SortBy     models.SortBy        `json:"sortBy" validate:"omitempty,sort_by"`
}

type AddGeneratedImageRequest struct {
	ImageURL      string `json:"imageUrl" validate:"required,url"`
	OriginalURL   string `json:"originalUrl" validate:"omitempty,url"`
	PublicID      string `json:"publicId"`
	ThumbnailURL  string `json:"thumbnailUrl" validate:"omitempty,url"`
	RevisedPrompt string `json:"revisedPrompt"`
	Type          string `json:"type" validate:"omitempty,jewelry_type"`
	Material      string `json:"material" validate:"omitempty,material"`
	Gemstone      string `json:"gemstone" validate:"omitempty,gemstone"`
}

type AddGalleryImageRequest struct {
	ID               string             `json:"id"`
	URL              string             `json:"url" validate:"required,url"`
	ThumbnailURL     string             `json:"thumbnailUrl"`
	Description      string             `json:"description"`
	Photographer     string             `json:"photographer"`
	PhotographerURL  string             `json:"photographerUrl"`
	DownloadLocation string             `json:"downloadLocation"`
	Source           string             `json:"source"`
	Type             models.JewelryType `json:"type" validate:"omitempty,jewelry_type"`
}

func NewSessionHandler(productService *services.ProductService, checkoutService *services.CheckoutService) *SessionHandler {
	return &SessionHandler{
		productService:  productService,
		checkoutService: checkoutService,
	}
}

// GET /api/session/state
func (h *SessionHandler) GetState(c *gin.Context) {
	store := stateStore(c)
	utils.SuccessResponse(c, gin.H{
		"sessionId": utils.GetSessionID(c),
		"state":     store.Snapshot(),
	})
}

// POST /api/session/theme/toggle
func (h *SessionHandler) ToggleTheme(c *gin.Context) {
	state := stateStore(c).ToggleTheme()
	utils.SuccessResponse(c, gin.H{"theme": state.Theme})
}

// PUT /api/session/user
func (h *SessionHandler) SetUser(c *gin.Context) {
	var req UpdateUserRequest
	if !validated(c, &req) {
		return
	}

	if req.ID == "" {
		req.ID = utils.NewID()
	}
	state := stateStore(c).SetUser(&models.User{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	utils.SuccessResponse(c, gin.H{"user": state.User})
}

// DELETE /api/session/user
func (h *SessionHandler) ClearUser(c *gin.Context) {
	stateStore(c).SetUser(nil)
	utils.SuccessResponse(c, gin.H{"user": nil})
}

// GET /api/session/designs
func (h *SessionHandler) GetDesigns(c *gin.Context) {
	state := stateStore(c).Snapshot()
	designs := services.FilterDesigns(state.Designs, state.Filters)
	utils.SuccessResponse(c, gin.H{
		"designs": designs,
		"filters": state.Filters,
		"count":   len(designs),
	})
}

// POST /api/session/designs
func (h *SessionHandler) AddDesign(c *gin.Context) {
	var req SaveDesignRequest
	if !validated(c, &req) {
		return
	}

	store := stateStore(c)
	var design models.Design

	if req.GeneratedImageID != "" {
		generated, ok := findGenerated(store.Snapshot(), req.GeneratedImageID)
		if !ok {
			utils.NotFoundResponse(c, i18n.KeyGeneratedImageNotFound)
			return
		}
		design = designFromGenerated(generated)
		if req.Name != "" {
			design.Name = req.Name
		}
	} else {
		if req.Type == "" {
			req.Type = models.JewelryTypeRing
		}
		if req.Material == "" {
			req.Material = models.MaterialGold
		}
		if req.Gemstone == "" {
			req.Gemstone = models.GemstoneNone
		}
		quote := services.QuotePrice(req.Material, req.Gemstone)
		design = models.Design{
			ID:          utils.NewID(),
			Name:        req.Name,
			Type:        req.Type,
			Material:    req.Material,
			Gemstone:    req.Gemstone,
			ImageURL:    req.ImageURL,
			Prompt:      req.Prompt,
			Description: req.Description,
			Price:       quote.Price,
			CreatedAt:   time.Now().UTC(),
		}
	}

	store.AddDesign(design)
	utils.CreatedResponse(c, gin.H{"design": design})
}

// DELETE /api/session/designs/:id
func (h *SessionHandler) RemoveDesign(c *gin.Context) {
	store := stateStore(c)
	id := c.Param("id")
	if _, ok := store.Snapshot().Design(id); !ok {
		utils.NotFoundResponse(c, i18n.KeyDesignNotFound)
		return
	}

	state := store.RemoveDesign(id)
	utils.SuccessResponse(c, gin.H{"designs": state.Designs})
}

// POST /api/session/designs/:id/favorite
func (h *SessionHandler) ToggleFavorite(c *gin.Context) {
	store := stateStore(c)
	id := c.Param("id")
	if _, ok := store.Snapshot().Design(id); !ok {
		utils.NotFoundResponse(c, i18n.KeyDesignNotFound)
		return
	}

	design, _ := store.ToggleFavorite(id).Design(id)
	utils.SuccessResponse(c, gin.H{"design": design})
}

// POST /api/session/designs/:id/publish
func (h *SessionHandler) PublishDesign(c *gin.Context) {
	design, ok := stateStore(c).Snapshot().Design(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyDesignNotFound)
		return
	}

	product, err := h.productService.PublishDesign(c.Request.Context(), design)
	if err != nil {
		storageErrorResponse(c, err, i18n.KeyProductCreateFailed)
		return
	}

	utils.CreatedResponse(c, gin.H{"product": product})
}

// GET /api/session/cart
func (h *SessionHandler) GetCart(c *gin.Context) {
	cart := stateStore(c).Snapshot().Cart
	utils.SuccessResponse(c, gin.H{
		"items":   cart,
		"summary": h.checkoutService.Quote(cart),
	})
}

// POST /api/session/cart
func (h *SessionHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if !validated(c, &req) {
		return
	}
	if req.Customization.Finish != "" && !models.ValidFinish(req.Customization.Finish) {
		utils.ValidationErrorResponse(c, "", []utils.ValidationError{invalidQuery("finish", string(req.Customization.Finish))})
		return
	}
	if len(req.Customization.Engraving) > 50 {
		utils.ValidationErrorResponse(c, "", []utils.ValidationError{{
			Field: "engraving", Tag: "max", Message: "engraving must be at most 50",
		}})
		return
	}

	store := stateStore(c)
	design, ok := store.Snapshot().Design(req.DesignID)
	if !ok {
		product, err := h.productService.FindProduct(c.Request.Context(), req.DesignID)
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, i18n.KeyDesignNotFound)
			return
		}
		if err != nil {
			storageErrorResponse(c, err, i18n.KeyProductReadFailed)
			return
		}
		design = *product
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	state := store.AddToCart(models.CartItem{
		Design:        design,
		Customization: req.Customization,
		Quantity:      req.Quantity,
	})

	item, _ := state.CartItem(design.ID)
	utils.SuccessResponse(c, gin.H{
		"item":      item,
		"cartCount": state.CartCount(),
	})
}

// PATCH /api/session/cart/:designId
func (h *SessionHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if !validated(c, &req) {
		return
	}

	store := stateStore(c)
	designID := c.Param("designId")
	if _, ok := store.Snapshot().CartItem(designID); !ok {
		utils.NotFoundResponse(c, i18n.KeyCartItemNotFound)
		return
	}

	state := store.UpdateCartQuantity(designID, *req.Quantity)
	utils.SuccessResponse(c, gin.H{
		"items":     state.Cart,
		"cartCount": state.CartCount(),
	})
}

// DELETE /api/session/cart/:designId
func (h *SessionHandler) RemoveFromCart(c *gin.Context) {
	store := stateStore(c)
	designID := c.Param("designId")
	if _, ok := store.Snapshot().CartItem(designID); !ok {
		utils.NotFoundResponse(c, i18n.KeyCartItemNotFound)
		return
	}

	state := store.RemoveFromCart(designID)
	utils.SuccessResponse(c, gin.H{
		"items":     state.Cart,
		"cartCount": state.CartCount(),
	})
}

// DELETE /api/session/cart
func (h *SessionHandler) ClearCart(c *gin.Context) {
	stateStore(c).ClearCart()
	utils.SuccessResponse(c, gin.H{"items": []models.CartItem{}, "cartCount": 0})
}

// PUT /api/session/filters
func (h *SessionHandler) SetFilters(c *gin.Context) {
	var req SetFiltersRequest
	if !validated(c, &req) {
		return
	}
	if r := req.PriceRange; r != nil && (r[0] < 0 || r[0] > r[1]) {
		utils.ValidationErrorResponse(c, "", []utils.ValidationError{priceRangeProblem()})
		return
	}

	state := stateStore(c).SetFilters(models.FilterOptions{
		Type:       req.Type,
		Material:   req.Material,
		Gemstone:   req.Gemstone,
		PriceRange: req.PriceRange,
		SortBy:     req.SortBy,
	})
	utils.SuccessResponse(c, gin.H{"filters": state.Filters})
}

// POST /api/session/gallery
func (h *SessionHandler) AddGalleryImage(c *gin.Context) {
	var req AddGalleryImageRequest
	if !validated(c, &req) {
		return
	}

	if req.ID == "" {
		req.ID = utils.NewID()
	}
	if req.ThumbnailURL == "" {
		req.ThumbnailURL = req.URL
	}
	image := models.GalleryImage(req)
	state := stateStore(c).AddGalleryImage(image)
	utils.CreatedResponse(c, gin.H{"image": image, "count": len(state.GalleryImages)})
}

// POST /api/session/generated
func (h *SessionHandler) AddGeneratedImage(c *gin.Context) {
	var req AddGeneratedImageRequest
	if !validated(c, &req) {
		return
	}

	image := models.GeneratedImage{
		ID:            utils.NewID(),
		ImageURL:      req.ImageURL,
		OriginalURL:   req.OriginalURL,
		PublicID:      req.PublicID,
		ThumbnailURL:  req.ThumbnailURL,
		RevisedPrompt: req.RevisedPrompt,
		Type:          req.Type,
		Material:      req.Material,
		Gemstone:      req.Gemstone,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339Nano),
	}
	stateStore(c).AddGeneratedImage(image)
	utils.CreatedResponse(c, gin.H{"image": image})
}

// DELETE /api/session/generated/:id
func (h *SessionHandler) RemoveGeneratedImage(c *gin.Context) {
	store := stateStore(c)
	id := c.Param("id")
	if _, ok := findGenerated(store.Snapshot(), id); !ok {
		utils.NotFoundResponse(c, i18n.KeyGeneratedImageNotFound)
		return
	}

	state := store.RemoveGeneratedImage(id)
	utils.SuccessResponse(c, gin.H{"generatedImages": state.GeneratedImages})
}

// DELETE /api/session/generated
func (h *SessionHandler) ClearGeneratedImages(c *gin.Context) {
	stateStore(c).ClearGeneratedImages()
	utils.SuccessResponse(c, gin.H{"generatedImages": []models.GeneratedImage{}})
}

// validated binds and validates req, writing a 400 on failure.
func validated(c *gin.Context, req interface{}) bool {
	validationErrors, ok := bindAndValidate(c, req)
	if !ok && validationErrors != nil {
		utils.ValidationErrorResponse(c, "", validationErrors)
	}
	return ok
}

func findGenerated(state appstate.State, id string) (models.GeneratedImage, bool) {
	for _, img := range state.GeneratedImages {
		if img.ID == id {
			return img, true
		}
	}
	return models.GeneratedImage{}, false
}

// designFromGenerated names and prices a generation history entry.
func designFromGenerated(img models.GeneratedImage) models.Design {
	material := models.Material(img.Material)
	gemstone := models.Gemstone(img.Gemstone)

	materialName := img.Material
	if opt, ok := models.LookupMaterial(material); ok {
		materialName = opt.Name
	}
	gemstoneName := img.Gemstone
	if opt, ok := models.LookupGemstone(gemstone); ok {
		gemstoneName = opt.Name
	}

	return models.Design{
		ID:        utils.NewID(),
		Name:      fmt.Sprintf("%s %s with %s", materialName, img.Type, gemstoneName),
		Type:      models.JewelryType(img.Type),
		Material:  material,
		Gemstone:  gemstone,
		ImageURL:  img.ImageURL,
		Prompt:    img.RevisedPrompt,
		Price:     services.QuotePrice(material, gemstone).Price,
		CreatedAt: time.Now().UTC(),
	}
}
