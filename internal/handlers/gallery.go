// internal/handlers/gallery.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/models"
	"github.com/javajoker/jewelry-atelier/internal/services"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

type GalleryHandler struct {
	galleryService *services.GalleryService
}

type TrackDownloadRequest struct {
	DownloadLocation string `json:"downloadLocation" validate:"required"`
}

func NewGalleryHandler(galleryService *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
	}
}

// GET /api/gallery
func (h *GalleryHandler) GetGalleryImages(c *gin.Context) {
	params := utils.GetGalleryParams(c)
	if params.Type != "" && utils.ValidateVar(params.Type, "jewelry_type") != nil {
		utils.ValidationErrorResponse(c, "", []utils.ValidationError{invalidQuery("type", params.Type)})
		return
	}

	store := stateStore(c)
	if store != nil {
		defer store.BeginLoading()()
	}

	result := h.galleryService.Search(c.Request.Context(), services.GallerySearchParams{
		Type:  models.JewelryType(params.Type),
		Query: params.Query,
		Count: params.Count,
	})

	if store != nil {
		store.SetGalleryImages(result.Images)
	}

	utils.SuccessResponse(c, gin.H{
		"images": result.Images,
		"count":  len(result.Images),
		"page":   params.Page,
		"type":   optional(params.Type),
		"query":  optional(params.Query),
		"source": result.Source,
	})
}

// POST /api/gallery
func (h *GalleryHandler) TrackDownload(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req TrackDownloadRequest
	if validationErrors, ok := bindAndValidate(c, &req); !ok {
		if validationErrors != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyGalleryMissingLocation), validationErrors)
		}
		return
	}

	h.galleryService.TrackDownload(req.DownloadLocation)
	utils.MessageResponse(c, i18n.T(lang, i18n.KeyGalleryDownloadTracked))
}

func optional(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
