// internal/handlers/design.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/services"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

type DesignHandler struct {
	designService *services.DesignService
}

func NewDesignHandler(designService *services.DesignService) *DesignHandler {
	return &DesignHandler{
		designService: designService,
	}
}

// POST /api/generate-design
func (h *DesignHandler) GenerateDesign(c *gin.Context) {
	var req services.GenerateDesignRequest
	if !h.validateDesignRequest(c, &req) {
		return
	}

	store := stateStore(c)
	if store != nil {
		defer store.BeginGenerating()()
	}

	design, err := h.designService.GenerateDesign(c.Request.Context(), &req)
	if err != nil {
		upstreamErrorResponse(c, err)
		return
	}

	if store != nil {
		store.AddGeneratedImage(design.ToGeneratedImage())
	}

	utils.SuccessResponse(c, design)
}

// POST /api/generate-design/variations
func (h *DesignHandler) GenerateVariations(c *gin.Context) {
	var req services.GenerateVariationsRequest
	if !h.validateDesignRequest(c, &req) {
		return
	}
	if req.Count == 0 {
		req.Count = 2
	}

	store := stateStore(c)
	if store != nil {
		defer store.BeginGenerating()()
	}

	variations := h.designService.GenerateVariations(c.Request.Context(), &req)

	succeeded := 0
	for _, v := range variations {
		if v.Error == "" {
			succeeded++
		}
	}

	utils.SuccessResponse(c, gin.H{
		"variations": variations,
		"count":      len(variations),
		"succeeded":  succeeded,
	})
}

// GET /api/generate-design
func (h *DesignHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyDesignServiceRunning),
		"endpoints": gin.H{
			"POST": "Generate a new jewelry design",
		},
	})
}

func (h *DesignHandler) validateDesignRequest(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	validationErrors, ok := bindAndValidate(c, req)
	if ok {
		return true
	}
	if validationErrors == nil {
		return false
	}
	if utils.HasRequiredFailure(validationErrors, "type", "material", "gemstone") {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDesignMissingFields), validationErrors)
		return false
	}
	utils.ValidationErrorResponse(c, "", validationErrors)
	return false
}

// upstreamErrorResponse surfaces a generation failure with the provider's
// message.
func upstreamErrorResponse(c *gin.Context, err error) {
	logrus.WithError(err).Error("Error in generate-design")

	lang := utils.GetLangFromContext(c)
	message := err.Error()
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrNoImageReturned):
		message = i18n.T(lang, i18n.KeyDesignNoImage)
	case errors.As(err, &upstream) && upstream.Message != "":
		message = upstream.Message
	}
	if message == "" {
		message = i18n.T(lang, i18n.KeyDesignGenerateFailed)
	}
	utils.InternalErrorResponse(c, "UPSTREAM_ERROR", message)
}
