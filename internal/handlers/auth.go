// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

type AuthHandler struct {
	config *config.Config
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

// POST /api/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req AdminLoginRequest
	if !validated(c, &req) {
		return
	}

	if !h.config.AdminAuthEnabled() {
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyAuthInvalidCredentials), nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.config.JWT.AdminPasswordHash), []byte(req.Password)); err != nil {
		logrus.WithField("ip", c.ClientIP()).Warn("Failed admin login")
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		return
	}

	token, expiresAt, err := utils.GenerateAdminToken(h.config.JWT.AdminTokenTTL)
	if err != nil {
		utils.InternalErrorResponse(c, "", "")
		return
	}

	c.JSON(http.StatusOK, utils.APIResponse{
		Success: true,
		Message: i18n.T(lang, i18n.KeyAuthLoginSuccess),
		Data: gin.H{
			"token":     token,
			"expiresAt": expiresAt,
		},
	})
}
