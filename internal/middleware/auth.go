// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

// AdminRequired checks for an admin bearer token. When admin auth is not
// configured it lets every request through.
func AdminRequired(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthInvalidToken))
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthTokenExpired))
			return
		}

		if claims.Role != utils.RoleAdmin {
			utils.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN",
				i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthForbidden), nil)
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}
