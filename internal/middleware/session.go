// internal/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/jewelry-atelier/internal/appstate"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

const (
	SessionIDHeader = "X-Session-ID"
	SessionCookie   = "session_id"

	sessionIDKey = "session_id"
)

// Session resolves the caller's session from the X-Session-ID header or
// the session cookie, minting a new id when neither is present, and puts
// the session's state store in the context.
func Session(registry *appstate.Registry, maxAgeSeconds int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sessionID = cookie
			}
		}
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.New().String()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sessionID, maxAgeSeconds, "/", "", secure, true)
		c.Header(SessionIDHeader, sessionID)

		c.Set(sessionIDKey, sessionID)
		utils.SetStateStore(c, registry.Get(sessionID))
		c.Next()
	}
}
