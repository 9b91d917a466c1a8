// internal/utils/context.go
package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/jewelry-atelier/internal/appstate"
)

const stateStoreKey = "app_state"

func SetStateStore(c *gin.Context, store *appstate.Store) {
	c.Set(stateStoreKey, store)
}

// GetStateStore returns the session store placed by the session middleware.
func GetStateStore(c *gin.Context) (*appstate.Store, bool) {
	v, exists := c.Get(stateStoreKey)
	if !exists {
		return nil, false
	}
	store, ok := v.(*appstate.Store)
	return store, ok
}

func GetSessionID(c *gin.Context) string {
	return c.GetString("session_id")
}
