// internal/utils/crypto.go
package utils

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random UUID, or a timestamp-derived id when the system
// random source is unavailable.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return id.String()
}
