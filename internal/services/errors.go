// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	ErrProviderNotConfigured = errors.New("provider is not configured")
	ErrNoImageReturned       = errors.New("no image URL returned")
	ErrInvalidImage          = errors.New("invalid image data")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrProductNotFound       = errors.New("product not found")
)

// UpstreamError is returned when a hosted API answers with a non-2xx status.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
}
