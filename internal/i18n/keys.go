// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthForbidden          = "auth.forbidden"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductMissingFields = "product.missing_fields"
	KeyProductReadFailed    = "product.read_failed"
	KeyProductCreateFailed  = "product.create_failed"
	KeyCatalogCorrupt       = "catalog.corrupt"

	// Designs
	KeyDesignMissingFields    = "design.missing_fields"
	KeyDesignGenerateFailed   = "design.generate_failed"
	KeyDesignNoImage          = "design.no_image"
	KeyDesignNotFound         = "design.not_found"
	KeyDesignPublished        = "design.published"
	KeyDesignServiceRunning   = "design.service_running"
	KeyGeneratedImageNotFound = "generated_image.not_found"

	// Gallery
	KeyGalleryFetchFailed     = "gallery.fetch_failed"
	KeyGalleryMissingLocation = "gallery.missing_download_location"
	KeyGalleryDownloadTracked = "gallery.download_tracked"

	// Cart & checkout
	KeyCartItemNotFound = "cart.item_not_found"
	KeyCartEmpty        = "cart.empty"
	KeyCheckoutFailed   = "checkout.failed"
	KeyCheckoutComplete = "checkout.completed"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Misc
	KeyRateLimited = "rate_limit.exceeded"
)
