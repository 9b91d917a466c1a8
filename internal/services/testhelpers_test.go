// internal/services/testhelpers_test.go
package services

import (
	"github.com/javajoker/jewelry-atelier/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{UpstreamTimeout: 5},
		OpenAI: config.OpenAIConfig{
			APIKey:     "sk-test",
			ImageModel: "dall-e-3",
		},
		Search:  config.SearchConfig{TavilyAPIKey: "tvly-test"},
		Hosting: config.HostingConfig{Provider: "cloudinary", Folder: "jewelry-designs"},
		Cloudinary: config.CloudinaryConfig{
			CloudName: "demo",
			APIKey:    "key",
			APISecret: "secret",
		},
		Payment: config.PaymentConfig{
			Currency:     "usd",
			TaxRate:      0.08,
			ShippingFlat: 15,
		},
	}
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
