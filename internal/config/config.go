// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Environment string
	Server      ServerConfig
	Catalog     CatalogConfig
	Database    DatabaseConfig
	OpenAI      OpenAIConfig
	Search      SearchConfig
	Hosting     HostingConfig
	Cloudinary  CloudinaryConfig
	AWS         AWSConfig
	Payment     PaymentConfig
	JWT         JWTConfig
	I18n        I18nConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Session     SessionConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	// UpstreamTimeout bounds every call to a hosted API, in seconds.
	UpstreamTimeout int
}

type CatalogConfig struct {
	Driver         string // file | postgres
	DataDir        string
	FileName       string
	RecoverCorrupt bool
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	ImageModel string
}

type SearchConfig struct {
	TavilyAPIKey  string
	TavilyBaseURL string
}

type HostingConfig struct {
	Provider string // cloudinary | s3
	Folder   string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

type PaymentConfig struct {
	StripeSecretKey string
	Currency        string
	TaxRate         float64
	ShippingFlat    float64
}

type JWTConfig struct {
	SecretKey         string
	AdminPasswordHash string
	AdminTokenTTL     int // in hours
}

type I18nConfig struct {
	DefaultLocale string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerSecond    float64
	Burst                int
	GenerationsPerMinute int
	GenerationBurst      int
}

type SessionConfig struct {
	TTLMinutes   int
	CookieSecure bool
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:     getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("SERVER_WRITE_TIMEOUT", 90),
			IdleTimeout:     getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			UpstreamTimeout: getEnvAsInt("UPSTREAM_TIMEOUT", 60),
		},
		Catalog: CatalogConfig{
			Driver:         getEnv("CATALOG_DRIVER", "file"),
			DataDir:        getEnv("CATALOG_DATA_DIR", "./data"),
			FileName:       getEnv("CATALOG_FILE", "products.json"),
			RecoverCorrupt: getEnvAsBool("CATALOG_RECOVER_CORRUPT", false),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "jewelry_atelier"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			BaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			ImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		},
		Search: SearchConfig{
			TavilyAPIKey:  getEnv("TAVILY_API_KEY", ""),
			TavilyBaseURL: getEnv("TAVILY_BASE_URL", "https://api.tavily.com"),
		},
		Hosting: HostingConfig{
			Provider: getEnv("IMAGE_HOSTING_PROVIDER", "cloudinary"),
			Folder:   getEnv("CLOUDINARY_FOLDER", "jewelry-designs"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			BaseURL:   getEnv("CLOUDINARY_BASE_URL", "https://api.cloudinary.com"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "jewelry-atelier-assets"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Payment: PaymentConfig{
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			Currency:        getEnv("CHECKOUT_CURRENCY", "usd"),
			TaxRate:         getEnvAsFloat("CHECKOUT_TAX_RATE", 0.08),
			ShippingFlat:    getEnvAsFloat("CHECKOUT_SHIPPING_FLAT", 15),
		},
		JWT: JWTConfig{
			SecretKey:         getEnv("JWT_SECRET", defaultJWTSecret),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			AdminTokenTTL:     getEnvAsInt("ADMIN_TOKEN_TTL", 12),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:    getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:                getEnvAsInt("RATE_LIMIT_BURST", 20),
			GenerationsPerMinute: getEnvAsInt("GENERATION_RATE_PER_MINUTE", 10),
			GenerationBurst:      getEnvAsInt("GENERATION_RATE_BURST", 3),
		},
		Session: SessionConfig{
			TTLMinutes:   getEnvAsInt("SESSION_TTL_MINUTES", 120),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultJWTSecret && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	switch c.Catalog.Driver {
	case "file":
	case "postgres":
		if c.Database.Password == "" && c.Environment == "production" {
			return fmt.Errorf("database password is required in production")
		}
	default:
		return fmt.Errorf("unknown catalog driver %q", c.Catalog.Driver)
	}

	switch c.Hosting.Provider {
	case "cloudinary", "s3":
	default:
		return fmt.Errorf("unknown image hosting provider %q", c.Hosting.Provider)
	}

	return nil
}

// AdminAuthEnabled reports whether catalog writes require an admin token.
func (c *Config) AdminAuthEnabled() bool {
	return c.JWT.AdminPasswordHash != ""
}

// HostingEnabled reports whether credentials for the selected hosting
// provider are present.
func (c *Config) HostingEnabled() bool {
	switch c.Hosting.Provider {
	case "s3":
		return c.AWS.AccessKeyID != "" && c.AWS.SecretAccessKey != ""
	default:
		return c.Cloudinary.CloudName != "" && c.Cloudinary.APIKey != "" && c.Cloudinary.APISecret != ""
	}
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Server.UpstreamTimeout) * time.Second
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
