// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/appstate"
	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/database"
	"github.com/javajoker/jewelry-atelier/internal/handlers"
	"github.com/javajoker/jewelry-atelier/internal/metrics"
	"github.com/javajoker/jewelry-atelier/internal/middleware"
	"github.com/javajoker/jewelry-atelier/internal/services"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

// Initialize wires services, handlers and routes. Background work started
// here stops when ctx is cancelled.
func Initialize(ctx context.Context, store database.ProductStore, cfg *config.Config) *gin.Engine {
	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Initialize services
	storageService, err := services.NewImageStorageService(cfg, appMetrics)
	if err != nil {
		logrus.WithError(err).Error("Image hosting unavailable, re-hosting disabled")
		storageService, _ = services.NewImageStorageService(&config.Config{}, appMetrics)
	}
	generationService := services.NewImageGenerationService(cfg, appMetrics)
	galleryService := services.NewGalleryService(cfg, appMetrics)
	productService := services.NewProductService(store, storageService, appMetrics)
	designService := services.NewDesignService(generationService, storageService)
	checkoutService := services.NewCheckoutService(cfg)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	designHandler := handlers.NewDesignHandler(designService)
	sessionHandler := handlers.NewSessionHandler(productService, checkoutService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	catalogHandler := handlers.NewCatalogHandler()
	authHandler := handlers.NewAuthHandler(cfg)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Session state
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	sessions := appstate.NewRegistry(sessionTTL)
	go sessions.Run(ctx, time.Minute)

	allowedOrigins := cfg.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", middleware.SessionIDHeader},
		ExposeHeaders:    []string{middleware.SessionIDHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	adminOnly := middleware.AdminRequired(cfg.AdminAuthEnabled())
	generationLimit := middleware.GenerationRateLimit(cfg.RateLimit)

	api := r.Group("/api")
	api.Use(middleware.GeneralRateLimit(cfg.RateLimit))
	api.Use(middleware.Session(sessions, int(sessionTTL.Seconds()), cfg.Session.CookieSecure))
	{
		api.POST("/admin/login", authHandler.AdminLogin)

		// Catalog
		api.GET("/products", productHandler.GetProducts)
		api.POST("/products", adminOnly, productHandler.CreateProduct)
		api.GET("/catalog/options", catalogHandler.GetOptions)
		api.GET("/pricing/quote", catalogHandler.GetPriceQuote)

		// Gallery
		api.GET("/gallery", galleryHandler.GetGalleryImages)
		api.POST("/gallery", galleryHandler.TrackDownload)

		// Design generation
		api.GET("/generate-design", designHandler.GetStatus)
		api.POST("/generate-design", generationLimit, designHandler.GenerateDesign)
		api.POST("/generate-design/variations", generationLimit, designHandler.GenerateVariations)

		// Session state
		session := api.Group("/session")
		{
			session.GET("/state", sessionHandler.GetState)
			session.POST("/theme/toggle", sessionHandler.ToggleTheme)
			session.PUT("/user", sessionHandler.SetUser)
			session.DELETE("/user", sessionHandler.ClearUser)

			session.GET("/designs", sessionHandler.GetDesigns)
			session.POST("/designs", sessionHandler.AddDesign)
			session.DELETE("/designs/:id", sessionHandler.RemoveDesign)
			session.POST("/designs/:id/favorite", sessionHandler.ToggleFavorite)
			session.POST("/designs/:id/publish", adminOnly, sessionHandler.PublishDesign)

			session.GET("/cart", sessionHandler.GetCart)
			session.POST("/cart", sessionHandler.AddToCart)
			session.DELETE("/cart", sessionHandler.ClearCart)
			session.PATCH("/cart/:designId", sessionHandler.UpdateCartItem)
			session.DELETE("/cart/:designId", sessionHandler.RemoveFromCart)

			session.PUT("/filters", sessionHandler.SetFilters)
			session.POST("/gallery", sessionHandler.AddGalleryImage)

			session.POST("/generated", sessionHandler.AddGeneratedImage)
			session.DELETE("/generated", sessionHandler.ClearGeneratedImages)
			session.DELETE("/generated/:id", sessionHandler.RemoveGeneratedImage)
		}

		api.POST("/checkout", checkoutHandler.Checkout)
	}

	return r
}
