// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/database"
	"github.com/javajoker/jewelry-atelier/internal/metrics"
	"github.com/javajoker/jewelry-atelier/internal/models"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

type ProductService struct {
	store   database.ProductStore
	storage *ImageStorageService
	metrics *metrics.Metrics
	now     func() time.Time
}

type CreateProductRequest struct {
	Name        string             `json:"name" validate:"required,max=255"`
	Type        models.JewelryType `json:"type" validate:"omitempty,jewelry_type"`
	Material    models.Material    `json:"material" validate:"omitempty,material"`
	Gemstone    models.Gemstone    `json:"gemstone" validate:"omitempty,gemstone"`
	Price       *float64           `json:"price" validate:"required,gte=0"`
	Description string             `json:"description" validate:"max=2000"`
	ImageURL    string             `json:"imageUrl" validate:"omitempty,url"`
	Base64Image string             `json:"base64Image"`
	Prompt      string             `json:"prompt,omitempty"`
}

func NewProductService(store database.ProductStore, storage *ImageStorageService, m *metrics.Metrics) *ProductService {
	return &ProductService{
		store:   store,
		storage: storage,
		metrics: m,
		now:     time.Now,
	}
}

// CreateProduct re-hosts the supplied image when hosting is enabled and
// persists the record at the head of the catalog. Hosting failures keep the
// caller's imageUrl.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Design, error) {
	if req.Type == "" {
		req.Type = models.JewelryTypeRing
	}
	if req.Material == "" {
		req.Material = models.MaterialGold
	}
	if req.Gemstone == "" {
		req.Gemstone = models.GemstoneNone
	}

	imageURL, publicID := s.resolveImageURL(ctx, req)
	product := models.Design{
		ID:          utils.NewID(),
		Name:        req.Name,
		Type:        req.Type,
		Material:    req.Material,
		Gemstone:    req.Gemstone,
		ImageURL:    imageURL,
		Prompt:      req.Prompt,
		Description: req.Description,
		Price:       *req.Price,
		CreatedAt:   s.now().UTC(),
	}

	created, err := s.store.Add(ctx, product)
	if err != nil {
		if publicID != "" {
			if delErr := s.storage.DeleteImage(ctx, publicID); delErr != nil {
				logrus.WithError(delErr).WithField("public_id", publicID).Warn("Failed to remove hosted image of unsaved product")
			}
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": created.ID,
		"type":       created.Type,
		"price":      created.Price,
	}).Info("Product created")

	return &created, nil
}

// ListProducts returns the catalog, filtered when filters is non-zero.
func (s *ProductService) ListProducts(ctx context.Context, filters models.FilterOptions) ([]models.Design, error) {
	products, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	s.metrics.SetCatalogSize(len(products))

	if products == nil {
		products = []models.Design{}
	}
	return FilterDesigns(products, filters), nil
}

// FindProduct looks a catalog product up by id.
func (s *ProductService) FindProduct(ctx context.Context, id string) (*models.Design, error) {
	products, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// PublishDesign copies a session design into the catalog under a new id.
func (s *ProductService) PublishDesign(ctx context.Context, design models.Design) (*models.Design, error) {
	price := design.Price
	return s.CreateProduct(ctx, &CreateProductRequest{
		Name:        design.Name,
		Type:        design.Type,
		Material:    design.Material,
		Gemstone:    design.Gemstone,
		Price:       &price,
		Description: design.Description,
		ImageURL:    design.ImageURL,
		Prompt:      design.Prompt,
	})
}

// resolveImageURL returns the URL to store and, when the image was
// re-hosted, its public id.
func (s *ProductService) resolveImageURL(ctx context.Context, req *CreateProductRequest) (string, string) {
	if s.storage == nil || !s.storage.Enabled() {
		return req.ImageURL, ""
	}

	log := logrus.WithField("product_name", req.Name)
	params := UploadImageParams{Tags: []string{"product", string(req.Type)}}

	switch {
	case req.Base64Image != "":
		uploaded, err := s.storage.UploadBase64Image(ctx, req.Base64Image, params)
		if err != nil {
			log.WithError(err).Warn("Base64 upload failed, using provided image URL")
			return req.ImageURL, ""
		}
		return uploadedURL(uploaded), uploaded.PublicID
	case req.ImageURL != "":
		params.ImageURL = req.ImageURL
		uploaded, err := s.storage.UploadImageFromURL(ctx, params)
		if err != nil {
			log.WithError(err).Warn("Uploading remote image failed, using provided URL as-is")
			return req.ImageURL, ""
		}
		return uploadedURL(uploaded), uploaded.PublicID
	}
	return "", ""
}

func uploadedURL(r *UploadImageResult) string {
	if r.SecureURL != "" {
		return r.SecureURL
	}
	return r.URL
}
