// internal/services/design_service.go
package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/models"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

const (
	designFolder  = "jewelry-designs"
	thumbnailSize = 300
)

// DesignService turns a design request into a hosted concept image.
type DesignService struct {
	generator *ImageGenerationService
	storage   *ImageStorageService
	now       func() time.Time
}

type GenerateDesignRequest struct {
	Type         models.JewelryType `json:"type" validate:"required,design_type"`
	Material     models.Material    `json:"material" validate:"required,material"`
	Gemstone     models.Gemstone    `json:"gemstone" validate:"required,gemstone"`
	CustomPrompt string             `json:"customPrompt" validate:"max=1000"`
	Style        string             `json:"style" validate:"omitempty,design_style"`
	SaveToCloud  *bool              `json:"saveToCloud"`
}

type GenerateVariationsRequest struct {
	GenerateDesignRequest
	Count int `json:"count" validate:"omitempty,min=1,max=4"`
}

type GeneratedDesign struct {
	ImageURL      string             `json:"imageUrl"`
	OriginalURL   string             `json:"originalUrl"`
	PublicID      string             `json:"publicId,omitempty"`
	ThumbnailURL  string             `json:"thumbnailUrl,omitempty"`
	RevisedPrompt string             `json:"revisedPrompt"`
	Type          models.JewelryType `json:"type"`
	Material      models.Material    `json:"material"`
	Gemstone      models.Gemstone    `json:"gemstone"`
	Price         float64            `json:"price"`
	GeneratedAt   string             `json:"generatedAt"`
}

type VariationResponse struct {
	ImageURL      string `json:"imageUrl,omitempty"`
	RevisedPrompt string `json:"revisedPrompt,omitempty"`
	Error         string `json:"error,omitempty"`
}

func NewDesignService(generator *ImageGenerationService, storage *ImageStorageService) *DesignService {
	return &DesignService{
		generator: generator,
		storage:   storage,
		now:       time.Now,
	}
}

func (r *GenerateDesignRequest) params() GenerateImageParams {
	return GenerateImageParams{
		Type:         r.Type,
		Material:     r.Material,
		Gemstone:     r.Gemstone,
		CustomPrompt: r.CustomPrompt,
		Style:        r.Style,
	}
}

// GenerateDesign generates one image and, unless saveToCloud is false,
// re-hosts it. Hosting failures keep the provider URL.
func (s *DesignService) GenerateDesign(ctx context.Context, req *GenerateDesignRequest) (*GeneratedDesign, error) {
	logrus.WithFields(logrus.Fields{
		"type":     req.Type,
		"material": req.Material,
		"gemstone": req.Gemstone,
	}).Info("Generating jewelry design")

	result, err := s.generator.GenerateJewelryImage(ctx, req.params())
	if err != nil {
		return nil, err
	}

	design := &GeneratedDesign{
		ImageURL:      result.ImageURL,
		OriginalURL:   result.ImageURL,
		RevisedPrompt: result.RevisedPrompt,
		Type:          req.Type,
		Material:      req.Material,
		Gemstone:      req.Gemstone,
		Price:         QuotePrice(req.Material, req.Gemstone).Price,
		GeneratedAt:   s.now().UTC().Format(time.RFC3339Nano),
	}

	saveToCloud := req.SaveToCloud == nil || *req.SaveToCloud
	if saveToCloud && s.storage != nil && s.storage.Enabled() {
		uploaded, err := s.storage.UploadImageFromURL(ctx, UploadImageParams{
			ImageURL: result.ImageURL,
			Folder:   designFolder,
			Tags:     []string{"jewelry", string(req.Type), string(req.Material), string(req.Gemstone)},
		})
		if err != nil {
			logrus.WithError(err).Error("Failed to re-host generated design, keeping provider URL")
		} else {
			design.ImageURL = uploadedURL(uploaded)
			design.PublicID = uploaded.PublicID
			design.ThumbnailURL = s.storage.ThumbnailURL(uploaded.PublicID, thumbnailSize)
			logrus.WithField("public_id", uploaded.PublicID).Info("Generated design re-hosted")
		}
	}

	return design, nil
}

// GenerateVariations runs count generations concurrently; each entry of the
// result reports its own success or failure.
func (s *DesignService) GenerateVariations(ctx context.Context, req *GenerateVariationsRequest) []VariationResponse {
	outcomes := s.generator.GenerateVariations(ctx, req.params(), req.Count)

	responses := make([]VariationResponse, len(outcomes))
	for i, o := range outcomes {
		if o.Err != nil {
			responses[i] = VariationResponse{Error: o.Err.Error()}
			continue
		}
		responses[i] = VariationResponse{
			ImageURL:      o.Result.ImageURL,
			RevisedPrompt: o.Result.RevisedPrompt,
		}
	}
	return responses
}

// ToGeneratedImage converts a design into a session history entry.
func (d *GeneratedDesign) ToGeneratedImage() models.GeneratedImage {
	return models.GeneratedImage{
		ID:            utils.NewID(),
		ImageURL:      d.ImageURL,
		OriginalURL:   d.OriginalURL,
		PublicID:      d.PublicID,
		ThumbnailURL:  d.ThumbnailURL,
		RevisedPrompt: d.RevisedPrompt,
		Type:          string(d.Type),
		Material:      string(d.Material),
		Gemstone:      string(d.Gemstone),
		GeneratedAt:   d.GeneratedAt,
	}
}
