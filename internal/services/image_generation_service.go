// internal/services/image_generation_service.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/metrics"
	"github.com/javajoker/jewelry-atelier/internal/models"
)

const (
	MaxVariations     = 4
	maxVariationCalls = 2
)

type ImageGenerationService struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	metrics    *metrics.Metrics
}

type GenerateImageParams struct {
	Type         models.JewelryType
	Material     models.Material
	Gemstone     models.Gemstone
	CustomPrompt string
	Style        string
}

type GenerateImageResult struct {
	ImageURL      string `json:"imageUrl"`
	RevisedPrompt string `json:"revisedPrompt"`
}

// VariationOutcome holds one independent variation attempt; exactly one of
// Result and Err is set.
type VariationOutcome struct {
	Index  int
	Result *GenerateImageResult
	Err    error
}

type imageGenerationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

type imageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

var typeDescriptions = map[models.JewelryType]string{
	models.JewelryTypeRing:     "elegant ring",
	models.JewelryTypeNecklace: "sophisticated necklace",
	models.JewelryTypeBracelet: "delicate bracelet",
	models.JewelryTypeEarring:  "stunning pair of earrings",
	models.JewelryTypePendant:  "beautiful pendant",
}

var materialDescriptions = map[models.Material]string{
	models.MaterialGold:      "18k yellow gold",
	models.MaterialSilver:    "sterling silver 925",
	models.MaterialPlatinum:  "platinum",
	models.MaterialRoseGold:  "18k rose gold",
	models.MaterialWhiteGold: "18k white gold",
}

var gemstoneDescriptions = map[models.Gemstone]string{
	models.GemstoneDiamond:  "brilliant-cut diamond",
	models.GemstoneRuby:     "natural ruby gemstone",
	models.GemstoneSapphire: "natural sapphire gemstone",
	models.GemstoneEmerald:  "natural emerald gemstone",
	models.GemstoneAmethyst: "natural amethyst gemstone",
}

var styleModifiers = map[string]string{
	"photorealistic": "professional product photography, studio lighting, white background, high detail, 4K quality",
	"artistic":       "artistic jewelry photography, dramatic lighting, elegant composition",
	"minimalist":     "minimalist jewelry photography, clean lines, soft shadows, simple background",
}

func NewImageGenerationService(cfg *config.Config, m *metrics.Metrics) *ImageGenerationService {
	return &ImageGenerationService{
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout()},
		apiKey:     cfg.OpenAI.APIKey,
		baseURL:    strings.TrimRight(cfg.OpenAI.BaseURL, "/"),
		model:      cfg.OpenAI.ImageModel,
		metrics:    m,
	}
}

func (s *ImageGenerationService) Enabled() bool {
	return s.apiKey != ""
}

// BuildJewelryPrompt renders the product-photo prompt for a design.
// Unknown keys fall back to their raw values.
func BuildJewelryPrompt(p GenerateImageParams) string {
	typeDesc, ok := typeDescriptions[p.Type]
	if !ok {
		typeDesc = string(p.Type)
	}
	materialDesc, ok := materialDescriptions[p.Material]
	if !ok {
		materialDesc = string(p.Material)
	}
	style, ok := styleModifiers[p.Style]
	if !ok {
		style = styleModifiers["photorealistic"]
	}

	var b strings.Builder
	b.WriteString(typeDesc)
	b.WriteString(" crafted from ")
	b.WriteString(materialDesc)

	if p.Gemstone != "" && p.Gemstone != models.GemstoneNone {
		gemDesc, ok := gemstoneDescriptions[p.Gemstone]
		if !ok {
			gemDesc = string(p.Gemstone)
		}
		b.WriteString(" featuring ")
		b.WriteString(gemDesc)
	}

	if custom := strings.TrimSpace(p.CustomPrompt); custom != "" {
		b.WriteString(", ")
		b.WriteString(custom)
	}

	b.WriteString(", ")
	b.WriteString(style)
	return b.String()
}

func (s *ImageGenerationService) GenerateJewelryImage(ctx context.Context, p GenerateImageParams) (*GenerateImageResult, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("failed to generate jewelry image: openai %w", ErrProviderNotConfigured)
	}

	prompt := BuildJewelryPrompt(p)
	start := time.Now()

	var resp imageGenerationResponse
	err := doJSON(ctx, s.httpClient, "openai", http.MethodPost, s.baseURL+"/images/generations",
		map[string]string{"Authorization": "Bearer " + s.apiKey},
		imageGenerationRequest{
			Model:   s.model,
			Prompt:  prompt,
			N:       1,
			Size:    "1024x1024",
			Quality: "hd",
			Style:   "natural",
		}, &resp)
	s.metrics.ObserveUpstream("openai", "generate", start, err)
	if err != nil {
		logrus.WithError(err).WithField("type", p.Type).Error("Image generation failed")
		return nil, fmt.Errorf("failed to generate jewelry image: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, ErrNoImageReturned
	}

	revised := resp.Data[0].RevisedPrompt
	if revised == "" {
		revised = prompt
	}

	return &GenerateImageResult{
		ImageURL:      resp.Data[0].URL,
		RevisedPrompt: revised,
	}, nil
}

// GenerateVariations issues count independent generations. A failed
// variation never cancels its siblings.
func (s *ImageGenerationService) GenerateVariations(ctx context.Context, p GenerateImageParams, count int) []VariationOutcome {
	if count < 1 {
		count = 1
	}
	if count > MaxVariations {
		count = MaxVariations
	}

	outcomes := make([]VariationOutcome, count)
	var g errgroup.Group
	g.SetLimit(maxVariationCalls)

	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			result, err := s.GenerateJewelryImage(ctx, p)
			outcomes[i] = VariationOutcome{Index: i, Result: result, Err: err}
			return nil
		})
	}
	g.Wait()

	return outcomes
}
