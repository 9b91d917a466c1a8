// internal/services/gallery_service.go
package services

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/metrics"
	"github.com/javajoker/jewelry-atelier/internal/models"
)

const (
	SourceTavily   = "tavily"
	SourceFallback = "fallback"

	maxTavilyResults = 20
	defaultQuery     = "luxury jewelry collection"
)

var typeQueries = map[models.JewelryType]string{
	models.JewelryTypeRing:     "gold ring jewelry",
	models.JewelryTypeNecklace: "necklace jewelry",
	models.JewelryTypeBracelet: "bracelet jewelry",
	models.JewelryTypeEarring:  "earrings jewelry",
	models.JewelryTypePendant:  "pendant jewelry",
}

type GalleryService struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	metrics    *metrics.Metrics
	shuffle    func(n int, swap func(i, j int))
}

type GallerySearchParams struct {
	Type  models.JewelryType
	Query string
	Count int
}

type GallerySearchResult struct {
	Images []models.GalleryImage
	Source string
}

type tavilySearchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeImages bool   `json:"include_images"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results"`
}

type tavilySearchResponse struct {
	Query   string   `json:"query"`
	Images  []string `json:"images"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

type fallbackImage struct {
	id          string
	url         string
	jewelryType models.JewelryType
	description string
}

var fallbackImages = []fallbackImage{
	{"1", "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=800&q=80", models.JewelryTypeRing, "Elegant diamond engagement ring"},
	{"2", "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=800&q=80", models.JewelryTypeRing, "Golden wedding band with diamonds"},
	{"3", "https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=800&q=80", models.JewelryTypeRing, "Luxury sapphire cocktail ring"},
	{"4", "https://images.unsplash.com/photo-1603561596112-0a132b757442?w=800&q=80", models.JewelryTypeRing, "Rose gold diamond ring"},
	{"5", "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=800&q=80", models.JewelryTypeNecklace, "Pearl pendant necklace"},
	{"6", "https://images.unsplash.com/photo-1506630448388-4e683c67ddb0?w=800&q=80", models.JewelryTypeNecklace, "Gold chain necklace"},
	{"7", "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=800&q=80", models.JewelryTypeNecklace, "Diamond pendant necklace"},
	{"8", "https://images.unsplash.com/photo-1572252009286-268acec5ca0a?w=800&q=80", models.JewelryTypeNecklace, "Elegant silver necklace"},
	{"9", "https://images.unsplash.com/photo-1611085583191-a3b181a88401?w=800&q=80", models.JewelryTypeBracelet, "Gold bangle bracelet"},
	{"10", "https://images.unsplash.com/photo-1573408301185-9146fe634ad0?w=800&q=80", models.JewelryTypeBracelet, "Diamond tennis bracelet"},
	{"11", "https://images.unsplash.com/photo-1588444650738-341fff08ce34?w=800&q=80", models.JewelryTypeBracelet, "Silver charm bracelet"},
	{"12", "https://images.unsplash.com/photo-1535556116002-6281ff3e9f42?w=800&q=80", models.JewelryTypeBracelet, "Luxury gold bracelet"},
	{"13", "https://images.unsplash.com/photo-1535556116002-6281ff3e9f42?w=800&q=80", models.JewelryTypeEarring, "Diamond stud earrings"},
	{"14", "https://images.unsplash.com/photo-1630019852942-f89202989a59?w=800&q=80", models.JewelryTypeEarring, "Pearl drop earrings"},
	{"15", "https://images.unsplash.com/photo-1564494252407-7108f20f82c9?w=800&q=80", models.JewelryTypeEarring, "Gold hoop earrings"},
	{"16", "https://images.unsplash.com/photo-1617038220319-276d3cfab638?w=800&q=80", models.JewelryTypeEarring, "Gemstone chandelier earrings"},
	{"17", "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=800&q=80", models.JewelryTypePendant, "Heart-shaped diamond pendant"},
	{"18", "https://images.unsplash.com/photo-1506630448388-4e683c67ddb0?w=800&q=80", models.JewelryTypePendant, "Emerald pendant"},
	{"19", "https://images.unsplash.com/photo-1603561596112-0a132b757442?w=800&q=80", models.JewelryTypeBrooch, "Vintage diamond brooch"},
	{"20", "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=800&q=80", models.JewelryTypeBrooch, "Floral gold brooch"},
	{"21", "https://images.unsplash.com/photo-1611085583191-a3b181a88401?w=800&q=80", models.JewelryTypeAnklet, "Delicate gold anklet"},
	{"22", "https://images.unsplash.com/photo-1573408301185-9146fe634ad0?w=800&q=80", models.JewelryTypeAnklet, "Silver anklet with charms"},
	{"23", "https://images.unsplash.com/photo-1523170335258-f5ed11844a49?w=800&q=80", models.JewelryTypeWatch, "Luxury gold watch"},
	{"24", "https://images.unsplash.com/photo-1524805444758-089113d48a6d?w=800&q=80", models.JewelryTypeWatch, "Diamond-encrusted watch"},
}

func NewGalleryService(cfg *config.Config, m *metrics.Metrics) *GalleryService {
	return &GalleryService{
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout()},
		apiKey:     cfg.Search.TavilyAPIKey,
		baseURL:    strings.TrimRight(cfg.Search.TavilyBaseURL, "/"),
		metrics:    m,
		shuffle:    rand.Shuffle,
	}
}

// SearchQueryFor picks the phrase sent to the search provider. A free-text
// query wins over the type.
func SearchQueryFor(jewelryType models.JewelryType, query string) string {
	if query = strings.TrimSpace(query); query != "" {
		return query + " jewelry"
	}
	if jewelryType != "" {
		if phrase, ok := typeQueries[jewelryType]; ok {
			return phrase
		}
		return string(jewelryType) + " jewelry"
	}
	return defaultQuery
}

// Search never fails: provider errors and empty answers are served from
// the curated list.
func (s *GalleryService) Search(ctx context.Context, p GallerySearchParams) GallerySearchResult {
	images, err := s.SearchJewelryImages(ctx, SearchQueryFor(p.Type, p.Query), p.Count)
	if err != nil {
		logrus.WithError(err).Warn("Tavily search failed, using fallback images")
		s.metrics.IncGalleryFallback("error")
	} else if len(images) == 0 {
		s.metrics.IncGalleryFallback("empty")
	}

	if len(images) == 0 {
		images = s.FallbackImages(p.Type, p.Query, p.Count)
	}

	source := SourceTavily
	if len(images) > 0 && images[0].Source != "" {
		source = images[0].Source
	}
	return GallerySearchResult{Images: images, Source: source}
}

// SearchJewelryImages queries Tavily. A missing API key yields no images
// and no error.
func (s *GalleryService) SearchJewelryImages(ctx context.Context, query string, maxResults int) ([]models.GalleryImage, error) {
	if s.apiKey == "" {
		return nil, nil
	}
	if maxResults < 1 {
		maxResults = 1
	}

	start := time.Now()
	var resp tavilySearchResponse
	err := doJSON(ctx, s.httpClient, "tavily", http.MethodPost, s.baseURL+"/search",
		map[string]string{"Authorization": "Bearer " + s.apiKey},
		tavilySearchRequest{
			APIKey:        s.apiKey,
			Query:         query + " high quality images",
			SearchDepth:   "advanced",
			IncludeImages: true,
			IncludeAnswer: false,
			MaxResults:    min(maxResults, maxTavilyResults),
		}, &resp)
	s.metrics.ObserveUpstream("tavily", "search", start, err)
	if err != nil {
		return nil, err
	}

	imageURLs := resp.Images
	if len(imageURLs) > maxResults {
		imageURLs = imageURLs[:maxResults]
	}

	stamp := time.Now().UnixMilli()
	images := make([]models.GalleryImage, 0, len(imageURLs))
	for i, imageURL := range imageURLs {
		img := models.GalleryImage{
			ID:               fmt.Sprintf("tavily-%d-%d", stamp, i),
			URL:              imageURL,
			ThumbnailURL:     imageURL,
			Description:      fmt.Sprintf("Beautiful %s design", query),
			Photographer:     "Web Source",
			PhotographerURL:  "#",
			DownloadLocation: imageURL,
			Source:           SourceTavily,
		}
		if i < len(resp.Results) {
			result := resp.Results[i]
			if result.Title != "" {
				img.Description = result.Title
			}
			if result.URL != "" {
				img.PhotographerURL = result.URL
				img.DownloadLocation = result.URL
				if u, err := url.Parse(result.URL); err == nil && u.Hostname() != "" {
					img.Photographer = u.Hostname()
				}
			}
		}
		images = append(images, img)
	}
	return images, nil
}

// FallbackImages filters the curated list by type and by a substring of
// description or type, shuffles it and keeps at most count entries.
func (s *GalleryService) FallbackImages(jewelryType models.JewelryType, query string, count int) []models.GalleryImage {
	query = strings.ToLower(strings.TrimSpace(query))

	images := make([]models.GalleryImage, 0, len(fallbackImages))
	for _, f := range fallbackImages {
		if jewelryType != "" && f.jewelryType != jewelryType {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(f.description), query) &&
			!strings.Contains(string(f.jewelryType), query) {
			continue
		}
		images = append(images, models.GalleryImage{
			ID:               f.id,
			URL:              f.url,
			ThumbnailURL:     strings.Replace(f.url, "w=800", "w=400", 1),
			Description:      f.description,
			Photographer:     "Unsplash",
			PhotographerURL:  "https://unsplash.com",
			DownloadLocation: "#",
			Source:           SourceFallback,
			Type:             f.jewelryType,
		})
	}

	if s.shuffle != nil {
		s.shuffle(len(images), func(i, j int) { images[i], images[j] = images[j], images[i] })
	}
	if count > 0 && len(images) > count {
		images = images[:count]
	}
	return images
}

// TrackDownload records that a gallery image was used.
func (s *GalleryService) TrackDownload(downloadLocation string) {
	logrus.WithField("download_location", downloadLocation).Info("Gallery image download tracked")
}
