// internal/models/gallery.go
package models

// GalleryImage is the normalized shape of a stock photo regardless of
// whether it came from live search or the curated fallback list.
type GalleryImage struct {
	ID               string      `json:"id"`
	URL              string      `json:"url"`
	ThumbnailURL     string      `json:"thumbnailUrl"`
	Description      string      `json:"description"`
	Photographer     string      `json:"photographer"`
	PhotographerURL  string      `json:"photographerUrl"`
	DownloadLocation string      `json:"downloadLocation"`
	Source           string      `json:"source"`
	Type             JewelryType `json:"type,omitempty"`
}

// GeneratedImage is one entry of a session's generation history.
type GeneratedImage struct {
	ID            string `json:"id"`
	ImageURL      string `json:"imageUrl"`
	OriginalURL   string `json:"originalUrl,omitempty"`
	PublicID      string `json:"publicId,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
	RevisedPrompt string `json:"revisedPrompt"`
	Type          string `json:"type"`
	Material      string `json:"material"`
	Gemstone      string `json:"gemstone"`
	GeneratedAt   string `json:"generatedAt"`
}
