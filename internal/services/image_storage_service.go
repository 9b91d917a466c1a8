// internal/services/image_storage_service.go
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/metrics"
)

const maxImageBytes = 20 << 20

type UploadImageParams struct {
	// ImageURL is a remote URL or a data URI.
	ImageURL string
	Folder   string
	PublicID string
	Tags     []string
}

type UploadImageResult struct {
	PublicID  string `json:"publicId"`
	URL       string `json:"url"`
	SecureURL string `json:"secureUrl"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
}

type imageBackend interface {
	name() string
	upload(ctx context.Context, p UploadImageParams) (*UploadImageResult, error)
	destroy(ctx context.Context, publicID string) error
	transformURL(publicID, transformation string) string
}

// ImageStorageService re-hosts images with the configured provider. When
// no credentials are configured it is disabled and every upload fails with
// ErrProviderNotConfigured.
type ImageStorageService struct {
	backend       imageBackend
	defaultFolder string
	metrics       *metrics.Metrics
}

func NewImageStorageService(cfg *config.Config, m *metrics.Metrics) (*ImageStorageService, error) {
	svc := &ImageStorageService{defaultFolder: cfg.Hosting.Folder, metrics: m}
	if !cfg.HostingEnabled() {
		logrus.WithField("provider", cfg.Hosting.Provider).Warn("Image hosting credentials missing, re-hosting disabled")
		return svc, nil
	}

	switch cfg.Hosting.Provider {
	case "s3":
		backend, err := newS3Backend(cfg.AWS, &http.Client{Timeout: cfg.UpstreamTimeout()})
		if err != nil {
			return nil, err
		}
		svc.backend = backend
	default:
		backend, err := newCloudinaryBackend(cfg.Cloudinary, cfg.UpstreamTimeout())
		if err != nil {
			return nil, err
		}
		svc.backend = backend
	}
	return svc, nil
}

func (s *ImageStorageService) Enabled() bool {
	return s.backend != nil
}

// UploadImageFromURL copies a remote image (or data URI) to the host.
func (s *ImageStorageService) UploadImageFromURL(ctx context.Context, p UploadImageParams) (*UploadImageResult, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("failed to upload image: hosting %w", ErrProviderNotConfigured)
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		return nil, fmt.Errorf("failed to upload image: %w", ErrInvalidImage)
	}
	if p.Folder == "" {
		p.Folder = s.defaultFolder
	}

	start := time.Now()
	result, err := s.backend.upload(ctx, p)
	s.metrics.ObserveUpstream(s.backend.name(), "upload", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return result, nil
}

// UploadBase64Image accepts raw base64 or a data URI. Payloads that do not
// decode to a known image format are rejected before any upload.
func (s *ImageStorageService) UploadBase64Image(ctx context.Context, encoded string, p UploadImageParams) (*UploadImageResult, error) {
	dataURI, err := NormalizeDataURI(encoded)
	if err != nil {
		return nil, err
	}
	p.ImageURL = dataURI
	return s.UploadImageFromURL(ctx, p)
}

func (s *ImageStorageService) DeleteImage(ctx context.Context, publicID string) error {
	if !s.Enabled() {
		return fmt.Errorf("failed to delete image: hosting %w", ErrProviderNotConfigured)
	}

	start := time.Now()
	err := s.backend.destroy(ctx, publicID)
	s.metrics.ObserveUpstream(s.backend.name(), "delete", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// ThumbnailURL returns a square crop of the given size.
func (s *ImageStorageService) ThumbnailURL(publicID string, size int) string {
	if !s.Enabled() || publicID == "" {
		return ""
	}
	if size <= 0 {
		size = 300
	}
	return s.backend.transformURL(publicID, fmt.Sprintf("w_%d,h_%d,c_fill,q_auto,f_auto", size, size))
}

// NormalizeDataURI validates a base64 image and returns it as a data URI.
func NormalizeDataURI(encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	payload := encoded
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ",")
		if idx < 0 || !strings.Contains(encoded[:idx], ";base64") {
			return "", ErrInvalidImage
		}
		payload = encoded[idx+1:]
	}

	raw, err := decodeBase64(payload)
	if err != nil || len(raw) == 0 {
		return "", ErrInvalidImage
	}
	if len(raw) > maxImageBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidImage, maxImageBytes)
	}

	contentType, ok := detectImageType(raw)
	if !ok {
		return "", ErrInvalidImage
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, payload)
	if raw, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
}

// detectImageType checks the file signature and returns its MIME type.
func detectImageType(buffer []byte) (string, bool) {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return "image/jpeg", true
	case len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47:
		return "image/png", true
	case len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a"):
		return "image/gif", true
	case len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP":
		return "image/webp", true
	}
	return "", false
}

// fetchImage resolves a remote URL or data URI to bytes.
func fetchImage(ctx context.Context, client *http.Client, source string) ([]byte, string, error) {
	if strings.HasPrefix(source, "data:") {
		dataURI, err := NormalizeDataURI(source)
		if err != nil {
			return nil, "", err
		}
		idx := strings.Index(dataURI, ",")
		raw, _ := base64.StdEncoding.DecodeString(dataURI[idx+1:])
		contentType, _ := detectImageType(raw)
		return raw, contentType, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image url: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(raw) > maxImageBytes {
		return nil, "", fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidImage, maxImageBytes)
	}

	contentType, ok := detectImageType(raw)
	if !ok {
		return nil, "", ErrInvalidImage
	}
	return raw, contentType, nil
}

// imageDimensions decodes the header only; webp and unknown formats report 0x0.
func imageDimensions(raw []byte) (int, int, string) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, ""
	}
	return cfg.Width, cfg.Height, format
}
