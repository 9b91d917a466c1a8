// internal/services/cloudinary.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/config"
)

type cloudinaryBackend struct {
	cld     *cloudinary.Cloudinary
	timeout time.Duration
}

func newCloudinaryBackend(cfg config.CloudinaryConfig, timeout time.Duration) (*cloudinaryBackend, error) {
	conf, err := cldconfig.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("invalid cloudinary configuration: %w", err)
	}
	if cfg.BaseURL != "" {
		conf.API.UploadPrefix = cfg.BaseURL
	}
	conf.URL.Secure = true

	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &cloudinaryBackend{cld: cld, timeout: timeout}, nil
}

func (b *cloudinaryBackend) name() string {
	return "cloudinary"
}

func (b *cloudinaryBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

func (b *cloudinaryBackend) upload(ctx context.Context, p UploadImageParams) (*UploadImageResult, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	resp, err := b.cld.Upload.Upload(ctx, p.ImageURL, uploader.UploadParams{
		Folder:    p.Folder,
		PublicID:  p.PublicID,
		Tags:      p.Tags,
		Overwrite: api.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, &UpstreamError{Provider: "cloudinary", Message: resp.Error.Message}
	}
	if resp.SecureURL == "" && resp.URL == "" {
		return nil, errors.New("cloudinary upload returned no url")
	}

	return &UploadImageResult{
		PublicID:  resp.PublicID,
		URL:       resp.URL,
		SecureURL: resp.SecureURL,
		Width:     resp.Width,
		Height:    resp.Height,
		Format:    resp.Format,
	}, nil
}

func (b *cloudinaryBackend) destroy(ctx context.Context, publicID string) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	resp, err := b.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Error.Message != "" {
		return &UpstreamError{Provider: "cloudinary", Message: resp.Error.Message}
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy returned %q", resp.Result)
	}
	return nil
}

func (b *cloudinaryBackend) transformURL(publicID, transformation string) string {
	img, err := b.cld.Image(publicID)
	if err != nil {
		logrus.WithError(err).WithField("public_id", publicID).Warn("Failed to build cloudinary asset")
		return ""
	}
	img.Transformation = transformation

	url, err := img.String()
	if err != nil {
		logrus.WithError(err).WithField("public_id", publicID).Warn("Failed to build cloudinary url")
		return ""
	}
	return url
}
