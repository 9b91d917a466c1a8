// internal/services/s3.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/javajoker/jewelry-atelier/internal/config"
)

var contentTypeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type s3Backend struct {
	client     s3iface.S3API
	httpClient *http.Client
	cfg        config.AWSConfig
}

func newS3Backend(cfg config.AWSConfig, httpClient *http.Client) (*s3Backend, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &s3Backend{
		client:     s3.New(sess),
		httpClient: httpClient,
		cfg:        cfg,
	}, nil
}

func (b *s3Backend) name() string {
	return "s3"
}

func (b *s3Backend) upload(ctx context.Context, p UploadImageParams) (*UploadImageResult, error) {
	raw, contentType, err := fetchImage(ctx, b.httpClient, p.ImageURL)
	if err != nil {
		return nil, err
	}

	key := b.objectKey(p.Folder, p.PublicID, contentTypeExtensions[contentType])
	input := &s3.PutObjectInput{
		Bucket:        aws.String(b.cfg.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(raw),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(raw))),
		ACL:           aws.String("public-read"),
	}
	if len(p.Tags) > 0 {
		input.Tagging = aws.String("tags=" + strings.Join(p.Tags, "+"))
	}

	if _, err := b.client.PutObjectWithContext(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	width, height, format := imageDimensions(raw)
	if format == "" {
		format = strings.TrimPrefix(contentTypeExtensions[contentType], ".")
	}
	url := b.objectURL(key)

	return &UploadImageResult{
		PublicID:  key,
		URL:       url,
		SecureURL: url,
		Width:     width,
		Height:    height,
		Format:    format,
	}, nil
}

func (b *s3Backend) destroy(ctx context.Context, publicID string) error {
	_, err := b.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.cfg.S3Bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// transformURL ignores the transformation; S3 serves originals only.
func (b *s3Backend) transformURL(publicID, _ string) string {
	return b.objectURL(publicID)
}

func (b *s3Backend) objectKey(folder, publicID, ext string) string {
	name := publicID
	if name == "" {
		name = fmt.Sprintf("%s_%s", time.Now().Format("20060102"), uuid.New().String()[:8])
	}
	name += ext
	if folder != "" {
		return folder + "/" + name
	}
	return name
}

func (b *s3Backend) objectURL(key string) string {
	if b.cfg.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(b.cfg.CloudFrontURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.cfg.S3Bucket, b.cfg.Region, key)
}
