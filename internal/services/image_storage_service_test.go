// internal/services/image_storage_service_test.go
package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/jewelry-atelier/internal/config"
)

func newCloudinaryService(t *testing.T, handler http.HandlerFunc) *ImageStorageService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.Cloudinary.BaseURL = srv.URL
	svc, err := NewImageStorageService(cfg, nil)
	require.NoError(t, err)
	return svc
}

func assertSigned(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "key", r.FormValue("api_key"))
	assert.NotEmpty(t, r.FormValue("timestamp"))
	assert.NotEmpty(t, r.FormValue("signature"))
}

func TestCloudinaryUploadFromURL(t *testing.T) {
	svc := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/demo/image/upload"), r.URL.Path)
		assertSigned(t, r)
		assert.Equal(t, "https://img.example/1.png", r.FormValue("file"))
		assert.Equal(t, "jewelry-designs", r.FormValue("folder"))
		assert.Contains(t, r.FormValue("tags"), "jewelry")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"jewelry-designs/abc","url":"http://res/abc.png","secure_url":"https://res/abc.png","width":1024,"height":1024,"format":"png"}`))
	})

	result, err := svc.UploadImageFromURL(context.Background(), UploadImageParams{
		ImageURL: "https://img.example/1.png",
		Tags:     []string{"jewelry", "ring"},
	})
	require.NoError(t, err)
	assert.Equal(t, "jewelry-designs/abc", result.PublicID)
	assert.Equal(t, "https://res/abc.png", result.SecureURL)
	assert.Equal(t, 1024, result.Width)
	assert.Equal(t, "png", result.Format)
}

func TestCloudinaryUploadBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)
	svc := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "data:image/png;base64,"+encoded, r.FormValue("file"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"p","secure_url":"https://res/p.png"}`))
	})

	result, err := svc.UploadBase64Image(context.Background(), encoded, UploadImageParams{})
	require.NoError(t, err)
	assert.Equal(t, "https://res/p.png", result.SecureURL)
}

func TestCloudinaryUploadError(t *testing.T) {
	svc := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	})

	_, err := svc.UploadImageFromURL(context.Background(), UploadImageParams{ImageURL: "https://img.example/1.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Signature")
}

func TestCloudinaryDeleteAndThumbnail(t *testing.T) {
	svc := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/demo/image/destroy"), r.URL.Path)
		assertSigned(t, r)
		assert.Equal(t, "jewelry-designs/abc", r.FormValue("public_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"ok"}`))
	})

	require.NoError(t, svc.DeleteImage(context.Background(), "jewelry-designs/abc"))

	thumb := svc.ThumbnailURL("jewelry-designs/abc", 0)
	assert.True(t, strings.HasPrefix(thumb, "https://res.cloudinary.com/demo/image/upload/"), thumb)
	assert.Contains(t, thumb, "w_300,h_300,c_fill,q_auto,f_auto")
	assert.Contains(t, thumb, "jewelry-designs/abc")
	assert.Empty(t, svc.ThumbnailURL("", 0))
}

func TestHostingDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cloudinary = config.CloudinaryConfig{}
	svc, err := NewImageStorageService(cfg, nil)
	require.NoError(t, err)

	assert.False(t, svc.Enabled())
	_, err = svc.UploadImageFromURL(context.Background(), UploadImageParams{ImageURL: "https://img.example/1.png"})
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
	assert.Empty(t, svc.ThumbnailURL("x", 10))
}

func TestNormalizeDataURI(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)

	uri, err := NormalizeDataURI("data:image/jpeg;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+encoded, uri)

	_, err = NormalizeDataURI("not base64 at all!")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = NormalizeDataURI(base64.StdEncoding.EncodeToString([]byte("plain text")))
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = NormalizeDataURI("data:image/png," + encoded)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

type fakeS3 struct {
	s3iface.S3API
	put     *s3.PutObjectInput
	deleted string
	err     error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = aws.StringValue(in.Key)
	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3BackendUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngHeader)
	}))
	defer srv.Close()

	fake := &fakeS3{}
	backend := &s3Backend{
		client:     fake,
		httpClient: srv.Client(),
		cfg:        config.AWSConfig{Region: "us-east-1", S3Bucket: "assets", CloudFrontURL: "https://cdn.example/"},
	}
	svc := &ImageStorageService{backend: backend, defaultFolder: "jewelry-designs"}

	result, err := svc.UploadImageFromURL(context.Background(), UploadImageParams{ImageURL: srv.URL + "/ring.png", Tags: []string{"jewelry"}})
	require.NoError(t, err)

	require.NotNil(t, fake.put)
	assert.Equal(t, "assets", aws.StringValue(fake.put.Bucket))
	assert.Equal(t, "image/png", aws.StringValue(fake.put.ContentType))
	assert.True(t, strings.HasPrefix(result.PublicID, "jewelry-designs/"))
	assert.True(t, strings.HasSuffix(result.PublicID, ".png"))
	assert.Equal(t, "https://cdn.example/"+result.PublicID, result.SecureURL)
	assert.Equal(t, "png", result.Format)

	require.NoError(t, svc.DeleteImage(context.Background(), result.PublicID))
	assert.Equal(t, result.PublicID, fake.deleted)
}

func TestS3BackendRejectsNonImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	fake := &fakeS3{err: errors.New("should not be called")}
	svc := &ImageStorageService{backend: &s3Backend{client: fake, httpClient: srv.Client()}}

	_, err := svc.UploadImageFromURL(context.Background(), UploadImageParams{ImageURL: srv.URL})
	assert.ErrorIs(t, err, ErrInvalidImage)
	assert.Nil(t, fake.put)
}
