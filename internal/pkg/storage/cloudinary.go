package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage keeps files in Cloudinary. Keys are Cloudinary public ids.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryStorage{cld: cld, folder: strings.Trim(folder, "/")}, nil
}

// publicID strips the extension; Cloudinary appends the format itself.
func publicID(p string) string {
	p = strings.TrimLeft(p, "/")
	return strings.TrimSuffix(p, path.Ext(p))
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, p string, contentType string) (Object, error) {
	id := publicID(p)
	if s.folder != "" {
		id = s.folder + "/" + id
	}

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     id,
		ResourceType: "auto",
	})
	if err != nil {
		return Object{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return Object{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	return Object{Key: resp.PublicID, URL: resp.SecureURL}, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, key string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Error.Message)
	}
	return nil
}

// GetURL builds the delivery URL. Assets are public, so expiry is unused.
func (s *CloudinaryStorage) GetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	img, err := s.cld.Image(key)
	if err != nil {
		return "", fmt.Errorf("cloudinary url: %w", err)
	}
	return img.String()
}

func (s *CloudinaryStorage) Exists(ctx context.Context, key string) (bool, error) {
	resp, err := s.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: key})
	if err != nil {
		return false, fmt.Errorf("cloudinary asset: %w", err)
	}
	if resp.Error.Message != "" {
		if strings.Contains(strings.ToLower(resp.Error.Message), "not found") {
			return false, nil
		}
		return false, errors.New(resp.Error.Message)
	}
	return true, nil
}
