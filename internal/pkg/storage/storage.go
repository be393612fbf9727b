package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Object identifies a stored file. Key is the backend's opaque identifier and
// URL is where clients fetch it from.
type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type FileStorage interface {
	// Upload stores the file under path and returns its key and URL
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (Object, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, key string) error

	// GetURL returns a public or presigned URL
	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectPath builds a collision-free path inside folder that keeps the
// original file extension.
func ObjectPath(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(strings.Trim(folder, "/"), uuid.NewString()+ext)
}
