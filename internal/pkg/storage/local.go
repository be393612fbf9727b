package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage keeps uploads on disk under basePath. The router serves that
// directory at baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve storage directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{basePath: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// BasePath is the directory served under the storage base URL.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// Upload writes to a temp file next to the target and renames it into place,
// so a half written document is never visible under its key.
func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (Object, error) {
	key, target, err := s.resolve(path)
	if err != nil {
		return Object{}, err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Object{}, fmt.Errorf("create directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return Object{}, fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return Object{}, fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return Object{}, fmt.Errorf("store %s: %w", key, err)
	}

	return Object{Key: key, URL: s.publicURL(key)}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	_, target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// GetURL ignores expiry; local files are served without signing.
func (s *LocalStorage) GetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	clean, _, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	return s.publicURL(clean), nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, target, err := s.resolve(key)
	if err != nil {
		return false, err
	}
	switch _, err := os.Stat(target); {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// resolve turns a key into its cleaned slash form and the file path under
// basePath. Keys that escape basePath or name the base itself are rejected.
func (s *LocalStorage) resolve(key string) (clean, target string, err error) {
	rel := strings.TrimPrefix(filepath.Clean(string(filepath.Separator)+key), string(filepath.Separator))
	if rel == "" {
		return "", "", fmt.Errorf("invalid file path: %q", key)
	}
	target = filepath.Join(s.basePath, rel)
	if !strings.HasPrefix(target, s.basePath+string(filepath.Separator)) {
		return "", "", fmt.Errorf("invalid file path: %q", key)
	}
	return filepath.ToSlash(rel), target, nil
}

func (s *LocalStorage) publicURL(key string) string {
	return s.baseURL + "/" + key
}
