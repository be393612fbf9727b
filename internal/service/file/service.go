package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

const (
	photoMaxSize = 150 * 1024
	photoMinSize = 50 * 1024
)

var (
	imageExts    = []string{".jpg", ".jpeg", ".png"}
	documentExts = []string{".jpg", ".jpeg", ".png", ".pdf"}
)

type FileService interface {
	// UploadDocument stores an employee document under employees/<employeeCode>
	UploadDocument(ctx context.Context, employeeCode, documentType string, file io.Reader, filename string) (storage.Object, error)

	// DeleteFile removes a stored object by key
	DeleteFile(ctx context.Context, key string) error

	// RemoveDocument deletes key if storage still holds it and reports whether it did
	RemoveDocument(ctx context.Context, key string) (bool, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadDocument validates the extension, recompresses photographs to JPEG and
// uploads the file.
func (s *fileServiceImpl) UploadDocument(ctx context.Context, employeeCode, documentType string, file io.Reader, filename string) (storage.Object, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	folder := path.Join("employees", employeeCode)

	if documentType == employee.DocumentPhotograph {
		if !slices.Contains(imageExts, ext) {
			return storage.Object{}, employee.ErrInvalidFileType
		}

		buffer, err := io.ReadAll(file)
		if err != nil {
			return storage.Object{}, fmt.Errorf("failed to read image: %w", err)
		}

		compressed, err := compressImage(buffer, photoMaxSize, photoMinSize)
		if err != nil {
			return storage.Object{}, fmt.Errorf("failed to compress image: %w", err)
		}

		// Always output as JPEG after compression
		obj, err := s.storage.Upload(ctx, bytes.NewReader(compressed), storage.ObjectPath(folder, documentType+".jpg"), "image/jpeg")
		if err != nil {
			return storage.Object{}, fmt.Errorf("failed to upload photograph: %w", err)
		}
		return obj, nil
	}

	if !slices.Contains(documentExts, ext) {
		return storage.Object{}, employee.ErrInvalidFileType
	}

	obj, err := s.storage.Upload(ctx, file, storage.ObjectPath(folder, filename), contentType(ext))
	if err != nil {
		return storage.Object{}, fmt.Errorf("failed to upload document: %w", err)
	}

	return obj, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) RemoveDocument(ctx context.Context, key string) (bool, error) {
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check document %s: %w", key, err)
	}
	if !exists {
		return false, nil
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return true, nil
}

func contentType(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// ==================== HELPER FUNCTIONS ====================

// compressImage re-encodes an image as JPEG until it fits [minSize, maxSize],
// lowering quality first and resizing as a last step.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return encodeJPEG(img, 90)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	// Still too large, scale down towards the middle of the range
	targetSize := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
	newWidth := max(int(float64(originalWidth)*ratio), 1)
	newHeight := max(int(float64(originalHeight)*ratio), 1)

	return encodeJPEG(resizeImage(img, newWidth, newHeight), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
