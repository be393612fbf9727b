package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploaded struct {
	path        string
	contentType string
	body        []byte
}

type fakeStorage struct {
	uploads []uploaded
	deleted []string
	absent  map[string]bool
}

func (f *fakeStorage) Upload(ctx context.Context, file io.Reader, p string, contentType string) (storage.Object, error) {
	body, err := io.ReadAll(file)
	if err != nil {
		return storage.Object{}, err
	}
	f.uploads = append(f.uploads, uploaded{path: p, contentType: contentType, body: body})
	return storage.Object{Key: p, URL: "https://files.test/" + p}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) GetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://files.test/" + key, nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	return !f.absent[key], nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadDocument_PDF(t *testing.T) {
	fs := &fakeStorage{}
	svc := NewFileService(fs)

	obj, err := svc.UploadDocument(context.Background(), "NM123456789", employee.DocumentPANCard, strings.NewReader("%PDF-1.4"), "Pan.PDF")
	require.NoError(t, err)

	require.Len(t, fs.uploads, 1)
	assert.True(t, strings.HasPrefix(fs.uploads[0].path, "employees/NM123456789/"))
	assert.True(t, strings.HasSuffix(fs.uploads[0].path, ".pdf"))
	assert.Equal(t, "application/pdf", fs.uploads[0].contentType)
	assert.Equal(t, fs.uploads[0].path, obj.Key)
}

func TestUploadDocument_PhotographIsJPEG(t *testing.T) {
	fs := &fakeStorage{}
	svc := NewFileService(fs)

	_, err := svc.UploadDocument(context.Background(), "NM123456789", employee.DocumentPhotograph, bytes.NewReader(pngBytes(t, 64, 64)), "me.png")
	require.NoError(t, err)

	require.Len(t, fs.uploads, 1)
	assert.Equal(t, "image/jpeg", fs.uploads[0].contentType)
	assert.True(t, strings.HasSuffix(fs.uploads[0].path, ".jpg"))
	_, format, err := image.Decode(bytes.NewReader(fs.uploads[0].body))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestUploadDocument_RejectsExtension(t *testing.T) {
	fs := &fakeStorage{}
	svc := NewFileService(fs)

	_, err := svc.UploadDocument(context.Background(), "NM123456789", employee.DocumentAadhaarCard, strings.NewReader("x"), "aadhaar.exe")
	assert.ErrorIs(t, err, employee.ErrInvalidFileType)

	_, err = svc.UploadDocument(context.Background(), "NM123456789", employee.DocumentPhotograph, strings.NewReader("x"), "photo.pdf")
	assert.ErrorIs(t, err, employee.ErrInvalidFileType)

	assert.Empty(t, fs.uploads)
}

func TestRemoveDocument_ChecksExistenceFirst(t *testing.T) {
	fs := &fakeStorage{absent: map[string]bool{"employees/NM123456789/gone.pdf": true}}
	svc := NewFileService(fs)

	removed, err := svc.RemoveDocument(context.Background(), "employees/NM123456789/pan.pdf")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveDocument(context.Background(), "employees/NM123456789/gone.pdf")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, []string{"employees/NM123456789/pan.pdf"}, fs.deleted)
}
