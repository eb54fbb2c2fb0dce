package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/pkg/cloudinary"
)

type stubUploader struct {
	mu        sync.Mutex
	uploads   int
	destroyed []string
	failNext  bool
}

func (s *stubUploader) Upload(_ context.Context, name string, reader io.Reader) (cloudinary.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		s.failNext = false
		return cloudinary.Asset{}, fmt.Errorf("upload failed")
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return cloudinary.Asset{}, err
	}
	s.uploads++
	publicID := fmt.Sprintf("test/%s-%d", name, s.uploads)
	return cloudinary.Asset{PublicID: publicID, SecureURL: "https://cdn.test/" + publicID}, nil
}

func (s *stubUploader) Destroy(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = append(s.destroyed, publicID)
	return nil
}

func openTestDB(t *testing.T, name string, entities ...any) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))

	return db
}

func allEntities() []any {
	return []any{
		&models.User{},
		&models.Session{},
		&models.AcademicDetail{},
		&models.Batch{},
		&models.Subject{},
		&models.Assignment{},
		&models.Submission{},
		&models.Material{},
		&models.Routine{},
		&models.Result{},
		&models.Notice{},
	}
}

// makeFileHeader builds a real multipart file header the way Fiber would
// hand one to a handler.
func makeFileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File[field]
	require.Len(t, files, 1)

	return files[0]
}

// pngBytes is a minimal valid PNG header so MIME sniffing sees an image.
func pngBytes() []byte {
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
}
