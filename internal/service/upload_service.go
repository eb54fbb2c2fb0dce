package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/pkg/cloudinary"
)

var (
	// ErrUploadMissing indicates no file part arrived with the request.
	ErrUploadMissing = errors.New("file is required")
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

// FileUploader abstracts the asset store backing uploads.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (cloudinary.Asset, error)
	Destroy(ctx context.Context, publicID string) error
}

// UploadService validates incoming files and hands them to the asset store.
type UploadService interface {
	Store(ctx context.Context, file *multipart.FileHeader) (models.FileRef, error)
	Remove(ctx context.Context, ref models.FileRef) error
}

type uploadService struct {
	storage FileUploader
	logger  zerolog.Logger
	maxSize int64
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileUploader, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &uploadService{
		storage: storage,
		logger:  logger.With().Str("component", "upload_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
	}
}

func (s *uploadService) Store(ctx context.Context, file *multipart.FileHeader) (models.FileRef, error) {
	if file == nil {
		return models.FileRef{}, ErrUploadMissing
	}
	if file.Size > s.maxSize {
		return models.FileRef{}, ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return models.FileRef{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return models.FileRef{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		return models.FileRef{}, ErrUploadTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	if !isAllowedType(detected.String()) {
		return models.FileRef{}, ErrUploadTypeNotAllowed
	}

	asset, err := s.storage.Upload(ctx, sanitizeFileName(file.Filename), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return models.FileRef{}, err
	}

	return models.FileRef{PublicID: asset.PublicID, URL: asset.SecureURL}, nil
}

func (s *uploadService) Remove(ctx context.Context, ref models.FileRef) error {
	if ref.IsZero() {
		return nil
	}
	if err := s.storage.Destroy(ctx, ref.PublicID); err != nil {
		s.logger.Warn().Err(err).Str("public_id", ref.PublicID).Msg("failed to remove stored file")
		return err
	}

	return nil
}

func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("upload-%d", time.Now().Unix())
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}

	return base + ext
}

func isAllowedType(m string) bool {
	lower := strings.ToLower(strings.TrimSpace(m))
	if strings.HasPrefix(lower, "image/") {
		return true
	}
	switch lower {
	case "application/pdf", "application/zip", "application/x-zip-compressed",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return true
	default:
		return false
	}
}
