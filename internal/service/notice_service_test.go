package service

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

func setupNoticeService(t *testing.T) (*gorm.DB, NoticeService, *stubUploader) {
	t.Helper()

	db := openTestDB(t, "notice", &models.Notice{})
	uploader := &stubUploader{}
	uploads := NewUploadService(uploader, 10, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewNoticeService(repository.NewNoticeRepository(db), uploads, validate, zerolog.Nop())

	return db, svc, uploader
}

func TestNoticeServiceCreateSanitizesDescription(t *testing.T) {
	_, svc, _ := setupNoticeService(t)

	created, err := svc.Create(context.Background(), dto.NoticeCreateRequest{
		Title:       "Exam Schedule",
		Description: `<p>Exams start Monday.</p><script>alert("x")</script>`,
		Date:        "2026-09-10",
		Department:  models.DepartmentCSE,
	}, nil, 3)
	require.NoError(t, err)
	require.Contains(t, created.Description, "<p>Exams start Monday.</p>")
	require.NotContains(t, created.Description, "<script>")
	require.Empty(t, created.Attachments)
}

func TestNoticeServiceCreateWithAttachments(t *testing.T) {
	_, svc, _ := setupNoticeService(t)

	attachments := []*multipart.FileHeader{
		makeFileHeader(t, "attachments", "schedule.png", pngBytes()),
	}

	created, err := svc.Create(context.Background(), dto.NoticeCreateRequest{
		Title:       "Holiday Notice",
		Description: "Campus closed on Friday.",
		Date:        "2026-09-12",
	}, attachments, 3)
	require.NoError(t, err)
	require.Len(t, created.Attachments, 1)
	require.NotEmpty(t, created.Attachments[0].URL)
}

func TestNoticeServiceDeleteRemovesAttachments(t *testing.T) {
	_, svc, uploader := setupNoticeService(t)

	attachments := []*multipart.FileHeader{
		makeFileHeader(t, "attachments", "map.png", pngBytes()),
	}
	created, err := svc.Create(context.Background(), dto.NoticeCreateRequest{
		Title:       "Campus Map",
		Description: "Updated map attached.",
		Date:        "2026-09-15",
	}, attachments, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Len(t, uploader.destroyed, 1)

	err = svc.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNoticeNotFound)
}

func TestNoticeServiceUpdateSanitizes(t *testing.T) {
	_, svc, _ := setupNoticeService(t)

	created, err := svc.Create(context.Background(), dto.NoticeCreateRequest{
		Title:       "Seminar",
		Description: "Details follow.",
		Date:        "2026-09-20",
	}, nil, 3)
	require.NoError(t, err)

	malicious := `<b>New time</b><img src=x onerror=alert(1)>`
	updated, err := svc.Update(context.Background(), created.ID, dto.NoticeUpdateRequest{Description: &malicious})
	require.NoError(t, err)
	require.Contains(t, updated.Description, "<b>New time</b>")
	require.NotContains(t, updated.Description, "onerror")
}
