package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

// ErrNoticeNotFound indicates the referenced notice does not exist.
var ErrNoticeNotFound = errors.New("notice not found")

// NoticeService manages announcements. Description HTML is sanitized before
// it ever reaches the store.
type NoticeService interface {
	Create(ctx context.Context, payload dto.NoticeCreateRequest, attachments []*multipart.FileHeader, createdByID uint) (dto.NoticeResponse, error)
	List(ctx context.Context, query dto.NoticeListQuery) (dto.Page[dto.NoticeResponse], error)
	Get(ctx context.Context, id uint) (dto.NoticeResponse, error)
	Update(ctx context.Context, id uint, payload dto.NoticeUpdateRequest) (dto.NoticeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type noticeService struct {
	notices   repository.NoticeRepository
	uploads   UploadService
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewNoticeService constructs the notice service.
func NewNoticeService(notices repository.NoticeRepository, uploads UploadService, validator *validator.Validate, logger zerolog.Logger) NoticeService {
	return &noticeService{
		notices:   notices,
		uploads:   uploads,
		sanitizer: bluemonday.UGCPolicy(),
		validator: validator,
		logger:    logger.With().Str("component", "notice_service").Logger(),
	}
}

func (s *noticeService) Create(ctx context.Context, payload dto.NoticeCreateRequest, attachments []*multipart.FileHeader, createdByID uint) (dto.NoticeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NoticeResponse{}, err
	}

	date, err := time.Parse(dto.DateLayout, payload.Date)
	if err != nil {
		return dto.NoticeResponse{}, err
	}

	stored := make([]models.FileRef, 0, len(attachments))
	for _, attachment := range attachments {
		ref, err := s.uploads.Store(ctx, attachment)
		if err != nil {
			for _, uploaded := range stored {
				_ = s.uploads.Remove(ctx, uploaded)
			}
			return dto.NoticeResponse{}, err
		}
		stored = append(stored, ref)
	}

	notice := models.Notice{
		Title:       strings.TrimSpace(payload.Title),
		Description: s.sanitizer.Sanitize(payload.Description),
		Date:        date,
		Department:  payload.Department,
		Semester:    payload.Semester,
		CreatedByID: createdByID,
		Attachments: stored,
	}

	if err := s.notices.Create(ctx, &notice); err != nil {
		for _, uploaded := range stored {
			_ = s.uploads.Remove(ctx, uploaded)
		}
		return dto.NoticeResponse{}, err
	}

	s.logger.Info().Uint("notice_id", notice.ID).Str("department", string(notice.Department)).Msg("notice published")

	return dto.NewNoticeResponse(notice), nil
}

func (s *noticeService) List(ctx context.Context, query dto.NoticeListQuery) (dto.Page[dto.NoticeResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.NoticeResponse]{}, err
	}

	notices, total, err := s.notices.List(ctx, repository.NoticeFilter{
		Department: query.Department,
		Semester:   query.Semester,
		Page:       query.Page,
		Limit:      query.Limit,
	})
	if err != nil {
		return dto.Page[dto.NoticeResponse]{}, err
	}

	return dto.NewPage(dto.NewNoticeResponseSlice(notices), total, query.Page, query.Limit), nil
}

func (s *noticeService) Get(ctx context.Context, id uint) (dto.NoticeResponse, error) {
	notice, err := s.getNotice(ctx, id)
	if err != nil {
		return dto.NoticeResponse{}, err
	}

	return dto.NewNoticeResponse(notice), nil
}

func (s *noticeService) Update(ctx context.Context, id uint, payload dto.NoticeUpdateRequest) (dto.NoticeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NoticeResponse{}, err
	}

	notice, err := s.getNotice(ctx, id)
	if err != nil {
		return dto.NoticeResponse{}, err
	}

	if payload.Title != nil {
		notice.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		notice.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.Date != nil {
		date, err := time.Parse(dto.DateLayout, *payload.Date)
		if err != nil {
			return dto.NoticeResponse{}, err
		}
		notice.Date = date
	}

	if err := s.notices.Update(ctx, &notice); err != nil {
		return dto.NoticeResponse{}, err
	}

	return dto.NewNoticeResponse(notice), nil
}

func (s *noticeService) Delete(ctx context.Context, id uint) error {
	notice, err := s.getNotice(ctx, id)
	if err != nil {
		return err
	}

	if err := s.notices.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}

	for _, attachment := range notice.Attachments {
		_ = s.uploads.Remove(ctx, attachment)
	}

	s.logger.Info().Uint("notice_id", id).Msg("notice deleted")

	return nil
}

func (s *noticeService) getNotice(ctx context.Context, id uint) (models.Notice, error) {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notice{}, ErrNoticeNotFound
		}
		return models.Notice{}, err
	}

	return notice, nil
}
