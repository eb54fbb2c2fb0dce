package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

// ErrMaterialNotFound indicates the referenced material does not exist.
var ErrMaterialNotFound = errors.New("material not found")

// MaterialService manages study materials published to batches.
type MaterialService interface {
	Create(ctx context.Context, payload dto.MaterialCreateRequest, file *multipart.FileHeader) (dto.MaterialResponse, error)
	List(ctx context.Context, query dto.MaterialListQuery) (dto.Page[dto.MaterialResponse], error)
	Get(ctx context.Context, id uint) (dto.MaterialResponse, error)
	Update(ctx context.Context, id uint, payload dto.MaterialUpdateRequest) (dto.MaterialResponse, error)
	Delete(ctx context.Context, id uint) error
}

type materialService struct {
	materials repository.MaterialRepository
	batches   repository.BatchRepository
	subjects  repository.SubjectRepository
	uploads   UploadService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMaterialService constructs the material service.
func NewMaterialService(materials repository.MaterialRepository, batches repository.BatchRepository, subjects repository.SubjectRepository, uploads UploadService, validator *validator.Validate, logger zerolog.Logger) MaterialService {
	return &materialService{
		materials: materials,
		batches:   batches,
		subjects:  subjects,
		uploads:   uploads,
		validator: validator,
		logger:    logger.With().Str("component", "material_service").Logger(),
	}
}

func (s *materialService) Create(ctx context.Context, payload dto.MaterialCreateRequest, file *multipart.FileHeader) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MaterialResponse{}, err
	}

	if _, err := s.batches.GetByID(ctx, payload.BatchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrBatchNotFound
		}
		return dto.MaterialResponse{}, err
	}
	if _, err := s.subjects.GetByID(ctx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrSubjectNotFound
		}
		return dto.MaterialResponse{}, err
	}

	uploaded, err := s.uploads.Store(ctx, file)
	if err != nil {
		return dto.MaterialResponse{}, err
	}

	material := models.Material{
		BatchID:     payload.BatchID,
		SubjectID:   payload.SubjectID,
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		File:        uploaded,
	}

	if err := s.materials.Create(ctx, &material); err != nil {
		// The stored file would otherwise be orphaned.
		_ = s.uploads.Remove(ctx, uploaded)
		return dto.MaterialResponse{}, err
	}

	s.logger.Info().Uint("material_id", material.ID).Uint("batch_id", material.BatchID).Msg("material published")

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) List(ctx context.Context, query dto.MaterialListQuery) (dto.Page[dto.MaterialResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.MaterialResponse]{}, err
	}

	materials, total, err := s.materials.List(ctx, repository.MaterialFilter{
		BatchID:   query.BatchID,
		SubjectID: query.SubjectID,
		Page:      query.Page,
		Limit:     query.Limit,
	})
	if err != nil {
		return dto.Page[dto.MaterialResponse]{}, err
	}

	return dto.NewPage(dto.NewMaterialResponseSlice(materials), total, query.Page, query.Limit), nil
}

func (s *materialService) Get(ctx context.Context, id uint) (dto.MaterialResponse, error) {
	material, err := s.getMaterial(ctx, id)
	if err != nil {
		return dto.MaterialResponse{}, err
	}

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Update(ctx context.Context, id uint, payload dto.MaterialUpdateRequest) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MaterialResponse{}, err
	}

	material, err := s.getMaterial(ctx, id)
	if err != nil {
		return dto.MaterialResponse{}, err
	}

	if payload.Title != nil {
		material.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		material.Description = strings.TrimSpace(*payload.Description)
	}

	if err := s.materials.Update(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Delete(ctx context.Context, id uint) error {
	material, err := s.getMaterial(ctx, id)
	if err != nil {
		return err
	}

	if err := s.materials.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}

	// Asset removal is best-effort once the row is gone.
	_ = s.uploads.Remove(ctx, material.File)

	s.logger.Info().Uint("material_id", id).Msg("material deleted")

	return nil
}

func (s *materialService) getMaterial(ctx context.Context, id uint) (models.Material, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Material{}, ErrMaterialNotFound
		}
		return models.Material{}, err
	}

	return material, nil
}
