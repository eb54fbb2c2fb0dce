package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

var (
	// ErrBatchNotFound indicates the referenced batch does not exist.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrBatchCompleted indicates the batch already finished its run and can
	// no longer be mutated or enrolled into.
	ErrBatchCompleted = errors.New("batch is already completed")
	// ErrBatchTerminal indicates the batch sits in the final semester and
	// must be completed rather than promoted.
	ErrBatchTerminal = errors.New("batch is in its final semester")
	// ErrBatchNotTerminal indicates completion was requested before the
	// batch reached the final semester.
	ErrBatchNotTerminal = errors.New("batch has not reached its final semester")
)

// BatchService manages cohort lifecycle: creation, promotion and completion.
type BatchService interface {
	Create(ctx context.Context, payload dto.BatchCreateRequest, createdByID uint) ([]dto.BatchResponse, error)
	List(ctx context.Context, query dto.BatchListQuery) (dto.Page[dto.BatchResponse], error)
	Get(ctx context.Context, id uint) (dto.BatchResponse, error)
	Update(ctx context.Context, id uint, payload dto.BatchUpdateRequest) (dto.BatchResponse, error)
	Promote(ctx context.Context, id uint) (dto.BatchResponse, error)
	Complete(ctx context.Context, id uint) (dto.BatchResponse, error)
}

type batchService struct {
	batches   repository.BatchRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewBatchService constructs the batch service.
func NewBatchService(batches repository.BatchRepository, subjects repository.SubjectRepository, validator *validator.Validate, logger zerolog.Logger) BatchService {
	return &batchService{
		batches:   batches,
		subjects:  subjects,
		validator: validator,
		logger:    logger.With().Str("component", "batch_service").Logger(),
		now:       time.Now,
	}
}

// Create opens one batch per department under a shared cohort name. Each
// batch starts in the first semester, seeded with that semester's subjects
// for its department.
func (s *batchService) Create(ctx context.Context, payload dto.BatchCreateRequest, createdByID uint) ([]dto.BatchResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	startingYear, err := time.Parse(dto.DateLayout, payload.StartingYear)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(payload.Name)
	created := make([]dto.BatchResponse, 0, len(models.Departments()))

	for _, department := range models.Departments() {
		batch := models.Batch{
			Name:            fmt.Sprintf("%s-%s", name, department),
			Department:      department,
			StartingYear:    startingYear,
			CurrentSemester: models.SemesterFirst,
			CreatedByID:     createdByID,
		}

		if err := s.batches.Create(ctx, &batch); err != nil {
			return nil, err
		}

		seed, err := s.subjects.ListByDepartmentAndSemester(ctx, department, models.SemesterFirst)
		if err != nil {
			return nil, err
		}
		if len(seed) > 0 {
			if err := s.batches.AppendSubjects(ctx, &batch, seed); err != nil {
				return nil, err
			}
			batch.Subjects = seed
		}

		s.logger.Info().Uint("batch_id", batch.ID).Str("department", string(department)).Msg("batch created")
		created = append(created, dto.NewBatchResponse(batch))
	}

	return created, nil
}

func (s *batchService) List(ctx context.Context, query dto.BatchListQuery) (dto.Page[dto.BatchResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.BatchResponse]{}, err
	}

	batches, total, err := s.batches.List(ctx, repository.BatchFilter{
		Department:       query.Department,
		IncludeCompleted: query.IncludeCompleted,
		Page:             query.Page,
		Limit:            query.Limit,
	})
	if err != nil {
		return dto.Page[dto.BatchResponse]{}, err
	}

	return dto.NewPage(dto.NewBatchResponseSlice(batches), total, query.Page, query.Limit), nil
}

func (s *batchService) Get(ctx context.Context, id uint) (dto.BatchResponse, error) {
	batch, err := s.batches.GetByIDWithSubjects(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BatchResponse{}, ErrBatchNotFound
		}
		return dto.BatchResponse{}, err
	}

	return dto.NewBatchResponse(batch), nil
}

func (s *batchService) Update(ctx context.Context, id uint, payload dto.BatchUpdateRequest) (dto.BatchResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BatchResponse{}, err
	}

	batch, err := s.getBatch(ctx, id)
	if err != nil {
		return dto.BatchResponse{}, err
	}
	if batch.IsCompleted {
		return dto.BatchResponse{}, ErrBatchCompleted
	}

	if payload.Name != nil {
		batch.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.IsResultsPublished != nil {
		batch.IsResultsPublished = *payload.IsResultsPublished
	}

	if err := s.batches.Update(ctx, &batch); err != nil {
		return dto.BatchResponse{}, err
	}

	return dto.NewBatchResponse(batch), nil
}

// Promote advances the batch into the next semester and unions in the
// subjects of that semester for its department. Subjects gathered in earlier
// semesters are kept.
func (s *batchService) Promote(ctx context.Context, id uint) (dto.BatchResponse, error) {
	batch, err := s.getBatch(ctx, id)
	if err != nil {
		return dto.BatchResponse{}, err
	}
	if batch.IsCompleted {
		return dto.BatchResponse{}, ErrBatchCompleted
	}

	next, ok := batch.CurrentSemester.Next()
	if !ok {
		return dto.BatchResponse{}, ErrBatchTerminal
	}

	batch.CurrentSemester = next
	if err := s.batches.Update(ctx, &batch); err != nil {
		return dto.BatchResponse{}, err
	}

	incoming, err := s.subjects.ListByDepartmentAndSemester(ctx, batch.Department, next)
	if err != nil {
		return dto.BatchResponse{}, err
	}
	if len(incoming) > 0 {
		if err := s.batches.AppendSubjects(ctx, &batch, incoming); err != nil {
			return dto.BatchResponse{}, err
		}
	}

	s.logger.Info().Uint("batch_id", batch.ID).Int("semester", int(next)).Msg("batch promoted")

	return dto.NewBatchResponse(batch), nil
}

// Complete closes out a batch. Only legal from the final semester; it also
// publishes results so graduates keep access to their grades.
func (s *batchService) Complete(ctx context.Context, id uint) (dto.BatchResponse, error) {
	batch, err := s.getBatch(ctx, id)
	if err != nil {
		return dto.BatchResponse{}, err
	}
	if batch.IsCompleted {
		return dto.BatchResponse{}, ErrBatchCompleted
	}
	if !batch.CurrentSemester.IsTerminal() {
		return dto.BatchResponse{}, ErrBatchNotTerminal
	}

	batch.IsCompleted = true
	batch.IsResultsPublished = true

	if err := s.batches.Update(ctx, &batch); err != nil {
		return dto.BatchResponse{}, err
	}

	s.logger.Info().Uint("batch_id", batch.ID).Msg("batch completed")

	return dto.NewBatchResponse(batch), nil
}

func (s *batchService) getBatch(ctx context.Context, id uint) (models.Batch, error) {
	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Batch{}, ErrBatchNotFound
		}
		return models.Batch{}, err
	}

	return batch, nil
}
