package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

// ErrRoutineNotFound indicates the referenced class slot does not exist.
var ErrRoutineNotFound = errors.New("routine not found")

// RoutineService manages weekly class schedules.
type RoutineService interface {
	Create(ctx context.Context, payload dto.RoutineCreateRequest, createdByID uint) (dto.RoutineResponse, error)
	List(ctx context.Context, query dto.RoutineListQuery) (dto.Page[dto.RoutineResponse], error)
	Update(ctx context.Context, id uint, payload dto.RoutineUpdateRequest) (dto.RoutineResponse, error)
	Delete(ctx context.Context, id uint) error
}

type routineService struct {
	routines  repository.RoutineRepository
	batches   repository.BatchRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRoutineService constructs the routine service.
func NewRoutineService(routines repository.RoutineRepository, batches repository.BatchRepository, subjects repository.SubjectRepository, validator *validator.Validate, logger zerolog.Logger) RoutineService {
	return &routineService{
		routines:  routines,
		batches:   batches,
		subjects:  subjects,
		validator: validator,
		logger:    logger.With().Str("component", "routine_service").Logger(),
	}
}

func (s *routineService) Create(ctx context.Context, payload dto.RoutineCreateRequest, createdByID uint) (dto.RoutineResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RoutineResponse{}, err
	}

	if _, err := s.batches.GetByID(ctx, payload.BatchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RoutineResponse{}, ErrBatchNotFound
		}
		return dto.RoutineResponse{}, err
	}
	subject, err := s.subjects.GetByID(ctx, payload.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RoutineResponse{}, ErrSubjectNotFound
		}
		return dto.RoutineResponse{}, err
	}

	routine := models.Routine{
		BatchID:     payload.BatchID,
		SubjectID:   payload.SubjectID,
		Day:         payload.Day,
		Shift:       payload.Shift,
		Semester:    payload.Semester,
		CreatedByID: createdByID,
	}

	if err := s.routines.Create(ctx, &routine); err != nil {
		return dto.RoutineResponse{}, err
	}
	routine.Subject = subject

	s.logger.Info().Uint("routine_id", routine.ID).Uint("batch_id", routine.BatchID).Msg("class slot scheduled")

	return dto.NewRoutineResponse(routine), nil
}

func (s *routineService) List(ctx context.Context, query dto.RoutineListQuery) (dto.Page[dto.RoutineResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.RoutineResponse]{}, err
	}

	routines, total, err := s.routines.List(ctx, repository.RoutineFilter{
		BatchID:   query.BatchID,
		SubjectID: query.SubjectID,
		Day:       query.Day,
		Page:      query.Page,
		Limit:     query.Limit,
	})
	if err != nil {
		return dto.Page[dto.RoutineResponse]{}, err
	}

	return dto.NewPage(dto.NewRoutineResponseSlice(routines), total, query.Page, query.Limit), nil
}

func (s *routineService) Update(ctx context.Context, id uint, payload dto.RoutineUpdateRequest) (dto.RoutineResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RoutineResponse{}, err
	}

	routine, err := s.routines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RoutineResponse{}, ErrRoutineNotFound
		}
		return dto.RoutineResponse{}, err
	}

	if payload.SubjectID != nil {
		subject, err := s.subjects.GetByID(ctx, *payload.SubjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.RoutineResponse{}, ErrSubjectNotFound
			}
			return dto.RoutineResponse{}, err
		}
		routine.SubjectID = subject.ID
		routine.Subject = subject
	}
	if payload.Day != nil {
		routine.Day = *payload.Day
	}
	if payload.Shift != nil {
		routine.Shift = *payload.Shift
	}

	if err := s.routines.Update(ctx, &routine); err != nil {
		return dto.RoutineResponse{}, err
	}

	return dto.NewRoutineResponse(routine), nil
}

func (s *routineService) Delete(ctx context.Context, id uint) error {
	if err := s.routines.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}

	s.logger.Info().Uint("routine_id", id).Msg("class slot removed")

	return nil
}
