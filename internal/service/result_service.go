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

var (
	// ErrResultNotFound indicates the referenced grade does not exist.
	ErrResultNotFound = errors.New("result not found")
	// ErrResultExists indicates the student already holds a grade for the
	// subject. Corrections go through update.
	ErrResultExists = errors.New("result already recorded for this subject")
)

// ResultService manages grade records.
type ResultService interface {
	Create(ctx context.Context, payload dto.ResultCreateRequest, createdByID uint) (dto.ResultResponse, error)
	List(ctx context.Context, query dto.ResultListQuery) (dto.Page[dto.ResultResponse], error)
	Get(ctx context.Context, id uint) (dto.ResultResponse, error)
	Update(ctx context.Context, id uint, payload dto.ResultUpdateRequest) (dto.ResultResponse, error)
}

type resultService struct {
	results   repository.ResultRepository
	users     repository.UserRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewResultService constructs the result service.
func NewResultService(results repository.ResultRepository, users repository.UserRepository, subjects repository.SubjectRepository, validator *validator.Validate, logger zerolog.Logger) ResultService {
	return &resultService{
		results:   results,
		users:     users,
		subjects:  subjects,
		validator: validator,
		logger:    logger.With().Str("component", "result_service").Logger(),
	}
}

func (s *resultService) Create(ctx context.Context, payload dto.ResultCreateRequest, createdByID uint) (dto.ResultResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ResultResponse{}, err
	}

	student, err := s.users.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultResponse{}, ErrStudentNotFound
		}
		return dto.ResultResponse{}, err
	}
	if student.Role != models.RoleStudent {
		return dto.ResultResponse{}, ErrStudentNotFound
	}

	subject, err := s.subjects.GetByID(ctx, payload.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultResponse{}, ErrSubjectNotFound
		}
		return dto.ResultResponse{}, err
	}

	if _, err := s.results.GetByStudentAndSubject(ctx, payload.StudentID, payload.SubjectID); err == nil {
		return dto.ResultResponse{}, ErrResultExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ResultResponse{}, err
	}

	result := models.Result{
		SubjectID:   payload.SubjectID,
		StudentID:   payload.StudentID,
		Points:      payload.Points,
		CreatedByID: createdByID,
	}

	if err := s.results.Create(ctx, &result); err != nil {
		return dto.ResultResponse{}, err
	}
	result.Subject = subject

	s.logger.Info().Uint("result_id", result.ID).Uint("student_id", result.StudentID).Msg("result recorded")

	return dto.NewResultResponse(result), nil
}

func (s *resultService) List(ctx context.Context, query dto.ResultListQuery) (dto.Page[dto.ResultResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.ResultResponse]{}, err
	}

	results, total, err := s.results.List(ctx, repository.ResultFilter{
		SubjectID: query.SubjectID,
		StudentID: query.StudentID,
		Page:      query.Page,
		Limit:     query.Limit,
	})
	if err != nil {
		return dto.Page[dto.ResultResponse]{}, err
	}

	return dto.NewPage(dto.NewResultResponseSlice(results), total, query.Page, query.Limit), nil
}

func (s *resultService) Get(ctx context.Context, id uint) (dto.ResultResponse, error) {
	result, err := s.getResult(ctx, id)
	if err != nil {
		return dto.ResultResponse{}, err
	}

	return dto.NewResultResponse(result), nil
}

func (s *resultService) Update(ctx context.Context, id uint, payload dto.ResultUpdateRequest) (dto.ResultResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ResultResponse{}, err
	}

	result, err := s.getResult(ctx, id)
	if err != nil {
		return dto.ResultResponse{}, err
	}

	result.Points = *payload.Points

	if err := s.results.Update(ctx, &result); err != nil {
		return dto.ResultResponse{}, err
	}

	s.logger.Info().Uint("result_id", result.ID).Int("points", result.Points).Msg("result corrected")

	return dto.NewResultResponse(result), nil
}

func (s *resultService) getResult(ctx context.Context, id uint) (models.Result, error) {
	result, err := s.results.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Result{}, ErrResultNotFound
		}
		return models.Result{}, err
	}

	return result, nil
}
