package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

var (
	// ErrSubjectNotFound indicates the referenced subject does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrSubjectCodeTaken indicates the subject code is already in the catalog.
	ErrSubjectCodeTaken = errors.New("subject code already in use")
	// ErrNotTeacher indicates the referenced account is not a teacher.
	ErrNotTeacher = errors.New("assigned user is not a teacher")
)

// SubjectService manages the subject catalog.
type SubjectService interface {
	Create(ctx context.Context, payload dto.SubjectCreateRequest) (dto.SubjectResponse, error)
	List(ctx context.Context, query dto.SubjectListQuery) (dto.Page[dto.SubjectResponse], error)
	Get(ctx context.Context, id uint) (dto.SubjectResponse, error)
	Update(ctx context.Context, id uint, payload dto.SubjectUpdateRequest) (dto.SubjectResponse, error)
}

type subjectService struct {
	subjects  repository.SubjectRepository
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(subjects repository.SubjectRepository, users repository.UserRepository, validator *validator.Validate, logger zerolog.Logger) SubjectService {
	return &subjectService{
		subjects:  subjects,
		users:     users,
		validator: validator,
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) Create(ctx context.Context, payload dto.SubjectCreateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(payload.SubjectCode))

	if _, err := s.subjects.GetBySubjectCode(ctx, code); err == nil {
		return dto.SubjectResponse{}, ErrSubjectCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubjectResponse{}, err
	}

	subject := models.Subject{
		SubjectCode: code,
		SubjectName: strings.TrimSpace(payload.SubjectName),
		Department:  payload.Department,
		Semester:    payload.Semester,
		SubjectType: payload.SubjectType,
		Credits:     payload.Credits,
	}

	if err := s.subjects.Create(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	s.logger.Info().Uint("subject_id", subject.ID).Str("subject_code", subject.SubjectCode).Msg("subject created")

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) List(ctx context.Context, query dto.SubjectListQuery) (dto.Page[dto.SubjectResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.SubjectResponse]{}, err
	}

	subjects, total, err := s.subjects.List(ctx, repository.SubjectFilter{
		Department: query.Department,
		Semester:   query.Semester,
		Page:       query.Page,
		Limit:      query.Limit,
	})
	if err != nil {
		return dto.Page[dto.SubjectResponse]{}, err
	}

	return dto.NewPage(dto.NewSubjectResponseSlice(subjects), total, query.Page, query.Limit), nil
}

func (s *subjectService) Get(ctx context.Context, id uint) (dto.SubjectResponse, error) {
	subject, err := s.getSubject(ctx, id)
	if err != nil {
		return dto.SubjectResponse{}, err
	}

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) Update(ctx context.Context, id uint, payload dto.SubjectUpdateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject, err := s.getSubject(ctx, id)
	if err != nil {
		return dto.SubjectResponse{}, err
	}

	if payload.SubjectName != nil {
		subject.SubjectName = strings.TrimSpace(*payload.SubjectName)
	}
	if payload.SubjectType != nil {
		subject.SubjectType = *payload.SubjectType
	}
	if payload.Credits != nil {
		subject.Credits = *payload.Credits
	}
	if payload.IsDeprecated != nil {
		subject.IsDeprecated = *payload.IsDeprecated
	}
	if payload.AssignedTeacherID != nil {
		if *payload.AssignedTeacherID == 0 {
			subject.AssignedTeacherID = nil
			subject.AssignedTeacher = nil
		} else {
			teacher, err := s.users.GetByID(ctx, *payload.AssignedTeacherID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return dto.SubjectResponse{}, ErrNotTeacher
				}
				return dto.SubjectResponse{}, err
			}
			if teacher.Role != models.RoleTeacher {
				return dto.SubjectResponse{}, ErrNotTeacher
			}
			subject.AssignedTeacherID = payload.AssignedTeacherID
			subject.AssignedTeacher = &teacher
		}
	}

	if err := s.subjects.Update(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) getSubject(ctx context.Context, id uint) (models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subject{}, ErrSubjectNotFound
		}
		return models.Subject{}, err
	}

	return subject, nil
}
