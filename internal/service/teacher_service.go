package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

// ErrTeacherNotFound indicates the referenced teacher does not exist.
var ErrTeacherNotFound = errors.New("teacher not found")

// TeacherService manages teacher accounts.
type TeacherService interface {
	Create(ctx context.Context, payload dto.TeacherCreateRequest, createdByID uint) (dto.UserResponse, error)
	List(ctx context.Context, query dto.ListQuery) (dto.Page[dto.UserResponse], error)
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, id uint, payload dto.TeacherUpdateRequest) (dto.UserResponse, error)
	SetActivity(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.UserResponse, error)
	ResetPassword(ctx context.Context, id uint) error
}

type teacherService struct {
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeacherService constructs the teacher management service.
func NewTeacherService(users repository.UserRepository, validator *validator.Validate, logger zerolog.Logger) TeacherService {
	return &teacherService{
		users:     users,
		validator: validator,
		logger:    logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) Create(ctx context.Context, payload dto.TeacherCreateRequest, createdByID uint) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.users.GetBySecretID(ctx, payload.SecretID); err == nil {
		return dto.UserResponse{}, ErrSecretIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	dob, err := time.Parse(dto.DateLayout, payload.DateOfBirth)
	if err != nil {
		return dto.UserResponse{}, err
	}

	hashed, err := hashPassword(defaultPasswordFromDOB(dob))
	if err != nil {
		return dto.UserResponse{}, err
	}

	teacher := models.User{
		Name:         strings.TrimSpace(payload.Name),
		SecretID:     strings.TrimSpace(payload.SecretID),
		Email:        strings.TrimSpace(payload.Email),
		PasswordHash: hashed,
		Role:         models.RoleTeacher,
		DateOfBirth:  dob,
		Gender:       payload.Gender,
		BloodGroup:   strings.TrimSpace(payload.BloodGroup),
		PhoneNumber:  strings.TrimSpace(payload.PhoneNumber),
		Address:      strings.TrimSpace(payload.Address),
		IsActive:     true,
		IsFirstLogin: true,
		CreatedByID:  &createdByID,
	}

	if err := s.users.Create(ctx, &teacher); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher account created")

	return dto.NewUserResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context, query dto.ListQuery) (dto.Page[dto.UserResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.UserResponse]{}, err
	}

	teachers, total, err := s.users.List(ctx, repository.UserFilter{
		Role:  models.RoleTeacher,
		Page:  query.Page,
		Limit: query.Limit,
	})
	if err != nil {
		return dto.Page[dto.UserResponse]{}, err
	}

	return dto.NewPage(dto.NewUserResponseSlice(teachers), total, query.Page, query.Limit), nil
}

func (s *teacherService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(teacher), nil
}

func (s *teacherService) Update(ctx context.Context, id uint, payload dto.TeacherUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if payload.Name != nil {
		teacher.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		teacher.Email = strings.TrimSpace(*payload.Email)
	}
	if payload.PhoneNumber != nil {
		teacher.PhoneNumber = strings.TrimSpace(*payload.PhoneNumber)
	}
	if payload.BloodGroup != nil {
		teacher.BloodGroup = strings.TrimSpace(*payload.BloodGroup)
	}
	if payload.Address != nil {
		teacher.Address = strings.TrimSpace(*payload.Address)
	}

	if err := s.users.Update(ctx, &teacher); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(teacher), nil
}

func (s *teacherService) SetActivity(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	teacher.IsActive = *payload.IsActive

	if err := s.users.Update(ctx, &teacher); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Bool("is_active", teacher.IsActive).Msg("teacher activity updated")

	return dto.NewUserResponse(teacher), nil
}

func (s *teacherService) ResetPassword(ctx context.Context, id uint) error {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := hashPassword(defaultPasswordFromDOB(teacher.DateOfBirth))
	if err != nil {
		return err
	}

	teacher.PasswordHash = hashed
	teacher.IsFirstLogin = true

	if err := s.users.Update(ctx, &teacher); err != nil {
		return err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher password reset")

	return nil
}

func (s *teacherService) getTeacher(ctx context.Context, id uint) (models.User, error) {
	teacher, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrTeacherNotFound
		}
		return models.User{}, err
	}
	if teacher.Role != models.RoleTeacher {
		return models.User{}, ErrTeacherNotFound
	}

	return teacher, nil
}
