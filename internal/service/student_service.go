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

// ErrStudentNotFound indicates the referenced student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// StudentService manages student accounts and their enrollment records.
type StudentService interface {
	Create(ctx context.Context, payload dto.StudentCreateRequest, createdByID uint) (dto.StudentResponse, error)
	List(ctx context.Context, query dto.StudentListQuery) (dto.Page[dto.StudentResponse], error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	SetActivity(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.StudentResponse, error)
	ResetPassword(ctx context.Context, id uint) error
}

type studentService struct {
	users     repository.UserRepository
	academics repository.AcademicDetailRepository
	batches   repository.BatchRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the student management service.
func NewStudentService(users repository.UserRepository, academics repository.AcademicDetailRepository, batches repository.BatchRepository, validator *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		users:     users,
		academics: academics,
		batches:   batches,
		validator: validator,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

// Create provisions a student account and enrolls it into a batch. The
// initial password is derived from the date of birth; the first login forces
// a change.
func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest, createdByID uint) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	batch, err := s.batches.GetByID(ctx, payload.BatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrBatchNotFound
		}
		return dto.StudentResponse{}, err
	}
	if batch.IsCompleted {
		return dto.StudentResponse{}, ErrBatchCompleted
	}

	if _, err := s.users.GetBySecretID(ctx, payload.SecretID); err == nil {
		return dto.StudentResponse{}, ErrSecretIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.StudentResponse{}, err
	}

	dob, err := time.Parse(dto.DateLayout, payload.DateOfBirth)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	hashed, err := hashPassword(defaultPasswordFromDOB(dob))
	if err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.User{
		Name:         strings.TrimSpace(payload.Name),
		SecretID:     strings.TrimSpace(payload.SecretID),
		Email:        strings.TrimSpace(payload.Email),
		PasswordHash: hashed,
		Role:         models.RoleStudent,
		DateOfBirth:  dob,
		Gender:       payload.Gender,
		BloodGroup:   strings.TrimSpace(payload.BloodGroup),
		PhoneNumber:  strings.TrimSpace(payload.PhoneNumber),
		Address:      strings.TrimSpace(payload.Address),
		IsActive:     true,
		IsFirstLogin: true,
		CreatedByID:  &createdByID,
	}

	if err := s.users.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	detail := models.AcademicDetail{
		StudentID:  student.ID,
		BatchID:    batch.ID,
		Department: batch.Department,
		Status:     models.StudentStatusActive,
	}
	if err := s.academics.Create(ctx, &detail); err != nil {
		return dto.StudentResponse{}, err
	}
	detail.Batch = batch

	s.logger.Info().Uint("student_id", student.ID).Uint("batch_id", batch.ID).Msg("student enrolled")

	return dto.NewStudentResponse(student, detail), nil
}

func (s *studentService) List(ctx context.Context, query dto.StudentListQuery) (dto.Page[dto.StudentResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.StudentResponse]{}, err
	}

	details, total, err := s.academics.List(ctx, repository.StudentFilter{
		Department: query.Department,
		BatchID:    query.BatchID,
		Page:       query.Page,
		Limit:      query.Limit,
	})
	if err != nil {
		return dto.Page[dto.StudentResponse]{}, err
	}

	students := make([]dto.StudentResponse, 0, len(details))
	for _, detail := range details {
		students = append(students, dto.NewStudentResponse(detail.Student, detail))
	}

	return dto.NewPage(students, total, query.Page, query.Limit), nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, detail, err := s.getStudent(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student, detail), nil
}

func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, detail, err := s.getStudent(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	if payload.Name != nil {
		student.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		student.Email = strings.TrimSpace(*payload.Email)
	}
	if payload.PhoneNumber != nil {
		student.PhoneNumber = strings.TrimSpace(*payload.PhoneNumber)
	}
	if payload.BloodGroup != nil {
		student.BloodGroup = strings.TrimSpace(*payload.BloodGroup)
	}
	if payload.Address != nil {
		student.Address = strings.TrimSpace(*payload.Address)
	}

	if err := s.users.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	if payload.Status != nil && *payload.Status != detail.Status {
		detail.Status = *payload.Status
		if err := s.academics.Update(ctx, &detail); err != nil {
			return dto.StudentResponse{}, err
		}
	}

	return dto.NewStudentResponse(student, detail), nil
}

func (s *studentService) SetActivity(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, detail, err := s.getStudent(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	student.IsActive = *payload.IsActive

	if err := s.users.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Bool("is_active", student.IsActive).Msg("student activity updated")

	return dto.NewStudentResponse(student, detail), nil
}

// ResetPassword restores the date-of-birth derived default password.
func (s *studentService) ResetPassword(ctx context.Context, id uint) error {
	student, _, err := s.getStudent(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := hashPassword(defaultPasswordFromDOB(student.DateOfBirth))
	if err != nil {
		return err
	}

	student.PasswordHash = hashed
	student.IsFirstLogin = true

	if err := s.users.Update(ctx, &student); err != nil {
		return err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student password reset")

	return nil
}

func (s *studentService) getStudent(ctx context.Context, id uint) (models.User, models.AcademicDetail, error) {
	student, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.AcademicDetail{}, ErrStudentNotFound
		}
		return models.User{}, models.AcademicDetail{}, err
	}
	if student.Role != models.RoleStudent {
		return models.User{}, models.AcademicDetail{}, ErrStudentNotFound
	}

	detail, err := s.academics.GetByStudentID(ctx, student.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.AcademicDetail{}, ErrStudentNotFound
		}
		return models.User{}, models.AcademicDetail{}, err
	}

	return student, detail, nil
}
