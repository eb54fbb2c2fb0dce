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

var (
	// ErrAssignmentNotFound indicates the referenced assignment does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrSubmissionNotFound indicates no submission exists for the student.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrDueDatePast indicates the requested due date already passed.
	ErrDueDatePast = errors.New("assignment due date must be in the future")
	// ErrMarksExceedMaximum indicates the awarded marks exceed the
	// assignment's total.
	ErrMarksExceedMaximum = errors.New("marks exceed the assignment maximum")
)

// AssignmentService manages homework and its grading.
type AssignmentService interface {
	Create(ctx context.Context, payload dto.AssignmentCreateRequest, givenByID uint) (dto.AssignmentResponse, error)
	List(ctx context.Context, query dto.AssignmentListQuery) (dto.Page[dto.AssignmentResponse], error)
	Get(ctx context.Context, id uint) (dto.AssignmentResponse, error)
	Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	ListSubmissions(ctx context.Context, assignmentID uint) ([]dto.SubmissionResponse, error)
	GradeSubmission(ctx context.Context, assignmentID, studentID uint, payload dto.SubmissionGradeRequest) (dto.SubmissionResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	batches     repository.BatchRepository
	subjects    repository.SubjectRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, batches repository.BatchRepository, subjects repository.SubjectRepository, validator *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		batches:     batches,
		subjects:    subjects,
		validator:   validator,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest, givenByID uint) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if _, err := s.batches.GetByID(ctx, payload.BatchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrBatchNotFound
		}
		return dto.AssignmentResponse{}, err
	}
	if _, err := s.subjects.GetByID(ctx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrSubjectNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := time.Parse(dto.ISOLayout, payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	if dueDate.Before(s.now()) {
		return dto.AssignmentResponse{}, ErrDueDatePast
	}

	assignment := models.Assignment{
		BatchID:     payload.BatchID,
		SubjectID:   payload.SubjectID,
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		DueDate:     dueDate,
		Marks:       payload.Marks,
		GivenByID:   givenByID,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("batch_id", assignment.BatchID).Msg("assignment given")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) List(ctx context.Context, query dto.AssignmentListQuery) (dto.Page[dto.AssignmentResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.AssignmentResponse]{}, err
	}

	assignments, total, err := s.assignments.List(ctx, repository.AssignmentFilter{
		BatchID:   query.BatchID,
		SubjectID: query.SubjectID,
		Page:      query.Page,
		Limit:     query.Limit,
	})
	if err != nil {
		return dto.Page[dto.AssignmentResponse]{}, err
	}

	return dto.NewPage(dto.NewAssignmentResponseSlice(assignments), total, query.Page, query.Limit), nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	if payload.Title != nil {
		assignment.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		assignment.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.DueDate != nil {
		dueDate, err := time.Parse(dto.ISOLayout, *payload.DueDate)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}
		if dueDate.Before(s.now()) {
			return dto.AssignmentResponse{}, ErrDueDatePast
		}
		assignment.DueDate = dueDate
	}
	if payload.Marks != nil {
		assignment.Marks = *payload.Marks
	}
	if payload.IsClosed != nil {
		assignment.IsClosed = *payload.IsClosed
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) ListSubmissions(ctx context.Context, assignmentID uint) ([]dto.SubmissionResponse, error) {
	if _, err := s.getAssignment(ctx, assignmentID); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

// GradeSubmission awards marks for a student's submission and flags it read.
// Marks may not exceed the assignment total.
func (s *assignmentService) GradeSubmission(ctx context.Context, assignmentID, studentID uint, payload dto.SubmissionGradeRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.getAssignment(ctx, assignmentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if payload.MarksObtained > assignment.Marks {
		return dto.SubmissionResponse{}, ErrMarksExceedMaximum
	}

	submission, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submission.MarksObtained = payload.MarksObtained
	submission.Read = true

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignmentID).Uint("student_id", studentID).Int("marks", payload.MarksObtained).Msg("submission graded")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *assignmentService) getAssignment(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}

	return assignment, nil
}
