package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

var (
	// ErrNotEnrolled indicates no enrollment record exists for the caller.
	ErrNotEnrolled = errors.New("student is not enrolled in any batch")
	// ErrAssignmentClosed indicates the assignment no longer accepts
	// submissions, either explicitly or because the deadline passed.
	ErrAssignmentClosed = errors.New("assignment is closed for submissions")
	// ErrAlreadySubmitted indicates the student already handed in this
	// assignment.
	ErrAlreadySubmitted = errors.New("assignment already submitted")
	// ErrResultsNotPublished indicates results for the batch are withheld.
	ErrResultsNotPublished = errors.New("results are not published yet")
)

// StudentPortalService serves the student's own view: profile, schedule,
// subjects, assignments, results and notices. Read-heavy lookups are cached
// in Redis for a short window.
type StudentPortalService interface {
	Profile(ctx context.Context, studentID uint) (dto.StudentResponse, error)
	UpdateProfile(ctx context.Context, studentID uint, payload dto.ProfileUpdateRequest) (dto.StudentResponse, error)
	Subjects(ctx context.Context, studentID uint) ([]dto.SubjectResponse, error)
	Materials(ctx context.Context, studentID, subjectID uint) ([]dto.MaterialResponse, error)
	Routine(ctx context.Context, studentID uint) ([]dto.RoutineResponse, error)
	Notices(ctx context.Context, studentID uint) ([]dto.NoticeResponse, error)
	Assignments(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error)
	SubmitAssignment(ctx context.Context, studentID, assignmentID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error)
	Submission(ctx context.Context, studentID, assignmentID uint) (dto.SubmissionResponse, error)
	Results(ctx context.Context, studentID uint) ([]dto.ResultResponse, error)
}

type studentPortalService struct {
	users       repository.UserRepository
	academics   repository.AcademicDetailRepository
	batches     repository.BatchRepository
	materials   repository.MaterialRepository
	routines    repository.RoutineRepository
	notices     repository.NoticeRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	results     repository.ResultRepository
	uploads     UploadService
	cache       *redis.Client
	cacheTTL    time.Duration
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// StudentPortalDeps bundles the stores the portal reads from.
type StudentPortalDeps struct {
	Users       repository.UserRepository
	Academics   repository.AcademicDetailRepository
	Batches     repository.BatchRepository
	Materials   repository.MaterialRepository
	Routines    repository.RoutineRepository
	Notices     repository.NoticeRepository
	Assignments repository.AssignmentRepository
	Submissions repository.SubmissionRepository
	Results     repository.ResultRepository
	Uploads     UploadService
	Cache       *redis.Client
	Validator   *validator.Validate
}

// NewStudentPortalService constructs the student portal service. Cache may
// be nil, in which case every read goes to the database.
func NewStudentPortalService(deps StudentPortalDeps, cfg config.Config, logger zerolog.Logger) StudentPortalService {
	return &studentPortalService{
		users:       deps.Users,
		academics:   deps.Academics,
		batches:     deps.Batches,
		materials:   deps.Materials,
		routines:    deps.Routines,
		notices:     deps.Notices,
		assignments: deps.Assignments,
		submissions: deps.Submissions,
		results:     deps.Results,
		uploads:     deps.Uploads,
		cache:       deps.Cache,
		cacheTTL:    cfg.StudentCacheTTL,
		validator:   deps.Validator,
		logger:      logger.With().Str("component", "student_portal_service").Logger(),
		now:         time.Now,
	}
}

func (s *studentPortalService) Profile(ctx context.Context, studentID uint) (dto.StudentResponse, error) {
	student, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student, detail), nil
}

// UpdateProfile edits the self-serviceable fields only. Role, activity and
// enrollment stay under admin control.
func (s *studentPortalService) UpdateProfile(ctx context.Context, studentID uint, payload dto.ProfileUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	if payload.Name != nil {
		student.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.PhoneNumber != nil {
		student.PhoneNumber = strings.TrimSpace(*payload.PhoneNumber)
	}
	if payload.Address != nil {
		student.Address = strings.TrimSpace(*payload.Address)
	}

	if err := s.users.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", studentID).Msg("profile updated")

	return dto.NewStudentResponse(student, detail), nil
}

func (s *studentPortalService) Subjects(ctx context.Context, studentID uint) ([]dto.SubjectResponse, error) {
	_, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return nil, err
	}

	batch, err := s.batches.GetByIDWithSubjects(ctx, detail.BatchID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubjectResponseSlice(batch.Subjects), nil
}

// Materials lists the study materials of the student's own batch, optionally
// narrowed to one subject.
func (s *studentPortalService) Materials(ctx context.Context, studentID, subjectID uint) ([]dto.MaterialResponse, error) {
	_, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return nil, err
	}

	materials, _, err := s.materials.List(ctx, repository.MaterialFilter{
		BatchID:   detail.BatchID,
		SubjectID: subjectID,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewMaterialResponseSlice(materials), nil
}

func (s *studentPortalService) Routine(ctx context.Context, studentID uint) ([]dto.RoutineResponse, error) {
	_, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("portal:routine:%d", detail.BatchID)
	var cached []dto.RoutineResponse
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	routines, err := s.routines.ListByBatch(ctx, detail.BatchID)
	if err != nil {
		return nil, err
	}

	response := dto.NewRoutineResponseSlice(routines)
	s.cacheSet(ctx, key, response)

	return response, nil
}

func (s *studentPortalService) Notices(ctx context.Context, studentID uint) ([]dto.NoticeResponse, error) {
	_, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("portal:notices:%s", detail.Department)
	var cached []dto.NoticeResponse
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	notices, err := s.notices.ListByDepartment(ctx, detail.Department)
	if err != nil {
		return nil, err
	}

	response := dto.NewNoticeResponseSlice(notices)
	s.cacheSet(ctx, key, response)

	return response, nil
}

func (s *studentPortalService) Assignments(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error) {
	_, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByBatch(ctx, detail.BatchID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

// SubmitAssignment hands in a file for an assignment of the student's own
// batch. One submission per assignment; closed or past-due assignments
// reject new submissions.
func (s *studentPortalService) SubmitAssignment(ctx context.Context, studentID, assignmentID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	_, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	if assignment.BatchID != detail.BatchID {
		return dto.SubmissionResponse{}, ErrAssignmentNotFound
	}
	if assignment.IsClosed || assignment.IsPastDue(s.now()) {
		return dto.SubmissionResponse{}, ErrAssignmentClosed
	}

	if _, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, studentID); err == nil {
		return dto.SubmissionResponse{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	uploaded, err := s.uploads.Store(ctx, file)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		File:         uploaded,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		_ = s.uploads.Remove(ctx, uploaded)
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignmentID).Uint("student_id", studentID).Msg("assignment submitted")

	return dto.NewSubmissionResponse(submission), nil
}

// Submission returns the student's own hand-in for an assignment of their
// batch.
func (s *studentPortalService) Submission(ctx context.Context, studentID, assignmentID uint) (dto.SubmissionResponse, error) {
	_, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	if assignment.BatchID != detail.BatchID {
		return dto.SubmissionResponse{}, ErrAssignmentNotFound
	}

	submission, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

// Results returns the student's grades, but only once the batch has its
// results published.
func (s *studentPortalService) Results(ctx context.Context, studentID uint) ([]dto.ResultResponse, error) {
	_, detail, err := s.enrollment(ctx, studentID)
	if err != nil {
		return nil, err
	}

	batch, err := s.batches.GetByID(ctx, detail.BatchID)
	if err != nil {
		return nil, err
	}
	if !batch.IsResultsPublished {
		return nil, ErrResultsNotPublished
	}

	results, err := s.results.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewResultResponseSlice(results), nil
}

func (s *studentPortalService) enrollment(ctx context.Context, studentID uint) (models.User, models.AcademicDetail, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.AcademicDetail{}, ErrNotEnrolled
		}
		return models.User{}, models.AcademicDetail{}, err
	}

	detail, err := s.academics.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.AcademicDetail{}, ErrNotEnrolled
		}
		return models.User{}, models.AcademicDetail{}, err
	}

	return student, detail, nil
}

func (s *studentPortalService) cacheGet(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}

	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(payload, target); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache payload corrupt")
		return false
	}

	return true
}

func (s *studentPortalService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
