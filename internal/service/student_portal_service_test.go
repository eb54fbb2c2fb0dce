package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

type portalFixture struct {
	db      *gorm.DB
	svc     StudentPortalService
	cache   *miniredis.Miniredis
	student models.User
	batch   models.Batch
}

func setupStudentPortal(t *testing.T) portalFixture {
	t.Helper()

	db := openTestDB(t, "portal", allEntities()...)

	cache := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: cache.Addr()})

	uploads := NewUploadService(&stubUploader{}, 10, zerolog.Nop())

	svc := NewStudentPortalService(StudentPortalDeps{
		Users:       repository.NewUserRepository(db),
		Academics:   repository.NewAcademicDetailRepository(db),
		Batches:     repository.NewBatchRepository(db),
		Materials:   repository.NewMaterialRepository(db),
		Routines:    repository.NewRoutineRepository(db),
		Notices:     repository.NewNoticeRepository(db),
		Assignments: repository.NewAssignmentRepository(db),
		Submissions: repository.NewSubmissionRepository(db),
		Results:     repository.NewResultRepository(db),
		Uploads:     uploads,
		Cache:       client,
		Validator:   validator.New(validator.WithRequiredStructEnabled()),
	}, testConfig(), zerolog.Nop())

	student := seedUser(t, db, "STU-500", "portal-pass", models.RoleStudent)
	batch := models.Batch{
		Name:            "Spring-CSE",
		Department:      models.DepartmentCSE,
		CurrentSemester: models.SemesterSecond,
		CreatedByID:     1,
	}
	require.NoError(t, db.Create(&batch).Error)
	require.NoError(t, db.Create(&models.AcademicDetail{
		StudentID:  student.ID,
		BatchID:    batch.ID,
		Department: batch.Department,
		Status:     models.StudentStatusActive,
	}).Error)

	return portalFixture{db: db, svc: svc, cache: cache, student: student, batch: batch}
}

func TestStudentPortalProfile(t *testing.T) {
	f := setupStudentPortal(t)

	profile, err := f.svc.Profile(context.Background(), f.student.ID)
	require.NoError(t, err)
	require.Equal(t, f.batch.ID, profile.BatchID)
	require.Equal(t, models.DepartmentCSE, profile.Department)
	require.Equal(t, "Spring-CSE", profile.BatchName)
}

func TestStudentPortalNotEnrolled(t *testing.T) {
	f := setupStudentPortal(t)
	outsider := seedUser(t, f.db, "STU-501", "some-pass", models.RoleStudent)

	_, err := f.svc.Profile(context.Background(), outsider.ID)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestStudentPortalRoutineUsesCache(t *testing.T) {
	f := setupStudentPortal(t)
	subject := seedSubject(t, f.db, "CSE-201", models.DepartmentCSE, models.SemesterSecond)
	require.NoError(t, f.db.Create(&models.Routine{
		BatchID:     f.batch.ID,
		SubjectID:   subject.ID,
		Day:         models.DayMonday,
		Shift:       models.ShiftMorning,
		Semester:    models.SemesterSecond,
		CreatedByID: 1,
	}).Error)

	first, err := f.svc.Routine(context.Background(), f.student.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, "CSE-201", first[0].SubjectCode)

	// A second read is served from the cache; dropping the rows proves it.
	require.NoError(t, f.db.Where("batch_id = ?", f.batch.ID).Delete(&models.Routine{}).Error)

	second, err := f.svc.Routine(context.Background(), f.student.ID)
	require.NoError(t, err)
	require.Len(t, second, 1)

	f.cache.FastForward(2 * time.Minute)

	third, err := f.svc.Routine(context.Background(), f.student.ID)
	require.NoError(t, err)
	require.Empty(t, third)
}

func TestStudentPortalSubmitAssignment(t *testing.T) {
	f := setupStudentPortal(t)
	subject := seedSubject(t, f.db, "CSE-202", models.DepartmentCSE, models.SemesterSecond)
	assignment := models.Assignment{
		BatchID:   f.batch.ID,
		SubjectID: subject.ID,
		Title:     "Homework 1",
		DueDate:   time.Now().Add(48 * time.Hour),
		Marks:     20,
		GivenByID: 1,
	}
	require.NoError(t, f.db.Create(&assignment).Error)

	file := makeFileHeader(t, "file", "answer.png", pngBytes())
	submission, err := f.svc.SubmitAssignment(context.Background(), f.student.ID, assignment.ID, file)
	require.NoError(t, err)
	require.Equal(t, assignment.ID, submission.AssignmentID)
	require.NotEmpty(t, submission.File.URL)
	require.False(t, submission.Read)

	file = makeFileHeader(t, "file", "answer2.png", pngBytes())
	_, err = f.svc.SubmitAssignment(context.Background(), f.student.ID, assignment.ID, file)
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestStudentPortalSubmitClosedOrForeignAssignment(t *testing.T) {
	f := setupStudentPortal(t)
	subject := seedSubject(t, f.db, "CSE-203", models.DepartmentCSE, models.SemesterSecond)

	closed := models.Assignment{
		BatchID:   f.batch.ID,
		SubjectID: subject.ID,
		Title:     "Closed",
		DueDate:   time.Now().Add(48 * time.Hour),
		IsClosed:  true,
		Marks:     10,
		GivenByID: 1,
	}
	require.NoError(t, f.db.Create(&closed).Error)

	pastDue := models.Assignment{
		BatchID:   f.batch.ID,
		SubjectID: subject.ID,
		Title:     "Too Late",
		DueDate:   time.Now().Add(-time.Hour),
		Marks:     10,
		GivenByID: 1,
	}
	require.NoError(t, f.db.Create(&pastDue).Error)

	otherBatch := models.Batch{
		Name:            "Other-EEE",
		Department:      models.DepartmentEEE,
		CurrentSemester: models.SemesterFirst,
		CreatedByID:     1,
	}
	require.NoError(t, f.db.Create(&otherBatch).Error)
	foreign := models.Assignment{
		BatchID:   otherBatch.ID,
		SubjectID: subject.ID,
		Title:     "Not Yours",
		DueDate:   time.Now().Add(48 * time.Hour),
		Marks:     10,
		GivenByID: 1,
	}
	require.NoError(t, f.db.Create(&foreign).Error)

	file := makeFileHeader(t, "file", "late.png", pngBytes())
	_, err := f.svc.SubmitAssignment(context.Background(), f.student.ID, closed.ID, file)
	require.ErrorIs(t, err, ErrAssignmentClosed)

	file = makeFileHeader(t, "file", "late.png", pngBytes())
	_, err = f.svc.SubmitAssignment(context.Background(), f.student.ID, pastDue.ID, file)
	require.ErrorIs(t, err, ErrAssignmentClosed)

	file = makeFileHeader(t, "file", "late.png", pngBytes())
	_, err = f.svc.SubmitAssignment(context.Background(), f.student.ID, foreign.ID, file)
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestStudentPortalMaterialsScopedToOwnBatch(t *testing.T) {
	f := setupStudentPortal(t)
	subject := seedSubject(t, f.db, "CSE-205", models.DepartmentCSE, models.SemesterSecond)
	other := seedSubject(t, f.db, "CSE-206", models.DepartmentCSE, models.SemesterSecond)

	require.NoError(t, f.db.Create(&models.Material{
		BatchID:   f.batch.ID,
		SubjectID: subject.ID,
		Title:     "Notes",
	}).Error)
	require.NoError(t, f.db.Create(&models.Material{
		BatchID:   f.batch.ID,
		SubjectID: other.ID,
		Title:     "Slides",
	}).Error)

	all, err := f.svc.Materials(context.Background(), f.student.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := f.svc.Materials(context.Background(), f.student.ID, subject.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "Notes", filtered[0].Title)
}

func TestStudentPortalOwnSubmission(t *testing.T) {
	f := setupStudentPortal(t)
	subject := seedSubject(t, f.db, "CSE-207", models.DepartmentCSE, models.SemesterSecond)
	assignment := models.Assignment{
		BatchID:   f.batch.ID,
		SubjectID: subject.ID,
		Title:     "Homework 2",
		DueDate:   time.Now().Add(48 * time.Hour),
		Marks:     20,
		GivenByID: 1,
	}
	require.NoError(t, f.db.Create(&assignment).Error)

	_, err := f.svc.Submission(context.Background(), f.student.ID, assignment.ID)
	require.ErrorIs(t, err, ErrSubmissionNotFound)

	file := makeFileHeader(t, "file", "answer.png", pngBytes())
	_, err = f.svc.SubmitAssignment(context.Background(), f.student.ID, assignment.ID, file)
	require.NoError(t, err)

	submission, err := f.svc.Submission(context.Background(), f.student.ID, assignment.ID)
	require.NoError(t, err)
	require.Equal(t, assignment.ID, submission.AssignmentID)
	require.Equal(t, f.student.ID, submission.StudentID)
}

func TestStudentPortalUpdateProfile(t *testing.T) {
	f := setupStudentPortal(t)

	name := "Renamed Student"
	address := "12 Campus Road"
	updated, err := f.svc.UpdateProfile(context.Background(), f.student.ID, dto.ProfileUpdateRequest{
		Name:    &name,
		Address: &address,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed Student", updated.Name)

	var stored models.User
	require.NoError(t, f.db.First(&stored, f.student.ID).Error)
	require.Equal(t, "Renamed Student", stored.Name)
	require.Equal(t, "12 Campus Road", stored.Address)
	// Untouched fields keep their values.
	require.Equal(t, f.student.PhoneNumber, stored.PhoneNumber)

	short := "ab"
	_, err = f.svc.UpdateProfile(context.Background(), f.student.ID, dto.ProfileUpdateRequest{Name: &short})
	require.Error(t, err)
}

func TestStudentPortalResultsGatedByPublication(t *testing.T) {
	f := setupStudentPortal(t)
	subject := seedSubject(t, f.db, "CSE-204", models.DepartmentCSE, models.SemesterSecond)
	require.NoError(t, f.db.Create(&models.Result{
		SubjectID:   subject.ID,
		StudentID:   f.student.ID,
		Points:      8,
		CreatedByID: 1,
	}).Error)

	_, err := f.svc.Results(context.Background(), f.student.ID)
	require.ErrorIs(t, err, ErrResultsNotPublished)

	require.NoError(t, f.db.Model(&models.Batch{}).Where("id = ?", f.batch.ID).Update("is_results_published", true).Error)

	results, err := f.svc.Results(context.Background(), f.student.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 8, results[0].Points)
	require.Equal(t, "CSE-204", results[0].SubjectCode)
}
