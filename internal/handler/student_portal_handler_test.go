package handler_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
)

func enrollStudent(t *testing.T, f appFixture, secretID string) (models.User, models.Batch) {
	t.Helper()

	student := f.seedUser(t, secretID, "portal-pass", models.RoleStudent)
	batch := models.Batch{
		Name:            "Spring-CSE",
		Department:      models.DepartmentCSE,
		CurrentSemester: models.SemesterSecond,
		CreatedByID:     1,
	}
	require.NoError(t, f.db.Create(&batch).Error)
	require.NoError(t, f.db.Create(&models.AcademicDetail{
		StudentID:  student.ID,
		BatchID:    batch.ID,
		Department: batch.Department,
		Status:     models.StudentStatusActive,
	}).Error)

	return student, batch
}

func TestStudentPortalProfileEndpoint(t *testing.T) {
	f := setupApp(t, "portal_profile")
	_, batch := enrollStudent(t, f, "STU-400")
	token := f.login(t, "STU-400", "portal-pass")

	resp := f.get(t, "/api/v1/student/profile", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.StudentResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, batch.ID, body.Data.BatchID)
	require.Equal(t, "Spring-CSE", body.Data.BatchName)
}

func TestStudentPortalRejectsOtherRoles(t *testing.T) {
	f := setupApp(t, "portal_role")
	f.seedUser(t, "ADM-400", "admin-pass", models.RoleAdmin, models.CapabilityStudentAccess)
	token := f.login(t, "ADM-400", "admin-pass")

	resp := f.get(t, "/api/v1/student/profile", token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStudentPortalSubmitAssignmentEndpoint(t *testing.T) {
	f := setupApp(t, "portal_submit")
	student, batch := enrollStudent(t, f, "STU-401")
	subject := models.Subject{
		SubjectCode: "CSE-210",
		SubjectName: "Algorithms",
		Department:  models.DepartmentCSE,
		Semester:    models.SemesterSecond,
		SubjectType: models.SubjectTypeTheory,
		Credits:     3,
	}
	require.NoError(t, f.db.Create(&subject).Error)
	assignment := models.Assignment{
		BatchID:   batch.ID,
		SubjectID: subject.ID,
		Title:     "Homework 1",
		DueDate:   time.Now().Add(48 * time.Hour),
		Marks:     20,
		GivenByID: 1,
	}
	require.NoError(t, f.db.Create(&assignment).Error)

	token := f.login(t, "STU-401", "portal-pass")

	body, contentType := multipartBody(t, nil, "file", "answer.png", pngBytes())
	resp := f.request(t, "POST", fmt.Sprintf("/api/v1/student/assignments/%d/submission", assignment.ID), token, body, contentType)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var submitted struct {
		Data dto.SubmissionResponse `json:"data"`
	}
	decodeResponse(t, resp, &submitted)
	require.Equal(t, assignment.ID, submitted.Data.AssignmentID)
	require.Equal(t, student.ID, submitted.Data.StudentID)
	require.NotEmpty(t, submitted.Data.File.URL)

	body, contentType = multipartBody(t, nil, "file", "answer.png", pngBytes())
	resp = f.request(t, "POST", fmt.Sprintf("/api/v1/student/assignments/%d/submission", assignment.ID), token, body, contentType)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestStudentPortalMaterialsAndOwnSubmission(t *testing.T) {
	f := setupApp(t, "portal_materials")
	student, batch := enrollStudent(t, f, "STU-403")
	subject := models.Subject{
		SubjectCode: "CSE-230",
		SubjectName: "Networks",
		Department:  models.DepartmentCSE,
		Semester:    models.SemesterSecond,
		SubjectType: models.SubjectTypeTheory,
		Credits:     3,
	}
	require.NoError(t, f.db.Create(&subject).Error)
	require.NoError(t, f.db.Create(&models.Material{
		BatchID:   batch.ID,
		SubjectID: subject.ID,
		Title:     "Lecture Notes",
	}).Error)
	assignment := models.Assignment{
		BatchID:   batch.ID,
		SubjectID: subject.ID,
		Title:     "Lab Report",
		DueDate:   time.Now().Add(48 * time.Hour),
		Marks:     10,
		GivenByID: 1,
	}
	require.NoError(t, f.db.Create(&assignment).Error)

	token := f.login(t, "STU-403", "portal-pass")

	resp := f.get(t, "/api/v1/student/materials", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var materials struct {
		Data []dto.MaterialResponse `json:"data"`
	}
	decodeResponse(t, resp, &materials)
	require.Len(t, materials.Data, 1)
	require.Equal(t, "Lecture Notes", materials.Data[0].Title)

	resp = f.get(t, fmt.Sprintf("/api/v1/student/assignments/%d/submission", assignment.ID), token)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, contentType := multipartBody(t, nil, "file", "report.png", pngBytes())
	resp = f.request(t, "POST", fmt.Sprintf("/api/v1/student/assignments/%d/submission", assignment.ID), token, body, contentType)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = f.get(t, fmt.Sprintf("/api/v1/student/assignments/%d/submission", assignment.ID), token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var submission struct {
		Data dto.SubmissionResponse `json:"data"`
	}
	decodeResponse(t, resp, &submission)
	require.Equal(t, student.ID, submission.Data.StudentID)
}

func TestStudentPortalProfileUpdateEndpoint(t *testing.T) {
	f := setupApp(t, "portal_profile_update")
	enrollStudent(t, f, "STU-404")
	token := f.login(t, "STU-404", "portal-pass")

	resp := f.patchJSON(t, "/api/v1/student/profile", token, map[string]string{
		"address": "12 Campus Road",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		Data dto.StudentResponse `json:"data"`
	}
	decodeResponse(t, resp, &updated)
	require.Equal(t, "12 Campus Road", updated.Data.Address)
}

func TestStudentPortalResultsGate(t *testing.T) {
	f := setupApp(t, "portal_results")
	student, batch := enrollStudent(t, f, "STU-402")
	subject := models.Subject{
		SubjectCode: "CSE-220",
		SubjectName: "Databases",
		Department:  models.DepartmentCSE,
		Semester:    models.SemesterSecond,
		SubjectType: models.SubjectTypeTheory,
		Credits:     3,
	}
	require.NoError(t, f.db.Create(&subject).Error)
	require.NoError(t, f.db.Create(&models.Result{
		SubjectID:   subject.ID,
		StudentID:   student.ID,
		Points:      9,
		CreatedByID: 1,
	}).Error)

	token := f.login(t, "STU-402", "portal-pass")

	resp := f.get(t, "/api/v1/student/results", token)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	require.NoError(t, f.db.Model(&models.Batch{}).Where("id = ?", batch.ID).Update("is_results_published", true).Error)

	resp = f.get(t, "/api/v1/student/results", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []dto.ResultResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, 9, body.Data[0].Points)
}
