package handler_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
)

func TestAdminBatchLifecycle(t *testing.T) {
	f := setupApp(t, "admin_batches")
	f.seedUser(t, "ADM-200", "admin-pass", models.RoleAdmin, models.CapabilityBatchAccess)
	require.NoError(t, f.db.Create(&models.Subject{
		SubjectCode: "CSE-101",
		SubjectName: "Intro to Programming",
		Department:  models.DepartmentCSE,
		Semester:    models.SemesterFirst,
		SubjectType: models.SubjectTypeTheory,
		Credits:     3,
	}).Error)

	token := f.login(t, "ADM-200", "admin-pass")

	resp := f.postJSON(t, "/api/v1/admin/batches", token, map[string]string{
		"name":          "Spring",
		"starting_year": "2026-01-01",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data []dto.BatchResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Len(t, created.Data, len(models.Departments()))

	var cseID uint
	for _, batch := range created.Data {
		if batch.Department == models.DepartmentCSE {
			cseID = batch.ID
			require.Equal(t, "Spring-CSE", batch.Name)
		}
	}
	require.NotZero(t, cseID)

	resp = f.request(t, "POST", fmt.Sprintf("/api/v1/admin/batches/%d/promote", cseID), token, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var promoted struct {
		Data dto.BatchResponse `json:"data"`
	}
	decodeResponse(t, resp, &promoted)
	require.Equal(t, models.SemesterSecond, promoted.Data.CurrentSemester)
}

func TestAdminRoutesRequireCapability(t *testing.T) {
	f := setupApp(t, "admin_capability")
	f.seedUser(t, "ADM-201", "admin-pass", models.RoleAdmin, models.CapabilityNoticeAccess)
	token := f.login(t, "ADM-201", "admin-pass")

	// Holding NOTICE_ACCESS grants nothing on the batch surface.
	resp := f.get(t, "/api/v1/admin/batches", token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.get(t, "/api/v1/admin/notices", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	f := setupApp(t, "admin_role")
	f.seedUser(t, "STU-200", "student-pass", models.RoleStudent)
	token := f.login(t, "STU-200", "student-pass")

	resp := f.get(t, "/api/v1/admin/students", token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminRoutesRejectDeactivatedAccounts(t *testing.T) {
	f := setupApp(t, "admin_inactive")
	admin := f.seedUser(t, "ADM-202", "admin-pass", models.RoleAdmin, models.CapabilityStudentAccess)
	token := f.login(t, "ADM-202", "admin-pass")

	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", admin.ID).Update("is_active", false).Error)

	resp := f.get(t, "/api/v1/admin/students", token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminSubjectConflict(t *testing.T) {
	f := setupApp(t, "admin_subjects")
	f.seedUser(t, "ADM-203", "admin-pass", models.RoleAdmin, models.CapabilitySubjectAccess)
	token := f.login(t, "ADM-203", "admin-pass")

	payload := map[string]any{
		"subject_code": "cse-110",
		"subject_name": "Discrete Mathematics",
		"department":   "CSE",
		"semester":     1,
		"subject_type": "THEORY",
		"credits":      3,
	}

	resp := f.postJSON(t, "/api/v1/admin/subjects", token, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.SubjectResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Equal(t, "CSE-110", created.Data.SubjectCode)

	resp = f.postJSON(t, "/api/v1/admin/subjects", token, payload)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdminStudentCreation(t *testing.T) {
	f := setupApp(t, "admin_students")
	f.seedUser(t, "ADM-204", "admin-pass", models.RoleAdmin, models.CapabilityStudentAccess)
	batch := models.Batch{
		Name:            "Fall-CSE",
		Department:      models.DepartmentCSE,
		CurrentSemester: models.SemesterFirst,
		CreatedByID:     1,
	}
	require.NoError(t, f.db.Create(&batch).Error)

	token := f.login(t, "ADM-204", "admin-pass")

	resp := f.postJSON(t, "/api/v1/admin/students", token, map[string]any{
		"name":          "New Student",
		"secret_id":     "STU-300",
		"email":         "stu300@campus.test",
		"phone_number":  "01722222300",
		"date_of_birth": "2004-02-11",
		"gender":        "FEMALE",
		"batch_id":      batch.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.StudentResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Equal(t, batch.ID, created.Data.BatchID)
	require.Equal(t, models.DepartmentCSE, created.Data.Department)

	// 2004-02-11 derives 11 + 2 + 2004.
	f.login(t, "STU-300", "2017")
}
