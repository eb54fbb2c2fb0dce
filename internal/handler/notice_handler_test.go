package handler_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
)

func TestNoticeCreateWithAttachment(t *testing.T) {
	f := setupApp(t, "notice_create")
	f.seedUser(t, "ADM-300", "admin-pass", models.RoleAdmin, models.CapabilityNoticeAccess)
	token := f.login(t, "ADM-300", "admin-pass")

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Exam Schedule",
		"description": `<p>Exams start Monday.</p><script>alert("x")</script>`,
		"date":        "2026-09-10",
		"department":  "CSE",
	}, "attachments", "schedule.png", pngBytes())

	resp := f.request(t, "POST", "/api/v1/admin/notices", token, body, contentType)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.NoticeResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Contains(t, created.Data.Description, "<p>Exams start Monday.</p>")
	require.NotContains(t, created.Data.Description, "<script>")
	require.Len(t, created.Data.Attachments, 1)

	resp = f.request(t, "DELETE", fmt.Sprintf("/api/v1/admin/notices/%d", created.Data.ID), token, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = f.request(t, "DELETE", fmt.Sprintf("/api/v1/admin/notices/%d", created.Data.ID), token, nil, "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMaterialCreateRequiresFile(t *testing.T) {
	f := setupApp(t, "material_file")
	f.seedUser(t, "ADM-301", "admin-pass", models.RoleAdmin, models.CapabilitySubjectAccess)
	token := f.login(t, "ADM-301", "admin-pass")

	body, contentType := multipartBody(t, map[string]string{
		"batch_id":   "1",
		"subject_id": "1",
		"title":      "Lecture Notes",
	}, "", "", nil)

	resp := f.request(t, "POST", "/api/v1/admin/materials", token, body, contentType)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
