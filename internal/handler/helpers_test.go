package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/handler"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
	"github.com/campuscore/campuscore-api/internal/router"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/pkg/cloudinary"
)

type stubStorage struct {
	mu      sync.Mutex
	uploads int
}

func (s *stubStorage) Upload(_ context.Context, name string, reader io.Reader) (cloudinary.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return cloudinary.Asset{}, err
	}
	s.uploads++
	publicID := fmt.Sprintf("test/%s-%d", name, s.uploads)
	return cloudinary.Asset{PublicID: publicID, SecureURL: "https://cdn.test/" + publicID}, nil
}

func (s *stubStorage) Destroy(_ context.Context, _ string) error {
	return nil
}

type appFixture struct {
	app *fiber.App
	db  *gorm.DB
	cfg config.Config
}

func testConfig() config.Config {
	return config.Config{
		AppName:                 "CampusCore Test",
		AppEnv:                  "test",
		AccessTokenSecret:       "access-secret",
		RefreshTokenSecret:      "refresh-secret",
		AccessTokenTTL:          time.Hour,
		RefreshTokenTTL:         24 * time.Hour,
		SuperAdminTokenSecret:   "sa-secret",
		SuperAdminUsername:      "root",
		SuperAdminPassword:      "root-pass",
		SuperAdminSessionSecret: "sa-session",
		StudentCacheTTL:         time.Minute,
	}
}

func setupApp(t *testing.T, name string) appFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AcademicDetail{},
		&models.Batch{},
		&models.Subject{},
		&models.Assignment{},
		&models.Submission{},
		&models.Material{},
		&models.Routine{},
		&models.Result{},
		&models.Notice{},
	))

	cfg := testConfig()
	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.Nop()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	academicRepo := repository.NewAcademicDetailRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	resultRepo := repository.NewResultRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)

	uploads := service.NewUploadService(&stubStorage{}, 10, logger)
	authService := service.NewAuthService(userRepo, sessionRepo, uploads, cfg, validate, logger)
	superAdminService := service.NewSuperAdminService(userRepo, cfg, validate, logger)
	studentService := service.NewStudentService(userRepo, academicRepo, batchRepo, validate, logger)
	teacherService := service.NewTeacherService(userRepo, validate, logger)
	batchService := service.NewBatchService(batchRepo, subjectRepo, validate, logger)
	subjectService := service.NewSubjectService(subjectRepo, userRepo, validate, logger)
	materialService := service.NewMaterialService(materialRepo, batchRepo, subjectRepo, uploads, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, batchRepo, subjectRepo, validate, logger)
	routineService := service.NewRoutineService(routineRepo, batchRepo, subjectRepo, validate, logger)
	resultService := service.NewResultService(resultRepo, userRepo, subjectRepo, validate, logger)
	noticeService := service.NewNoticeService(noticeRepo, uploads, validate, logger)
	portalService := service.NewStudentPortalService(service.StudentPortalDeps{
		Users:       userRepo,
		Academics:   academicRepo,
		Batches:     batchRepo,
		Materials:   materialRepo,
		Routines:    routineRepo,
		Notices:     noticeRepo,
		Assignments: assignmentRepo,
		Submissions: submissionRepo,
		Results:     resultRepo,
		Uploads:     uploads,
		Validator:   validate,
	}, cfg, logger)

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		Users:         userRepo,
		Auth:          handler.NewAuthHandler(authService, cfg, logger),
		SuperAdmin:    handler.NewSuperAdminHandler(superAdminService, logger),
		Students:      handler.NewStudentHandler(studentService, logger),
		Teachers:      handler.NewTeacherHandler(teacherService, logger),
		Batches:       handler.NewBatchHandler(batchService, logger),
		Subjects:      handler.NewSubjectHandler(subjectService, logger),
		Materials:     handler.NewMaterialHandler(materialService, logger),
		Assignments:   handler.NewAssignmentHandler(assignmentService, logger),
		Routines:      handler.NewRoutineHandler(routineService, logger),
		Results:       handler.NewResultHandler(resultService, logger),
		Notices:       handler.NewNoticeHandler(noticeService, logger),
		StudentPortal: handler.NewStudentPortalHandler(portalService, logger),
		Health:        handler.NewHealthHandler(cfg),
	})

	return appFixture{app: app, db: db, cfg: cfg}
}

func (f appFixture) seedUser(t *testing.T, secretID, password string, role models.Role, capabilities ...models.Capability) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		Name:         "User " + secretID,
		SecretID:     secretID,
		Email:        secretID + "@campus.test",
		PasswordHash: string(hash),
		Role:         role,
		DateOfBirth:  time.Date(2000, time.March, 10, 0, 0, 0, 0, time.UTC),
		Gender:       models.GenderFemale,
		PhoneNumber:  "0170000" + secretID[len(secretID)-3:],
		AdminAccess:  datatypes.NewJSONSlice(capabilities),
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(&user).Error)

	return user
}

// login authenticates through the real endpoint and returns the access-token
// cookie value.
func (f appFixture) login(t *testing.T, secretID, password string) string {
	t.Helper()

	resp := f.postJSON(t, "/api/v1/auth/login", "", map[string]string{
		"secret_id": secretID,
		"password":  password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "access-token" {
			return cookie.Value
		}
	}
	t.Fatal("no access-token cookie in login response")
	return ""
}

func (f appFixture) request(t *testing.T, method, path, accessToken string, body io.Reader, contentType string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accessToken != "" {
		req.AddCookie(&http.Cookie{Name: "access-token", Value: accessToken})
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

// requestBearer is for the super-admin surface, which reads only the
// Authorization header.
func (f appFixture) requestBearer(t *testing.T, method, path, bearer string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func (f appFixture) postJSON(t *testing.T, path, accessToken string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return f.request(t, "POST", path, accessToken, bytes.NewReader(body), fiber.MIMEApplicationJSON)
}

func (f appFixture) patchJSON(t *testing.T, path, accessToken string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return f.request(t, "PATCH", path, accessToken, bytes.NewReader(body), fiber.MIMEApplicationJSON)
}

func (f appFixture) get(t *testing.T, path, accessToken string) *http.Response {
	t.Helper()

	return f.request(t, "GET", path, accessToken, nil, "")
}

func decodeResponse(t *testing.T, resp *http.Response, target any) {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

// multipartBody builds a multipart form with text fields and an optional
// single file part. An empty fileField skips the file.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// pngBytes is a minimal valid PNG header so MIME sniffing sees an image.
func pngBytes() []byte {
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
}
