package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/handler"
	"github.com/campuscore/campuscore-api/internal/middleware"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/observability"
	"github.com/campuscore/campuscore-api/internal/repository"
)

// Dependencies bundles everything the route table needs.
type Dependencies struct {
	Users repository.UserRepository

	Auth          *handler.AuthHandler
	SuperAdmin    *handler.SuperAdminHandler
	Students      *handler.StudentHandler
	Teachers      *handler.TeacherHandler
	Batches       *handler.BatchHandler
	Subjects      *handler.SubjectHandler
	Materials     *handler.MaterialHandler
	Assignments   *handler.AssignmentHandler
	Routines      *handler.RoutineHandler
	Results       *handler.ResultHandler
	Notices       *handler.NoticeHandler
	StudentPortal *handler.StudentPortalHandler
	Health        *handler.HealthHandler
}

// Register mounts the full route table. Admin groups stack the auth,
// activity and capability guards; the student portal requires the STUDENT
// role instead.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1")
	deps.Health.Register(api)

	auth := api.Group("/auth")
	deps.Auth.RegisterPublic(auth)
	deps.Auth.RegisterLogout(auth.Group("", middleware.AttachPrincipal(cfg, deps.Users)))

	authenticated := auth.Group("", middleware.Authenticate(cfg, deps.Users))
	deps.Auth.RegisterProtected(authenticated)

	superAdmin := api.Group("/super-admin")
	deps.SuperAdmin.RegisterPublic(superAdmin)
	deps.SuperAdmin.RegisterProtected(superAdmin.Group("", middleware.SuperAdminProtected(cfg)))

	admin := api.Group("/admin",
		middleware.Authenticate(cfg, deps.Users),
		middleware.RequireActive(deps.Users),
		middleware.RequireRole(models.RoleAdmin),
	)
	deps.Students.Register(admin.Group("/students", middleware.RequireAdminAccess(models.CapabilityStudentAccess)))
	deps.Teachers.Register(admin.Group("/teachers", middleware.RequireAdminAccess(models.CapabilityTeacherAccess)))
	deps.Batches.Register(admin.Group("/batches", middleware.RequireAdminAccess(models.CapabilityBatchAccess)))
	deps.Subjects.Register(admin.Group("/subjects", middleware.RequireAdminAccess(models.CapabilitySubjectAccess)))
	deps.Materials.Register(admin.Group("/materials", middleware.RequireAdminAccess(models.CapabilitySubjectAccess)))
	deps.Assignments.Register(admin.Group("/assignments", middleware.RequireAdminAccess(models.CapabilityAssignmentMonitorAccess)))
	deps.Routines.Register(admin.Group("/routines", middleware.RequireAdminAccess(models.CapabilityRoutineAccess)))
	deps.Results.Register(admin.Group("/results", middleware.RequireAdminAccess(models.CapabilityResultAccess)))
	deps.Notices.Register(admin.Group("/notices", middleware.RequireAdminAccess(models.CapabilityNoticeAccess)))

	student := api.Group("/student",
		middleware.Authenticate(cfg, deps.Users),
		middleware.RequireActive(deps.Users),
		middleware.RequireRole(models.RoleStudent),
	)
	deps.StudentPortal.Register(student)
}
