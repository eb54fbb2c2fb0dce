package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/database"
	"github.com/campuscore/campuscore-api/internal/handler"
	"github.com/campuscore/campuscore-api/internal/middleware"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
	"github.com/campuscore/campuscore-api/internal/router"
	"github.com/campuscore/campuscore-api/internal/service"
	cloud "github.com/campuscore/campuscore-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Batch{},
		&models.Subject{},
		&models.AcademicDetail{},
		&models.Material{},
		&models.Assignment{},
		&models.Submission{},
		&models.Routine{},
		&models.Result{},
		&models.Notice{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

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

	uploadService := service.NewUploadService(uploader, 10, logger)
	authService := service.NewAuthService(userRepo, sessionRepo, uploadService, cfg, validate, logger)
	superAdminService := service.NewSuperAdminService(userRepo, cfg, validate, logger)
	studentService := service.NewStudentService(userRepo, academicRepo, batchRepo, validate, logger)
	teacherService := service.NewTeacherService(userRepo, validate, logger)
	batchService := service.NewBatchService(batchRepo, subjectRepo, validate, logger)
	subjectService := service.NewSubjectService(subjectRepo, userRepo, validate, logger)
	materialService := service.NewMaterialService(materialRepo, batchRepo, subjectRepo, uploadService, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, batchRepo, subjectRepo, validate, logger)
	routineService := service.NewRoutineService(routineRepo, batchRepo, subjectRepo, validate, logger)
	resultService := service.NewResultService(resultRepo, userRepo, subjectRepo, validate, logger)
	noticeService := service.NewNoticeService(noticeRepo, uploadService, validate, logger)
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
		Uploads:     uploadService,
		Cache:       redisClient,
		Validator:   validate,
	}, cfg, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
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

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
