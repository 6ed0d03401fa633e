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

	"github.com/acadsuite/campus-api/internal/auth"
	"github.com/acadsuite/campus-api/internal/config"
	"github.com/acadsuite/campus-api/internal/database"
	"github.com/acadsuite/campus-api/internal/handler"
	"github.com/acadsuite/campus-api/internal/middleware"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
	"github.com/acadsuite/campus-api/internal/router"
	"github.com/acadsuite/campus-api/internal/service"
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
		&models.College{},
		&models.Department{},
		&models.User{},
		&models.Faculty{},
		&models.Student{},
		&models.Subject{},
		&models.Room{},
		&models.Section{},
		&models.UserActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	tokens := auth.NewTokenManager(auth.TokenManagerConfig{
		Secret:        cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
		Issuer:        cfg.JWTIssuer,
	})
	denylist := auth.NewDenylist(redisClient)

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	sectionRepo := repository.NewSectionRepository(db)

	activityService := service.NewActivityService(activityRepo, userRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, denylist, activityService, validate, logger)
	userAdminService := service.NewUserAdminService(userRepo, activityService, validate, logger)
	dashboardService := service.NewDashboardService(userRepo, activityRepo, redisClient, time.Minute, logger)
	collegeService := service.NewCollegeService(
		collegeRepo, departmentRepo, facultyRepo, studentRepo, roomRepo, subjectRepo, sectionRepo, validate, logger,
	)
	departmentService := service.NewDepartmentService(departmentRepo, collegeRepo, validate, logger)
	facultyService := service.NewFacultyService(facultyRepo, departmentRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, departmentRepo, validate, logger)
	subjectService := service.NewSubjectService(subjectRepo, departmentRepo, validate, logger)
	roomService := service.NewRoomService(roomRepo, departmentRepo, validate, logger)
	sectionService := service.NewSectionService(sectionRepo, departmentRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, dashboardService, logger),
		UserAdminHandler:  handler.NewUserAdminHandler(userAdminService, logger),
		ActivityHandler:   handler.NewActivityHandler(activityService, logger),
		CollegeHandler:    handler.NewCollegeHandler(collegeService, logger),
		DepartmentHandler: handler.NewDepartmentHandler(departmentService, logger),
		FacultyHandler:    handler.NewFacultyHandler(facultyService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		SubjectHandler:    handler.NewSubjectHandler(subjectService, logger),
		RoomHandler:       handler.NewRoomHandler(roomService, logger),
		SectionHandler:    handler.NewSectionHandler(sectionService, logger),
		JWTMiddleware:     middleware.JWTProtected(tokens),
		OptionalJWT:       middleware.OptionalJWT(tokens),
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
