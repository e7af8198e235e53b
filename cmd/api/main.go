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

	"github.com/campuslink/portal-api/internal/config"
	"github.com/campuslink/portal-api/internal/database"
	"github.com/campuslink/portal-api/internal/handler"
	"github.com/campuslink/portal-api/internal/middleware"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/repository"
	"github.com/campuslink/portal-api/internal/router"
	"github.com/campuslink/portal-api/internal/service"
	"github.com/campuslink/portal-api/pkg/objectstore"
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	store, err := objectstore.New(context.Background(), objectstore.Config{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		UseSSL:    cfg.StorageUseSSL,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create object store client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	bonafideRepo := repository.NewCertificateRepository(db, models.BonafideRequestsTable)
	migrationRepo := repository.NewCertificateRepository(db, models.MigrationRequestsTable)
	blogRepo := repository.NewBlogRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	feeRepo := repository.NewFeeRepository(db)

	certOpts := service.CertificateOptions{
		MaxDocumentBytes: cfg.MaxDocumentBytes,
		LinkTTL:          cfg.DocumentLinkTTL,
	}

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.JWTTTL, logger)
	bonafideService := service.NewCertificateService(bonafideRepo, models.CertificateKindBonafide, validate, store, certOpts, logger)
	migrationService := service.NewCertificateService(migrationRepo, models.CertificateKindMigration, validate, store, certOpts, logger)
	blogService := service.NewBlogService(blogRepo, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo, validate, logger)
	feeService := service.NewFeeService(feeRepo, logger)
	dashboardService := service.NewDashboardService(bonafideRepo, migrationRepo, attendanceRepo, feeRepo, redisClient, cfg.DashboardCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		BonafideHandler:   handler.NewCertificateHandler(bonafideService, models.CertificateKindBonafide, logger),
		MigrationHandler:  handler.NewCertificateHandler(migrationService, models.CertificateKindMigration, logger),
		BlogHandler:       handler.NewBlogHandler(blogService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		FeeHandler:        handler.NewFeeHandler(feeService, logger),
		ProfileHandler:    handler.NewProfileHandler(authService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
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
