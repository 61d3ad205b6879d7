package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autodominio-api/config"
	deliveryHttp "autodominio-api/internal/delivery/http"
	"autodominio-api/internal/delivery/http/handler"
	"autodominio-api/internal/delivery/http/middleware"
	"autodominio-api/internal/infrastructure/cache"
	"autodominio-api/internal/infrastructure/database"
	"autodominio-api/internal/repository"
	"autodominio-api/internal/service"
	"autodominio-api/internal/usecase"
	"autodominio-api/pkg/jwt"
	"autodominio-api/pkg/storage"
	"autodominio-api/pkg/validator"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Log         *logrus.Logger

	bookingLock *service.BookingLockService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(cfg.DB, app.Log); err != nil {
			return nil, err
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := app.initializeServer()
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return logrus.StandardLogger()
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() (*http.Server, error) {
	cfg, db, log := app.Config, app.DB, app.Log

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewInstructorProfileRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	timeOffRepo := repository.NewTimeOffRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	reviewRepo := repository.NewReviewRepository()
	documentRepo := repository.NewDocumentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	var tokenStore service.TokenStore
	if app.RedisClient != nil {
		tokenStore = service.NewRedisTokenStore(app.RedisClient)
	} else {
		tokenStore = service.NewMemoryTokenStore()
	}
	metrics := service.NewMetricsService()
	auditService := service.NewAuditService(log, auditLogRepo)
	photoService := service.NewPhotoService(cfg.Storage.MaxPhotoPx)
	app.bookingLock = service.NewBookingLockService(app.RedisClient, log, cfg.Booking.LockTTL, cfg.Booking.LockWait)

	resolver := usecase.NewAvailabilityResolver(availabilityRepo, timeOffRepo, appointmentRepo, cfg.App.Location, metrics)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, jwtService, tokenStore)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, profileRepo, documentRepo, auditService, fileStorage, photoService)
	profileUsecase := usecase.NewInstructorProfileUsecase(db, log, userRepo, profileRepo, documentRepo, auditService, fileStorage)
	approvalUsecase := usecase.NewApprovalUsecase(db, log, profileRepo, auditService, metrics)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, userRepo, profileRepo, resolver)
	timeOffUsecase := usecase.NewTimeOffUsecase(db, log, profileRepo, timeOffRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, userRepo, profileRepo, resolver, app.bookingLock, auditService, metrics)
	reviewUsecase := usecase.NewReviewUsecase(db, log, userRepo, appointmentRepo, reviewRepo)
	documentUsecase := usecase.NewDocumentUsecase(db, log, profileRepo, documentRepo, auditService, fileStorage, cfg.Storage.MaxPhotoPx)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlerSet := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		User:         handler.NewUserHandler(userUsecase, customValidator),
		Instructor:   handler.NewInstructorHandler(profileUsecase, approvalUsecase, customValidator),
		Availability: handler.NewAvailabilityHandler(availabilityUsecase, timeOffUsecase, customValidator),
		Appointment:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Review:       handler.NewReviewHandler(reviewUsecase, customValidator),
		Document:     handler.NewDocumentHandler(documentUsecase, customValidator),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(handlerSet, authMiddleware, metrics)
	httpRouter := router.Setup()

	var root http.Handler = httpRouter
	root = handlers.RecoveryHandler(handlers.RecoveryLogger(log), handlers.PrintRecoveryStack(!cfg.App.IsProduction()))(root)
	root = handlers.CombinedLoggingHandler(log.Writer(), root)
	root = corsMiddleware.Handle(root)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s, timezone: %s", app.Config.App.Env, app.Config.App.Timezone)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops background workers and closes database and Redis connections.
func (app *App) Close() {
	if app.bookingLock != nil {
		app.bookingLock.Stop()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
