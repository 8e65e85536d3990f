package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lostfound_backend/internal/config"
	"lostfound_backend/internal/database"
	"lostfound_backend/internal/email"
	"lostfound_backend/internal/handlers"
	"lostfound_backend/internal/logger"
	"lostfound_backend/internal/middleware"
	"lostfound_backend/internal/routes"
	"lostfound_backend/internal/services"
	"lostfound_backend/internal/storage"
	"lostfound_backend/internal/validator"
	"lostfound_backend/pkg/apperrors"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrorsDebug := cfg.Server.Env == "development"

	logger.Info("Connecting to database...")
	// TranslateError maps driver unique-violations to gorm.ErrDuplicatedKey,
	// which the user and claim repositories depend on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB, apperrorsDebug)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, debug bool) *gin.Engine {
	apperrors.SetDebug(debug)

	storageInstance, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(cfg.JWT.Secret))
	routes.RegisterStatic(ginRouter, cfg.Storage.BaseURL, storageInstance.BasePath())

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var mailer email.Sender
	if cfg.Email.SMTPHost != "" {
		mailer = email.NewSMTPSender(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
		})
	} else {
		logger.Warn("SMTP is not configured, outbound email is disabled")
		mailer = email.NoopSender{}
	}

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(cfg.JWT.Secret, cfg.JWT.TTLHours),
		ItemService:         services.NewItemService(mailer),
		ClaimService:        services.NewClaimService(),
		CommentService:      services.NewCommentService(),
		NotificationService: services.NewNotificationService(),
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	uploadConfig := handlers.UploadConfig{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	}

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService),
		ItemHandler:         handlers.NewItemHandler(baseHandler, svc.ItemService, storageInstance, uploadConfig),
		ClaimHandler:        handlers.NewClaimHandler(baseHandler, svc.ClaimService),
		CommentHandler:      handlers.NewCommentHandler(baseHandler, svc.CommentService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, svc.NotificationService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
