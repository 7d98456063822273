package router

import (
	authsvc "amlak-backend/internal/application/auth"
	"amlak-backend/internal/application/events"
	propsvc "amlak-backend/internal/application/properties"
	uploadsvc "amlak-backend/internal/application/uploads"
	"amlak-backend/internal/config"
	"amlak-backend/internal/infrastructure/database"
	"amlak-backend/internal/infrastructure/storage"
	authhandler "amlak-backend/internal/interfaces/handlers/auth"
	healthhandler "amlak-backend/internal/interfaces/handlers/health"
	prophandler "amlak-backend/internal/interfaces/handlers/properties"
	uploadhandler "amlak-backend/internal/interfaces/handlers/uploads"
	"amlak-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Read routes are public; every write route sits behind the
// admin capability token.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.FrontendURLEndsWith}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	healthHandlers := &healthhandler.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	// db may be nil if DATABASE_URL is not set (e.g. tests); listing routes
	// are only mounted when it is available.
	if db == nil {
		return app, db, rdb, nil
	}

	assets, err := buildAssetStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.StorageDriver == "disk" {
		app.Static("/uploads", cfg.UploadDir)
	}

	uploadService := &uploadsvc.Service{Assets: assets}
	recorder := &events.Recorder{DB: db}
	propService := &propsvc.Service{
		Repo:    &propsvc.Repository{DB: db},
		Uploads: uploadService,
		Events:  recorder,
	}
	propHandlers := &prophandler.Handlers{Service: propService, Events: recorder}

	// Public read routes
	propGroup := app.Group("/api/v1/properties")
	propGroup.Get("/", propHandlers.Search)
	propGroup.Get("/:idOrSlug", propHandlers.Get)

	// Admin routes need the token store
	if rdb == nil {
		return app, db, rdb, nil
	}

	authService := &authsvc.Service{
		Rdb:          rdb,
		PasswordHash: cfg.AdminPasswordHash,
		Password:     cfg.AdminPassword,
	}
	authHandlers := &authhandler.Handlers{Service: authService}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	requireAdmin := middleware.RequireAdmin(authService)
	propGroup.Post("/", requireAdmin, propHandlers.Create)
	propGroup.Put("/:id", requireAdmin, propHandlers.Update)
	propGroup.Delete("/:id", requireAdmin, propHandlers.Delete)
	propGroup.Get("/:id/events", requireAdmin, propHandlers.ChangeLog)

	uploadHandlers := &uploadhandler.Handlers{Service: uploadService}
	app.Post("/api/v1/uploads", requireAdmin, uploadHandlers.Upload)

	return app, db, rdb, nil
}

func buildAssetStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Store(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
	}
	return &storage.DiskStore{Dir: cfg.UploadDir, BaseURL: cfg.PublicBaseURL}, nil
}
