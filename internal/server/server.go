// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config     *config.Config
	db         *gorm.DB
	redis      *redis.Client
	postRepo   repository.PostRepository
	labelRepo  repository.LabelRepository
	replyRepo  repository.ReplyRepository
	optionRepo repository.OptionRepository
	objects    storage.ObjectStore
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var objects storage.ObjectStore
	if cfg.S3Bucket != "" {
		objects, err = storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("No S3 bucket configured; assets are stored in memory")
		objects = storage.NewMemoryStore()
	}

	return &Server{
		config:     cfg,
		db:         db,
		redis:      redisClient,
		postRepo:   repository.NewPostRepository(db),
		labelRepo:  repository.NewLabelRepository(db),
		replyRepo:  repository.NewReplyRepository(db),
		optionRepo: repository.NewOptionRepository(db),
		objects:    objects,
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Range",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", s.HealthCheck)
	api.Get("/metrics", monitor.New(monitor.Config{
		Title: "Inkwell Metrics",
	}))

	// Public routes
	api.Get("/posts", s.ListPosts)
	api.Get("/posts/search", s.SearchPosts)
	api.Get("/posts/:id/replies", s.GetReplies)
	api.Get("/posts/:id", s.GetPost)
	api.Get("/labels", s.GetLabels)
	api.Get("/options", s.GetOptions)
	api.Get("/assets/:id", s.GetAsset)
	api.Post("/install", middleware.RateLimit(s.redis, 5, 10*time.Minute, "install"), s.Install)
	api.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Mutating routes require admin credentials
	protected := api.Group("", s.AuthRequired())
	protected.Post("/posts", s.CreatePost)
	protected.Patch("/posts/:id", s.UpdatePost)
	protected.Delete("/posts/:id", s.DeletePost)
	protected.Post("/options", s.UpdateOptions)
	protected.Post("/assets", middleware.RateLimit(s.redis, 30, time.Minute, "upload"), s.UploadAsset)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. Exactly one scheme is
// active: bearer tokens when a signing secret is configured, legacy HTTP
// Basic otherwise. A failed check short-circuits with 401 before any side
// effects.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)

		if s.config.Secret != "" {
			if auth.VerifyBearer(header, s.config.Secret) {
				return c.Next()
			}
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}

		if s.config.Username != "" {
			if auth.VerifyBasic(header, s.config.Username, s.config.Password) {
				return c.Next()
			}
			c.Set(fiber.HeaderWWWAuthenticate, "Basic")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Unauthorized"))
	}
}

// Shutdown gracefully releases server resources.
func (s *Server) Shutdown(_ context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
