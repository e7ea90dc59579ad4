package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/nestwatch/nestwatch-api/api/assignments"
	"github.com/nestwatch/nestwatch-api/api/health"
	"github.com/nestwatch/nestwatch-api/api/sessions"
	"github.com/nestwatch/nestwatch-api/api/types"
	"github.com/nestwatch/nestwatch-api/api/version"
	"github.com/nestwatch/nestwatch-api/api/vocab"
	_ "github.com/nestwatch/nestwatch-api/docs/swagger"
	sessionsService "github.com/nestwatch/nestwatch-api/internal/services/sessions"
	"github.com/nestwatch/nestwatch-api/pkg/config"
	"github.com/nestwatch/nestwatch-api/pkg/exif"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Initialize the session registry if not set
	if deps.Sessions == nil {
		initializeSessionRegistry(deps, cfg)
	}

	// Register session routes with general rate limiting (10 req/s, burst of 20).
	// Sync gets its own tighter limit (1 req/s, burst of 2) because each call
	// may reach the external spreadsheet API.
	sessionGroup := v1.Group("/sessions")
	sessionGroup.Use(RequestSizeLimitWithSize(uploadLimit(cfg)))
	sessionGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	syncMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2)
	sessions.RegisterRoutes(sessionGroup, deps, syncMiddleware)

	// Register assignment routes with general rate limiting (10 req/s, burst of 20)
	assignmentGroup := v1.Group("/assignments")
	assignmentGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	assignments.RegisterRoutes(assignmentGroup, deps)

	// Register vocabulary routes with general rate limiting (10 req/s, burst of 20)
	vocabGroup := v1.Group("/vocab")
	vocabGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	vocab.RegisterRoutes(vocabGroup, deps)

	return nil
}

// initializeSessionRegistry creates and configures the session registry
func initializeSessionRegistry(deps *types.Dependencies, cfg *config.Config) {
	deps.Sessions = sessionsService.NewService(
		sessionsService.Limits{
			MaxImages:     cfg.Session.MaxImages,
			MaxImageBytes: cfg.Session.MaxImageBytes,
		},
		cfg.Session.TTL,
		exif.CaptureTime,
		sessionsService.WithCleanupInterval(cfg.Session.CleanupInterval),
	)
}

// uploadLimit caps a whole multipart upload at the per-image limit times the
// image count limit
func uploadLimit(cfg *config.Config) int64 {
	maxImages := int64(cfg.Session.MaxImages)
	if maxImages <= 0 {
		maxImages = 500
	}
	maxBytes := cfg.Session.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = 20 * 1024 * 1024
	}
	return maxImages * maxBytes
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
