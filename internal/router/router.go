package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edustar/intake-backend/internal/config"
	"github.com/edustar/intake-backend/internal/handler"
	"github.com/edustar/intake-backend/internal/metrics"
	"github.com/edustar/intake-backend/internal/middleware"
	"github.com/edustar/intake-backend/internal/response"
)

// lookupMaxAge is how long clients may keep a submission fetched by
// reference number. Submissions never change once stored.
const lookupMaxAge = 24 * 60 * 60

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Submission *handler.SubmissionHandler
	Admin      *handler.AdminHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background housekeeping such as the rate limiter sweep.
func SetupRouter(
	ctx context.Context,
	handlers *Handlers,
	m *metrics.Metrics,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and error bodies can carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(m.Middleware())

	// XLSX downloads and gzipped /metrics pass through uncompressed.
	router.Use(middleware.Brotli())

	router.GET("/health", middleware.NoStore(), handlers.System.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	limiter := middleware.NewRateLimiter(ctx, cfg.SubmitRateLimit, cfg.SubmitRateWindow)

	// ─── Public questionnaire API ─────────────────────────────────────
	api := router.Group("/api")
	{
		submissions := api.Group("/submissions")
		submissions.POST("", limiter.Middleware(), handlers.Submission.CreateSubmission)
		submissions.GET("", middleware.NoStore(), handlers.Submission.ListSubmissions)
		submissions.GET("/:referenceNumber", middleware.CacheControl(lookupMaxAge), handlers.Submission.GetSubmission)
	}

	// ─── Admin listing ────────────────────────────────────────────────
	admin := api.Group("/admin")
	admin.Use(middleware.NoStore())
	{
		admin.GET("/submissions/export", handlers.Admin.ExportSubmissions)
	}

	return router
}
