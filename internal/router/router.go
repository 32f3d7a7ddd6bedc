package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/intervue/intervue-backend/internal/config"
	"github.com/intervue/intervue-backend/internal/handler"
	"github.com/intervue/intervue-backend/internal/middleware"
	"github.com/intervue/intervue-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Interview *handler.InterviewHandler
	Report    *handler.ReportHandler
	System    *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", handlers.System.Health)

	// Rate limiter for interview creation (30 requests per minute per IP).
	createLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── Interview API ─────────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/categories", handlers.Interview.ListCategories)

		api.POST("/interviews", createLimiter.Middleware(), handlers.Interview.CreateInterview)
		api.GET("/interviews/:interview_id", handlers.Interview.GetStatus)
		api.POST("/interviews/:interview_id/answers", handlers.Interview.SubmitAnswer)
		api.GET("/interviews/:interview_id/report", handlers.Interview.GetReport)

		// Persisted report history (PostgreSQL).
		api.GET("/users/:user_id/reports", handlers.Report.ListUserReports)
		api.GET("/reports/:interview_id", handlers.Report.GetReport)
	}

	return router
}
