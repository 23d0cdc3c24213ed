package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/imgoedu/imgo-backend/internal/config"
	"github.com/imgoedu/imgo-backend/internal/handler"
	"github.com/imgoedu/imgo-backend/internal/middleware"
	"github.com/imgoedu/imgo-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Event     *handler.EventHandler
	Lead      *handler.LeadHandler
	Agreement *handler.AgreementHandler
	Metrics   *handler.MetricsHandler
	Insights  *handler.InsightsHandler
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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Admin-Token", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally.
	router.Use(response.RequestIDMiddleware())

	// Unsupported methods on a known route answer 405, matching the wire
	// contract, instead of Gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, response.ErrMethodNotAllowed)
	})

	// Rate limiter for the public write endpoints (30 requests/min per IP).
	writeLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── Public Group (No Auth) ────────────────────────────────────────
	api := router.Group("/api")
	{
		api.GET("/health", handlers.System.Health)
		api.GET("/universities", middleware.CacheControl(300), handlers.System.GetUniversities)

		api.POST("/events", writeLimiter.Middleware(), handlers.Event.RecordEvent)
		api.POST("/leads", writeLimiter.Middleware(), handlers.Lead.SubmitLead)
	}

	// ─── Admin Group (Shared Token) ────────────────────────────────────
	admin := router.Group("/api")
	admin.Use(middleware.RequireAdminToken(cfg.AdminToken))
	{
		admin.GET("/leads", handlers.Lead.ListLeads)
		admin.GET("/agreements", handlers.Agreement.ListAgreements)
		admin.POST("/agreements", handlers.Agreement.CreateAgreement)
		admin.GET("/metrics", handlers.Metrics.GetMetrics)
		admin.GET("/insights", handlers.Insights.GetInsights)
	}

	return router
}
