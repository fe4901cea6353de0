package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
	"github.com/angelina-scw/course-enroll-backend-project/internal/handler"
	"github.com/angelina-scw/course-enroll-backend-project/internal/logger"
	"github.com/angelina-scw/course-enroll-backend-project/internal/middleware"
	"github.com/angelina-scw/course-enroll-backend-project/internal/response"
	"github.com/angelina-scw/course-enroll-backend-project/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course *handler.CourseHandler
	Health *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	limiter *middleware.RateLimiter,
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
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	router.Use(logger.GinMiddleware(log, response.ContextKeyRequestID, middleware.ContextKeyUsername))

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Health check.
	router.GET("/health", handlers.Health.Health)

	api := router.Group("/api")
	api.Use(middleware.RequireJWT(authService))

	// ─── 1. Catalog ────────────────────────────────────────────────────
	catalog := api.Group("")
	catalog.Use(middleware.CacheControl(middleware.CachePrivateShort))
	{
		catalog.GET("/courses", handlers.Course.ListCourses)
	}

	// ─── 2. Student Group (ROLE_USER) ──────────────────────────────────
	student := api.Group("/student")
	student.Use(
		middleware.RequireAuthority(service.AuthorityUser),
		middleware.CacheControl(middleware.CacheNoStore),
	)
	{
		student.GET("/selected-courses", handlers.Course.ListSelectedCourses)

		course := student.Group("/course")
		course.Use(limiter.Middleware())
		course.POST("/:courseName", handlers.Course.Enroll)
		course.DELETE("/:courseName", handlers.Course.Drop)
	}

	return router
}
