package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storymap-backend/internal/shared/middleware"
	"storymap-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSAllowedOrigins),
		middleware.Metrics(c.Metrics),
	)

	router.GET("/health", healthCheckHandler(c.Config.App.Version, c.DB, c.Redis))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		setupPlaceRoutes(v1, c)
		setupStoryRoutes(v1, c)
		setupTraceRoutes(v1, c)
		setupQuestionRoutes(v1, c)
		setupModerationRoutes(v1, c)
	}

	return router
}

// ========================================
// PLACE ROUTES
// ========================================
func setupPlaceRoutes(v1 *gin.RouterGroup, c *container.Container) {
	places := v1.Group("/places")
	{
		places.GET("", c.PlaceHandler.ListPlaces)
		places.POST("", c.PlaceHandler.CreatePlace)
		places.GET("/by-slug/:slug", c.PlaceHandler.GetPlaceBySlug)
		places.GET("/:id", c.PlaceHandler.GetPlace)
		places.POST("/:id/polls", c.PollHandler.SubmitPoll)
		places.GET("/:id/polls/results", c.PollHandler.GetResults)
	}
}

// ========================================
// STORY ROUTES
// ========================================
func setupStoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	stories := v1.Group("/stories")
	{
		stories.GET("", c.StoryHandler.ListStories)
		stories.POST("", c.StoryHandler.CreateStory)
		stories.GET("/:id", c.StoryHandler.GetStory)
		stories.POST("/:id/vote", c.StoryHandler.Vote)
	}
}

// ========================================
// TRACE ROUTES
// ========================================
func setupTraceRoutes(v1 *gin.RouterGroup, c *container.Container) {
	traces := v1.Group("/traces")
	{
		traces.GET("", c.TraceHandler.ListTraces)
		traces.POST("", c.TraceHandler.CreateTrace)
	}
}

func setupQuestionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/questions", c.QuestionHandler.ListQuestions)
}

// ========================================
// MODERATION ROUTES
// ========================================
func setupModerationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	moderation := v1.Group("/moderation")
	moderation.Use(middleware.ModeratorKey(c.Config.Moderation.APIKey))
	{
		moderation.GET("/stories", c.ModerationHandler.ListQueue)
		moderation.PATCH("/stories/:id", c.ModerationHandler.ModerateStory)
	}
}

// ========================================
// HEALTH
// ========================================

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// healthCheckHandler answers 503 when Postgres is unreachable. A Redis
// outage only degrades slug locking and task enqueueing.
func healthCheckHandler(version string, db, redis healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK

		dbStatus := "ok"
		if db == nil || db.HealthCheck(ctx) != nil {
			dbStatus = "unavailable"
			status = "unavailable"
			code = http.StatusServiceUnavailable
		}

		redisStatus := "ok"
		if redis == nil || redis.HealthCheck(ctx) != nil {
			redisStatus = "unavailable"
			if code == http.StatusOK {
				status = "degraded"
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"database":  dbStatus,
			"redis":     redisStatus,
			"version":   version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
