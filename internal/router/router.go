package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/handler"
	"github.com/taskflow/taskflow-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication and
// carry no API prefix. Currently that is only the health check used by
// load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires every /api route. Credential endpoints sit behind the
// token-bucket rate limiter; task endpoints sit behind JWT auth plus the
// per-user response cache. The redis client may be nil, in which case
// both the limiter and the cache become pass-throughs.
func RegisterAPI(
	e *echo.Echo,
	cfg config.Config,
	rdb *redis.Client,
	auth *handler.AuthHandler,
	tasks *handler.TaskHandler,
	statuses *handler.StatusHandler,
) {
	api := e.Group("/api")
	api.GET("", handler.Root)
	api.GET("/", handler.Root)

	// Signup and login are the brute-force targets; everything else is
	// already gated by a valid token.
	limited := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	api.POST("/auth/signup", auth.Signup, limited)
	api.POST("/auth/login", auth.Login, limited)

	jwt := middleware.JWTAuth(cfg.JWTSecret)
	api.GET("/auth/profile", auth.Profile, jwt)

	// The cache middleware must run after JWTAuth: its keys are derived
	// from the verified user id.
	t := api.Group("/tasks", jwt, middleware.NewUserCache(config.LoadCacheConfig(), rdb))
	t.GET("", tasks.List)
	t.POST("", tasks.Create)
	t.GET("/stats", tasks.Stats)
	t.GET("/categories", tasks.Categories)
	t.GET("/:id", tasks.Get)
	t.PUT("/:id", tasks.Update)
	t.DELETE("/:id", tasks.Delete)

	// Legacy status checks, kept for compatibility with early clients.
	api.POST("/status", statuses.Create)
	api.GET("/status", statuses.List)
}
