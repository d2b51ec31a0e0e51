package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "permits-backend/internal/auth"
	"permits-backend/internal/businesses"
	"permits-backend/internal/extraction"
	"permits-backend/internal/permits"
	"permits-backend/internal/shared/config"
	"permits-backend/internal/shared/metrics"
	"permits-backend/internal/shared/server/middleware"
	"permits-backend/internal/shared/server/respond"
	"permits-backend/internal/uploads"
	"permits-backend/internal/users"
)

const extractRateGroup = "EXTRACT"

// Deps carries the constructed handlers the router mounts.
type Deps struct {
	Users      *users.Handler
	Businesses *businesses.Handler
	Permits    *permits.Handler
	Extraction *extraction.Handler
	Uploads    *uploads.Handler
	GoogleAuth *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Registered before the middleware chain so scrapes and liveness probes
	// skip auth.
	r.GET("/metrics", metrics.Handler())
	r.GET("/api/v1/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	deps.GoogleAuth.RegisterRoutes(api)
	deps.Users.RegisterRoutes(api)
	deps.Businesses.RegisterRoutes(api)
	deps.Permits.RegisterRoutes(api)
	deps.Uploads.RegisterRoutes(api)

	// Extraction hits the model provider, so it gets its own throttle.
	extractGroup := api.Group("")
	extractGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			extractRateGroup: {Rate: 0.5, Burst: 5},
		},
		DefaultGroup: extractRateGroup,
	}))
	deps.Extraction.RegisterRoutes(extractGroup)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
