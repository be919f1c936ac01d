package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"career-backend/internal/assessments"
	googleauth "career-backend/internal/auth"
	"career-backend/internal/coverletters"
	"career-backend/internal/insights"
	"career-backend/internal/profiles"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

// RouterDeps carries the handlers NewRouter mounts. Nil handlers are skipped.
type RouterDeps struct {
	Config       config.Config
	Tokens       middleware.TokenVerifier
	Health       *health.Service
	Users        *users.Handler
	GoogleAuth   *googleauth.GoogleService
	Profiles     *profiles.Handler
	Insights     *insights.Handler
	Resumes      *resumes.Handler
	CoverLetters *coverletters.Handler
	Assessments  *assessments.Handler
	RateLimiter  *middleware.RateLimiter
}

// generativeRoutes are the routes that call the text provider.
var generativeRoutes = map[string]struct{}{
	"GET /api/v1/insights":               {},
	"POST /api/v1/resume/improve":        {},
	"POST /api/v1/resume/ats-feedback":   {},
	"POST /api/v1/cover-letters":         {},
	"POST /api/v1/interview/quiz":        {},
	"POST /api/v1/interview/assessments": {},
}

// DefaultRateLimits allow steady browsing and a handful of generations per minute.
func DefaultRateLimits() map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		middleware.GroupDefault:    {Rate: 10, Burst: 40},
		middleware.GroupGeneration: {Rate: 0.2, Burst: 5},
	}
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		otelgin.Middleware(telemetry.ServiceName),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	api.GET("/metrics", metrics.Handler())

	if deps.Users != nil {
		deps.Users.RegisterPublicRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.Insights != nil {
		deps.Insights.RegisterJobRoutes(api, middleware.CronSecret(deps.Config.CronSecret))
	}

	protected := api.Group("")
	protected.Use(
		middleware.Auth(deps.Tokens),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    DefaultRateLimits(),
			GroupFor: middleware.GenerationGroup(generativeRoutes),
			Limiter:  deps.RateLimiter,
		}),
	)
	if deps.Users != nil {
		deps.Users.RegisterRoutes(protected)
	}
	if deps.Profiles != nil {
		deps.Profiles.RegisterRoutes(protected)
	}
	if deps.Insights != nil {
		deps.Insights.RegisterRoutes(protected)
	}
	if deps.Resumes != nil {
		deps.Resumes.RegisterRoutes(protected)
	}
	if deps.CoverLetters != nil {
		deps.CoverLetters.RegisterRoutes(protected)
	}
	if deps.Assessments != nil {
		deps.Assessments.RegisterRoutes(protected)
	}

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
