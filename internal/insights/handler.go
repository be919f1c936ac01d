package insights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/insights", h.get)
}

// RegisterJobRoutes attaches the scheduler hook behind guard.
func (h *Handler) RegisterJobRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	rg.POST("/jobs/insights/sweep", guard, h.sweep)
}

func (h *Handler) get(c *gin.Context) {
	insight, cached, err := h.Svc.GetForUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoIndustry):
			respond.Error(c, http.StatusNotFound, "not_found", "complete onboarding to choose an industry", nil)
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to generate industry insights", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load industry insights", nil)
		}
		return
	}
	c.Set("industry", insight.Industry)
	if cached {
		c.Set("insightCache", "hit")
	} else {
		c.Set("insightCache", "miss")
	}
	respond.OK(c, insight)
}

func (h *Handler) sweep(c *gin.Context) {
	report, err := h.Svc.Sweep(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "sweep failed", nil)
		return
	}
	respond.OK(c, report)
}
