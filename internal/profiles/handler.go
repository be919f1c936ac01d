package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/validate"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/onboarding", h.completeOnboarding)
	rg.GET("/onboarding/status", h.status)
	rg.GET("/profile", h.get)
}

func (h *Handler) completeOnboarding(c *gin.Context) {
	var in OnboardingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.InvalidBody(c)
		return
	}
	userID := middleware.UserIDFromContext(c)
	profile, err := h.Svc.CompleteOnboarding(c.Request.Context(), userID, in)
	if err != nil {
		if details := validate.Details(err); details != nil {
			respond.Invalid(c, "invalid profile", details)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}
	c.Set("industry", profile.Industry)
	respond.OK(c, profile)
}

func (h *Handler) status(c *gin.Context) {
	status, err := h.Svc.OnboardingStatus(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to check onboarding status", nil)
		return
	}
	respond.OK(c, status)
}

func (h *Handler) get(c *gin.Context) {
	profile, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	respond.OK(c, profile)
}
