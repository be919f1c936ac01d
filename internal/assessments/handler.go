package assessments

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
	rg.POST("/interview/quiz", h.generateQuiz)
	rg.POST("/interview/assessments", h.save)
	rg.GET("/interview/assessments", h.list)
}

func (h *Handler) generateQuiz(c *gin.Context) {
	questions, err := h.Svc.GenerateQuiz(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoIndustry):
			respond.Error(c, http.StatusNotFound, "not_found", "complete onboarding to choose an industry", nil)
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "Failed to generate Quiz", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate Quiz", nil)
		}
		return
	}
	respond.OK(c, gin.H{"questions": questions})
}

func (h *Handler) save(c *gin.Context) {
	var in SaveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.InvalidBody(c)
		return
	}
	saved, err := h.Svc.SaveResult(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		if details := validate.Details(err); details != nil {
			respond.Invalid(c, "invalid quiz result", details)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save quiz result", nil)
		return
	}
	respond.Created(c, saved)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list assessments", nil)
		return
	}
	respond.OK(c, items)
}
