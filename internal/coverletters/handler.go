package coverletters

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
	rg.POST("/cover-letters", h.generate)
	rg.GET("/cover-letters", h.list)
	rg.GET("/cover-letters/:id", h.get)
	rg.DELETE("/cover-letters/:id", h.delete)
	rg.PATCH("/cover-letters/:id/status", h.updateStatus)
}

func (h *Handler) generate(c *gin.Context) {
	var in GenerateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.InvalidBody(c)
		return
	}
	letter, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err, "failed to generate cover letter")
		return
	}
	respond.Created(c, letter)
}

func (h *Handler) list(c *gin.Context) {
	letters, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list cover letters")
		return
	}
	respond.OK(c, letters)
}

func (h *Handler) get(c *gin.Context) {
	letter, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to load cover letter")
		return
	}
	respond.OK(c, letter)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete cover letter")
		return
	}
	respond.OK(c, gin.H{"success": true, "message": "Cover letter deleted successfully"})
}

func (h *Handler) updateStatus(c *gin.Context) {
	var in StatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.InvalidBody(c)
		return
	}
	letter, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err, "failed to update cover letter")
		return
	}
	respond.OK(c, letter)
}

func writeError(c *gin.Context, err error, fallback string) {
	if details := validate.Details(err); details != nil {
		respond.Invalid(c, "invalid cover letter input", details)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
	case errors.Is(err, ErrProfileMissing):
		respond.Error(c, http.StatusNotFound, "not_found", "Profile not found", nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, "upstream_error", fallback, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
