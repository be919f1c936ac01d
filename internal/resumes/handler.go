package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/extract"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/util"
	"career-backend/internal/shared/validate"
)

const maxUploadBytes = 5 << 20

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/resume", h.save)
	rg.GET("/resume", h.get)
	rg.POST("/resume/improve", h.improve)
	rg.POST("/resume/ats-feedback", h.atsFeedback)
	rg.POST("/resume/import", h.importFile)
}

func (h *Handler) save(c *gin.Context) {
	var in SaveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.InvalidBody(c)
		return
	}
	resume, err := h.Svc.Save(c.Request.Context(), middleware.UserIDFromContext(c), in.Content)
	if err != nil {
		writeError(c, err, "failed to save resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) improve(c *gin.Context) {
	var in ImproveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.InvalidBody(c)
		return
	}
	text, err := h.Svc.Improve(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err, "failed to improve content")
		return
	}
	respond.OK(c, gin.H{"content": text})
}

func (h *Handler) atsFeedback(c *gin.Context) {
	var in SaveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.InvalidBody(c)
		return
	}
	fb, err := h.Svc.GenerateATSFeedback(c.Request.Context(), middleware.UserIDFromContext(c), in.Content)
	if err != nil {
		writeError(c, err, "failed to generate ATS feedback")
		return
	}
	respond.OK(c, fb)
}

func (h *Handler) importFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		respond.Invalid(c, "multipart field \"file\" is required", nil)
		return
	}
	name, err := util.CleanFileName(fh.Filename)
	if err != nil {
		respond.Invalid(c, "invalid file name", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respond.Invalid(c, "unreadable upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respond.Invalid(c, "unreadable upload", nil)
		return
	}
	resume, err := h.Svc.ImportFile(c.Request.Context(), middleware.UserIDFromContext(c), data, fh.Header.Get("Content-Type"), name)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			respond.Invalid(c, "only PDF and DOCX resumes can be imported", nil)
			return
		}
		writeError(c, err, "failed to import resume")
		return
	}
	respond.OK(c, resume)
}

func writeError(c *gin.Context, err error, fallback string) {
	if details := validate.Details(err); details != nil {
		respond.Invalid(c, "invalid resume input", details)
		return
	}
	switch {
	case errors.Is(err, ErrProfileMissing):
		respond.Error(c, http.StatusNotFound, "not_found", "User doesn't exist", nil)
	case errors.Is(err, ErrNoIndustry):
		respond.Error(c, http.StatusNotFound, "not_found", "complete onboarding to choose an industry", nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, "upstream_error", fallback, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
