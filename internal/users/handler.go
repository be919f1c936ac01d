package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/shared/validate"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the credential routes that run without a session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-up", h.signUp)
	rg.POST("/sign-in", h.signIn)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

type signUpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) signUp(c *gin.Context) {
	var in SignUpInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, signUpResponse{Message: "All fields are required"})
		return
	}
	_, err := h.Svc.SignUp(c.Request.Context(), in)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, signUpResponse{Success: true, Message: "User Registered Successfully"})
	case errors.Is(err, ErrMissingFields):
		c.JSON(http.StatusBadRequest, signUpResponse{Message: "All fields are required"})
	case errors.Is(err, ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, signUpResponse{Message: "Username is already Taken"})
	case errors.Is(err, ErrEmailTaken):
		c.JSON(http.StatusBadRequest, signUpResponse{Message: "User already exists with this email"})
	default:
		telemetry.Error("users.sign_up_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err.Error(),
		})
		c.JSON(http.StatusInternalServerError, signUpResponse{Message: "Error registering user"})
	}
}

func (h *Handler) signIn(c *gin.Context) {
	var in SignInInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.InvalidBody(c)
		return
	}
	if err := validate.Struct(in); err != nil {
		respond.Invalid(c, "identifier and password are required", validate.Details(err))
		return
	}
	session, err := h.Svc.Authenticate(c.Request.Context(), in.Identifier, in.Password)
	switch {
	case err == nil:
		respond.OK(c, session)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "No user found with this email or username", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Incorrect password", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
	}
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}
