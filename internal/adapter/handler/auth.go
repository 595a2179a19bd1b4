package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-reporter/errors"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	authService *auth.Service
}

// NewAuth creates a new auth handler
func NewAuth(authService *auth.Service) *Auth {
	return &Auth{
		authService: authService,
	}
}

// Signup handles user registration
// POST /v1/auth/signup
func (h *Auth) Signup(c echo.Context) error {
	req := new(auth.SignupRequest)
	if err := c.Bind(req); err != nil {
		return respondError(c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(req); err != nil {
		return respondError(c, errors.ErrInvalidArgument(err.Error()))
	}

	response, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles password login
// POST /v1/auth/login
func (h *Auth) Login(c echo.Context) error {
	req := new(auth.LoginRequest)
	if err := c.Bind(req); err != nil {
		return respondError(c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(req); err != nil {
		return respondError(c, errors.ErrInvalidArgument(err.Error()))
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Refresh exchanges a refresh token for a new token pair
// POST /v1/auth/refresh
func (h *Auth) Refresh(c echo.Context) error {
	req := new(auth.RefreshRequest)
	if err := c.Bind(req); err != nil {
		return respondError(c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(req); err != nil {
		return respondError(c, errors.ErrInvalidArgument(err.Error()))
	}

	response, err := h.authService.Refresh(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Logout revokes the supplied refresh token
// POST /v1/auth/logout
func (h *Auth) Logout(c echo.Context) error {
	req := new(auth.RefreshRequest)
	if err := c.Bind(req); err != nil {
		return respondError(c, errors.ErrInvalidPayload())
	}

	if req.RefreshToken != "" {
		if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
			return respondError(c, err)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated user's profile
// GET /v1/auth/me
func (h *Auth) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return respondError(c, errors.ErrUnauthenticated())
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}
