package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/apperrors"
	"taskboard/internal/auth"
	"taskboard/internal/service"
)

// AuthHandler handles registration, login and logout endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Index godoc
// @Summary Entry point for unauthenticated visitors
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *AuthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":  "welcome to taskboard, please log in",
		"login":    "/login",
		"register": "/register",
	})
}

// LoginForm godoc
// @Summary Login entry point
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "post email and password to log in",
	})
}

// RegisterForm godoc
// @Summary Registration entry point
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "post email and password to register",
	})
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303 "redirects to /login"
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Duplicate email gets a visible error, no redirect
		if err == service.ErrUserAlreadyExists {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_ALREADY_EXISTS",
			})
		}
		if err == apperrors.ErrInvalidInput {
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

// Login godoc
// @Summary Log in and establish a session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303 "sets the session cookie and redirects to /dashboard"
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	c.SetCookie(auth.NewSessionCookie(token))
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout godoc
// @Summary Invalidate the session and return to the entry point
// @Tags auth
// @Produce json
// @Success 303 "clears the session cookie and redirects to /"
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
				Error: "failed to logout",
				Code:  "LOGOUT_FAILED",
			})
		}
	}

	c.SetCookie(auth.ExpiredSessionCookie())
	return c.Redirect(http.StatusSeeOther, "/")
}
