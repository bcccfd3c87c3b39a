package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/service"
)

// AuthHandler handles registration, login and availability endpoints.
type AuthHandler struct {
	authService   service.AuthService
	userService   service.UserService
	tokenLifetime time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, userService service.UserService, tokenLifetime time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		userService:   userService,
		tokenLifetime: tokenLifetime,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterResponse represents a successful registration.
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login with an issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expiresIn"` // milliseconds
}

// AvailabilityResponse reports whether a username or email is free.
type AvailabilityResponse struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Available bool   `json:"available"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		Message:  "registration successful, welcome " + user.Username,
	})
}

// Login godoc
// @Summary Login with username or email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
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

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		ExpiresIn: h.tokenLifetime.Milliseconds(),
	})
}

// CheckUsername godoc
// @Summary Check username availability
// @Tags auth
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} AvailabilityResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/check-username/{username} [get]
func (h *AuthHandler) CheckUsername(c echo.Context) error {
	username := c.Param("username")

	available, err := h.userService.IsUsernameAvailable(c.Request().Context(), username)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AvailabilityResponse{
		Username:  username,
		Available: available,
	})
}

// CheckEmail godoc
// @Summary Check email availability
// @Tags auth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} AvailabilityResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/check-email/{email} [get]
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	email := c.Param("email")

	available, err := h.userService.IsEmailAvailable(c.Request().Context(), email)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AvailabilityResponse{
		Email:     email,
		Available: available,
	})
}
