package auth

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/model"
)

// UserSource loads user records for token verification. It is satisfied by
// repository.UserRepository.
type UserSource interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// Middleware returns the per-request authentication gate. It extracts the
// bearer token, verifies it against the user record and attaches a Principal
// to the request context. The request always continues to the next stage:
// missing, malformed or mis-signed tokens leave it unauthenticated, and
// route-level policy decides whether that is acceptable.
func Middleware(jwtService *JWTService, users UserSource) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			username, err := jwtService.ExtractUsername(tokenString)
			if err != nil || username == "" {
				return nil, errors.New("token rejected")
			}
			user, err := users.FindByUsername(c.Request().Context(), username)
			if err != nil {
				// Unknown user means unauthenticated, not a server fault.
				return nil, errors.New("token subject unknown")
			}
			if !jwtService.Verify(tokenString, user.Username) {
				return nil, errors.New("token rejected")
			}
			return &Principal{
				UserID:   user.ID,
				Username: user.Username,
				Role:     user.Role,
			}, nil
		},
		SuccessHandler: func(c echo.Context) {
			if p, ok := c.Get("user").(*Principal); ok {
				SetPrincipal(c, p)
			}
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			// Pass through unauthenticated; never surface token errors here.
			return nil
		},
	})
}

// RequireRoles returns middleware that rejects requests whose principal is
// missing (401) or whose role is not in the allowed set (403).
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHENTICATED",
				})
			}
			if !p.HasAnyRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "insufficient permissions",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
