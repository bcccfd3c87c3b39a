package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"eventhub/internal/model"
)

type stubUserSource struct {
	users map[string]*model.User
}

func (s *stubUserSource) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestApp(jwtService *JWTService, users UserSource) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(jwtService, users))
	e.GET("/whoami", func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, p.Username+":"+string(p.Role))
	})
	e.POST("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, "admin ok")
	}, RequireRoles(model.RoleAdmin))
	e.POST("/member", func(c echo.Context) error {
		return c.String(http.StatusOK, "member ok")
	}, RequireRoles(model.RoleUser, model.RoleAdmin))
	return e
}

func TestMiddleware_Authentication(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	users := &stubUserSource{users: map[string]*model.User{
		"alice": {ID: 7, Username: "alice", Role: model.RoleUser},
	}}
	e := newTestApp(jwtService, users)

	validToken, err := jwtService.Issue("alice", "USER")
	assert.NoError(t, err)

	unknownToken, err := jwtService.Issue("ghost", "USER")
	assert.NoError(t, err)

	foreignToken, err := NewJWTService("other-secret", time.Hour).Issue("alice", "USER")
	assert.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantBody   string
	}{
		{
			name:       "no header passes through unauthenticated",
			authHeader: "",
			wantBody:   "anonymous",
		},
		{
			name:       "valid token attaches principal",
			authHeader: "Bearer " + validToken,
			wantBody:   "alice:USER",
		},
		{
			name:       "token for unknown user passes through unauthenticated",
			authHeader: "Bearer " + unknownToken,
			wantBody:   "anonymous",
		},
		{
			name:       "mis-signed token passes through unauthenticated",
			authHeader: "Bearer " + foreignToken,
			wantBody:   "anonymous",
		},
		{
			name:       "garbage token passes through unauthenticated",
			authHeader: "Bearer garbage",
			wantBody:   "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestRequireRoles(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	users := &stubUserSource{users: map[string]*model.User{
		"alice": {ID: 7, Username: "alice", Role: model.RoleUser},
		"root":  {ID: 1, Username: "root", Role: model.RoleAdmin},
	}}
	e := newTestApp(jwtService, users)

	userToken, err := jwtService.Issue("alice", "USER")
	assert.NoError(t, err)
	adminToken, err := jwtService.Issue("root", "ADMIN")
	assert.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "anonymous rejected with 401",
			path:       "/member",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "user allowed on member route",
			path:       "/member",
			authHeader: "Bearer " + userToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "admin allowed on member route",
			path:       "/member",
			authHeader: "Bearer " + adminToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "user rejected on admin route with 403",
			path:       "/admin",
			authHeader: "Bearer " + userToken,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin allowed on admin route",
			path:       "/admin",
			authHeader: "Bearer " + adminToken,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
