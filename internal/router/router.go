package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"eventhub/internal/auth"
	"eventhub/internal/handler"
	"eventhub/internal/model"
	"eventhub/internal/repository"
)

// Register wires routes and middleware. The authentication gate runs for
// every /api request and passes unauthenticated requests through; each
// protected route carries an explicit role check.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	eventHandler *handler.EventHandler,
	favoriteHandler *handler.FavoriteHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.Use(auth.Middleware(jwtService, userRepo))

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/check-username/:username", authHandler.CheckUsername)
	api.GET("/auth/check-email/:email", authHandler.CheckEmail)

	api.GET("/events", eventHandler.ListEvents)
	api.GET("/events/:eventId", eventHandler.GetEvent)
	api.GET("/events/:eventId/favorite/count", favoriteHandler.GetFavoritesCount)

	// Authenticated routes
	memberOnly := auth.RequireRoles(model.RoleUser, model.RoleAdmin)
	api.POST("/events/:eventId/favorite", favoriteHandler.Toggle, memberOnly)
	api.GET("/events/:eventId/favorite", favoriteHandler.IsFavorite, memberOnly)

	// Admin routes
	adminOnly := auth.RequireRoles(model.RoleAdmin)
	api.POST("/events", eventHandler.CreateEvent, adminOnly)
	api.DELETE("/events/:eventId", eventHandler.DeleteEvent, adminOnly)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
