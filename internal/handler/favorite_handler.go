package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"eventhub/internal/auth"
	apperrors "eventhub/internal/errors"
	"eventhub/internal/service"
)

// FavoriteHandler handles favorite toggle and counter endpoints.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// FavoriteResponse represents the state after a favorite toggle.
type FavoriteResponse struct {
	EventID        uint `json:"eventId"`
	Favorite       bool `json:"favorite"`
	FavoritesCount int  `json:"favoritesCount"`
}

// FavoriteCountResponse represents the favorites counter of an event.
type FavoriteCountResponse struct {
	EventID        uint `json:"eventId"`
	FavoritesCount int  `json:"favoritesCount"`
}

// FavoriteStateResponse represents whether the caller favorited an event.
type FavoriteStateResponse struct {
	EventID  uint `json:"eventId"`
	Favorite bool `json:"favorite"`
}

func eventIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("eventId"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid event ID",
			Code:  "INVALID_EVENT_ID",
		})
	}
	return uint(id), nil
}

// Toggle godoc
// @Summary Toggle favorite for the authenticated user
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} FavoriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{eventId}/favorite [post]
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	ctx := c.Request().Context()
	favorite, err := h.favoriteService.ToggleFavorite(ctx, principal.UserID, eventID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	count, err := h.favoriteService.GetFavoritesCount(ctx, eventID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, FavoriteResponse{
		EventID:        eventID,
		Favorite:       favorite,
		FavoritesCount: count,
	})
}

// GetFavoritesCount godoc
// @Summary Get the favorites counter of an event
// @Tags favorites
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} FavoriteCountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{eventId}/favorite/count [get]
func (h *FavoriteHandler) GetFavoritesCount(c echo.Context) error {
	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	count, err := h.favoriteService.GetFavoritesCount(c.Request().Context(), eventID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, FavoriteCountResponse{
		EventID:        eventID,
		FavoritesCount: count,
	})
}

// IsFavorite godoc
// @Summary Check whether the authenticated user favorited an event
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} FavoriteStateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{eventId}/favorite [get]
func (h *FavoriteHandler) IsFavorite(c echo.Context) error {
	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	favorite, err := h.favoriteService.IsFavorite(c.Request().Context(), principal.UserID, eventID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, FavoriteStateResponse{
		EventID:  eventID,
		Favorite: favorite,
	})
}
