package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/model"
	"eventhub/internal/service"
)

// EventHandler handles event management endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest represents an event creation request.
type CreateEventRequest struct {
	Title     string    `json:"title" validate:"required,max=200"`
	Date      time.Time `json:"date" validate:"required"`
	Category  string    `json:"category" validate:"max=100"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	Status    string    `json:"status" validate:"omitempty,oneof=UPCOMING CANCELLED COMPLETED"`
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event data"
// @Success 201 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lat, err := parseCoordinate(req.Latitude, 90)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid latitude",
			Code:  "INVALID_COORDINATE",
		})
	}
	lng, err := parseCoordinate(req.Longitude, 180)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid longitude",
			Code:  "INVALID_COORDINATE",
		})
	}

	event := &model.Event{
		Title:     req.Title,
		Date:      req.Date,
		Category:  req.Category,
		Latitude:  lat,
		Longitude: lng,
		Status:    model.EventStatus(req.Status),
	}

	created, err := h.eventService.CreateEvent(c.Request().Context(), event)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, created)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{eventId} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.GetEvent(c.Request().Context(), eventID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, event)
}

// ListEvents godoc
// @Summary List all events
// @Tags events
// @Produce json
// @Success 200 {array} model.Event
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.eventService.ListEvents(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, events)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{eventId} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	if err := h.eventService.DeleteEvent(c.Request().Context(), eventID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}

func parseCoordinate(value string, bound int64) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	limit := decimal.NewFromInt(bound)
	if d.Abs().GreaterThan(limit) {
		return decimal.Zero, echo.ErrBadRequest
	}
	return d, nil
}
