package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventura/internal/delivery/http/helpers"
	"eventura/internal/delivery/http/middleware"
	"eventura/internal/domain"
)

// ListEventsResponse is the body returned by GET /events.
type ListEventsResponse = helpers.Page[*domain.Event]

// ListEventsSuccessResponse is the success envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetEventSuccessResponse is the success envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Paginated event catalogue ordered by date. Only active events unless status is given.
// @Tags events
// @Produce json
// @Param category_id query int false "Category ID"
// @Param status query string false "active, cancelled or ended"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param free query bool false "Only free events"
// @Param from query string false "Earliest date (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "Latest date (RFC 3339 or YYYY-MM-DD)"
// @Param q query string false "Matches title or location"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, errs := helpers.ParseEventFilter(r.URL.Query())
	if len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), filter, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPage(events, params, total))
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event with its category, organizer and images.
// @Tags events
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes the event with its comments, likes, interests, reports and images. Only the organizer or an admin may delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
