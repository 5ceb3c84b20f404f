package controllers

import (
	"log/slog"
	"net/http"

	"eventura/internal/delivery/http/helpers"
	"eventura/internal/delivery/http/middleware"
	"eventura/internal/domain"
)

// ToggleInterestResponse is the body returned by POST/DELETE /events/{eventID}/interest.
type ToggleInterestResponse struct {
	Interested     bool `json:"interested"`
	TotalInterests int  `json:"total_interests"`
}

// ToggleInterestSuccessResponse is the success envelope for the interest toggle (200).
type ToggleInterestSuccessResponse struct {
	Data  ToggleInterestResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// InterestStatusResponse is the body returned by GET /events/{eventID}/my-interest.
type InterestStatusResponse struct {
	Interested bool `json:"interested"`
}

// InterestTotalResponse is the body returned by GET /events/{eventID}/interests.
type InterestTotalResponse struct {
	TotalInterests int `json:"total_interests"`
}

// EventListSuccessResponse is the success envelope for unpaginated event lists (200).
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type InterestController struct {
	Logger  *slog.Logger
	Service domain.InterestService
}

func NewInterestController(logger *slog.Logger, svc domain.InterestService) *InterestController {
	return &InterestController{
		Logger:  logger,
		Service: svc,
	}
}

// ToggleInterest godoc
// @Summary Toggle interest in an event
// @Description Marks the caller as interested if they were not, otherwise removes the interest. Interested users receive reminder emails 7 days and 1 day before the event. POST and DELETE behave identically.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.ToggleInterestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/interest [post]
// @Router /events/{eventID}/interest [delete]
func (c *InterestController) ToggleInterest(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	res, err := c.Service.ToggleInterest(r.Context(), eventID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ToggleInterestResponse{Interested: res.Active, TotalInterests: res.Total})
}

// GetInterestStatus godoc
// @Summary Whether the caller is interested in an event
// @Description Anonymous callers always get false.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.InterestStatusResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/my-interest [get]
func (c *InterestController) GetInterestStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	interested, err := c.Service.GetInterestStatus(r.Context(), eventID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InterestStatusResponse{Interested: interested})
}

// GetTotalInterests godoc
// @Summary Number of users interested in an event
// @Description Unknown events count as zero.
// @Tags interests
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.InterestTotalResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/interests [get]
func (c *InterestController) GetTotalInterests(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	total, err := c.Service.GetTotalInterests(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InterestTotalResponse{TotalInterests: total})
}

// ListMyInterests godoc
// @Summary Events the caller is interested in
// @Description Ordered by event date, then event ID. Each event includes category, organizer and images.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/my-interests [get]
func (c *InterestController) ListMyInterests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEventsOfInterest(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
