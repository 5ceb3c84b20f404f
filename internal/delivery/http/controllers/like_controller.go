package controllers

import (
	"log/slog"
	"net/http"

	"eventura/internal/delivery/http/helpers"
	"eventura/internal/delivery/http/middleware"
	"eventura/internal/domain"
)

// ToggleLikeResponse is the body returned by POST/DELETE /events/{eventID}/like.
type ToggleLikeResponse struct {
	Liked      bool `json:"liked"`
	TotalLikes int  `json:"total_likes"`
}

// LikeStatusResponse is the body returned by GET /events/{eventID}/my-like.
type LikeStatusResponse struct {
	Liked bool `json:"liked"`
}

// LikeTotalResponse is the body returned by GET /events/{eventID}/likes.
type LikeTotalResponse struct {
	TotalLikes int `json:"total_likes"`
}

type LikeController struct {
	Logger  *slog.Logger
	Service domain.LikeService
}

func NewLikeController(logger *slog.Logger, svc domain.LikeService) *LikeController {
	return &LikeController{
		Logger:  logger,
		Service: svc,
	}
}

// ToggleLike godoc
// @Summary Toggle a like on an event
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.ToggleLikeResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/like [post]
// @Router /events/{eventID}/like [delete]
func (c *LikeController) ToggleLike(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	res, err := c.Service.ToggleLike(r.Context(), eventID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ToggleLikeResponse{Liked: res.Active, TotalLikes: res.Total})
}

// GetLikeStatus godoc
// @Summary Whether the caller likes an event
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.LikeStatusResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events/{eventID}/my-like [get]
func (c *LikeController) GetLikeStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	liked, err := c.Service.GetLikeStatus(r.Context(), eventID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LikeStatusResponse{Liked: liked})
}

// GetTotalLikes godoc
// @Summary Number of likes on an event
// @Description Unknown events count as zero.
// @Tags likes
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.LikeTotalResponse}
// @Router /events/{eventID}/likes [get]
func (c *LikeController) GetTotalLikes(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	total, err := c.Service.GetTotalLikes(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LikeTotalResponse{TotalLikes: total})
}

// ListMyLikes godoc
// @Summary Events the caller has liked
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events/my-likes [get]
func (c *LikeController) ListMyLikes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListLikedEvents(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
