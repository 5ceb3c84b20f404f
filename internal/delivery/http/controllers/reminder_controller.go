package controllers

import (
	"log/slog"
	"net/http"

	"eventura/internal/delivery/http/helpers"
	"eventura/internal/domain"
)

// ReminderRunSuccessResponse is the success envelope for POST /admin/reminders/run (200).
type ReminderRunSuccessResponse struct {
	Data  *domain.ReminderRunReport `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type ReminderController struct {
	Logger  *slog.Logger
	Service domain.ReminderService
}

func NewReminderController(logger *slog.Logger, svc domain.ReminderService) *ReminderController {
	return &ReminderController{
		Logger:  logger,
		Service: svc,
	}
}

// RunReminders godoc
// @Summary Run the reminder job now
// @Description Sends today's 7-day and 1-day reminders immediately and returns the run report. Reminders already sent today by the daily job are sent again.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ReminderRunSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reminders/run [post]
func (c *ReminderController) RunReminders(w http.ResponseWriter, r *http.Request) {
	report, err := c.Service.Run(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}
