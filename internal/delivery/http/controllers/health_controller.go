package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventura/internal/delivery/http/helpers"
)

const healthPingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
}

func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=controllers.HealthResponse}
// @Failure 503 {object} helpers.APIResponse{data=controllers.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.WarnContext(r.Context(), "health check: database unreachable", "err", err)
		helpers.WriteJSONSuccess(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", Database: "up"})
}
