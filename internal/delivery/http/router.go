package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventura/internal/delivery/http/controllers"
	"eventura/internal/delivery/http/middleware"
	"eventura/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Event    *controllers.EventController
	Interest *controllers.InterestController
	Like     *controllers.LikeController
	Reminder *controllers.ReminderController
	Health   *controllers.HealthController
}

// RouterOptions carries the cross-cutting pieces the routes need.
type RouterOptions struct {
	Verifier       domain.TokenVerifier
	Logger         *slog.Logger
	AllowedOrigins []string
	ToggleLimiter  *middleware.RateLimiter
}

// NewRouter initializes the HTTP router with all application routes and wraps
// it in request logging and CORS.
func NewRouter(c Controllers, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(opts.Verifier, opts.Logger)
	optionalAuth := middleware.OptionalAuth(opts.Verifier, opts.Logger)
	admin := middleware.RequireRole(domain.RoleAdmin)
	limited := func(next http.HandlerFunc) http.HandlerFunc {
		if opts.ToggleLimiter == nil {
			return next
		}
		return opts.ToggleLimiter.Wrap(next)
	}

	// Events
	mux.HandleFunc("GET /events", c.Event.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetEvent)
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))

	// Interests
	mux.HandleFunc("POST /events/{eventID}/interest", auth(limited(c.Interest.ToggleInterest)))
	mux.HandleFunc("DELETE /events/{eventID}/interest", auth(limited(c.Interest.ToggleInterest)))
	mux.HandleFunc("GET /events/{eventID}/my-interest", optionalAuth(c.Interest.GetInterestStatus))
	mux.HandleFunc("GET /events/{eventID}/interests", c.Interest.GetTotalInterests)
	mux.HandleFunc("GET /events/my-interests", auth(c.Interest.ListMyInterests))

	// Likes
	mux.HandleFunc("POST /events/{eventID}/like", auth(limited(c.Like.ToggleLike)))
	mux.HandleFunc("DELETE /events/{eventID}/like", auth(limited(c.Like.ToggleLike)))
	mux.HandleFunc("GET /events/{eventID}/my-like", optionalAuth(c.Like.GetLikeStatus))
	mux.HandleFunc("GET /events/{eventID}/likes", c.Like.GetTotalLikes)
	mux.HandleFunc("GET /events/my-likes", auth(c.Like.ListMyLikes))

	// Admin
	mux.HandleFunc("POST /admin/reminders/run", auth(admin(c.Reminder.RunReminders)))

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(opts.Logger, middleware.CORS(opts.AllowedOrigins, mux))
}
