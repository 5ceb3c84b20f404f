package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventura/internal/delivery/http/controllers"
	"eventura/internal/delivery/http/middleware"
	"eventura/internal/domain"
)

type stubVerifier map[string]*domain.Principal

func (s stubVerifier) Verify(token string) (*domain.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, errors.New("unknown token")
}

type stubInterests struct{ toggles int }

func (s *stubInterests) ToggleInterest(context.Context, int64, int64) (*domain.ToggleResult, error) {
	s.toggles++
	return &domain.ToggleResult{Active: s.toggles%2 == 1, Total: s.toggles % 2}, nil
}
func (s *stubInterests) GetInterestStatus(_ context.Context, _ int64, userID int64) (bool, error) {
	return userID != 0, nil
}
func (s *stubInterests) GetTotalInterests(context.Context, int64) (int, error) { return 5, nil }
func (s *stubInterests) ListEventsOfInterest(context.Context, int64) ([]*domain.Event, error) {
	return []*domain.Event{{ID: 1}}, nil
}

type stubLikes struct{}

func (stubLikes) ToggleLike(context.Context, int64, int64) (*domain.ToggleResult, error) {
	return &domain.ToggleResult{Active: true, Total: 1}, nil
}
func (stubLikes) GetLikeStatus(context.Context, int64, int64) (bool, error) { return false, nil }
func (stubLikes) GetTotalLikes(context.Context, int64) (int, error)       { return 0, nil }
func (stubLikes) ListLikedEvents(context.Context, int64) ([]*domain.Event, error) {
	return []*domain.Event{}, nil
}

type stubEvents struct{}

func (stubEvents) ListEvents(context.Context, domain.EventFilter, domain.PaginationParams) ([]*domain.Event, int, error) {
	return []*domain.Event{}, 0, nil
}
func (stubEvents) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	return &domain.Event{ID: id}, nil
}
func (stubEvents) DeleteEvent(context.Context, int64, int64) error { return nil }

type stubReminders struct{}

func (stubReminders) Run(context.Context) (*domain.ReminderRunReport, error) {
	return &domain.ReminderRunReport{Notices: []*domain.ReminderNotice{}}, nil
}

type stubPinger struct{}

func (stubPinger) PingContext(context.Context) error { return nil }

func newTestRouter(limiter *middleware.RateLimiter) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Controllers{
		Event:    controllers.NewEventController(logger, stubEvents{}),
		Interest: controllers.NewInterestController(logger, &stubInterests{}),
		Like:     controllers.NewLikeController(logger, stubLikes{}),
		Reminder: controllers.NewReminderController(logger, stubReminders{}),
		Health:   controllers.NewHealthController(logger, stubPinger{}),
	}, RouterOptions{
		Verifier: stubVerifier{
			"user":  {UserID: 7},
			"admin": {UserID: 1, Roles: []string{domain.RoleAdmin}},
		},
		Logger:         logger,
		AllowedOrigins: []string{"http://localhost:5173"},
		ToggleLimiter:  limiter,
	})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(nil)

	tests := []struct {
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{http.MethodGet, "/events", "", http.StatusOK},
		{http.MethodGet, "/events/42", "", http.StatusOK},
		{http.MethodDelete, "/events/42", "", http.StatusUnauthorized},
		{http.MethodDelete, "/events/42", "user", http.StatusNoContent},
		{http.MethodPost, "/events/42/interest", "", http.StatusUnauthorized},
		{http.MethodPost, "/events/42/interest", "user", http.StatusOK},
		{http.MethodDelete, "/events/42/interest", "user", http.StatusOK},
		{http.MethodGet, "/events/42/my-interest", "", http.StatusOK},
		{http.MethodGet, "/events/42/my-interest", "bogus", http.StatusUnauthorized},
		{http.MethodGet, "/events/42/interests", "", http.StatusOK},
		{http.MethodGet, "/events/my-interests", "user", http.StatusOK},
		{http.MethodGet, "/events/my-interests", "", http.StatusUnauthorized},
		{http.MethodPost, "/events/42/like", "user", http.StatusOK},
		{http.MethodDelete, "/events/42/like", "user", http.StatusOK},
		{http.MethodGet, "/events/42/my-like", "", http.StatusOK},
		{http.MethodGet, "/events/42/likes", "", http.StatusOK},
		{http.MethodGet, "/events/my-likes", "user", http.StatusOK},
		{http.MethodPost, "/admin/reminders/run", "user", http.StatusForbidden},
		{http.MethodPost, "/admin/reminders/run", "admin", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPut, "/events/42/interest", "user", http.StatusMethodNotAllowed},
		{http.MethodGet, "/events/abc", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" "+tt.token, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_ToggleRoundTrip(t *testing.T) {
	router := newTestRouter(nil)
	toggle := func() map[string]any {
		req := httptest.NewRequest(http.MethodPost, "/events/42/interest", nil)
		req.Header.Set("Authorization", "Bearer user")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		return body.Data
	}

	first := toggle()
	assert.Equal(t, true, first["interested"])
	assert.Equal(t, float64(1), first["total_interests"])
	second := toggle()
	assert.Equal(t, false, second["interested"])
	assert.Equal(t, float64(0), second["total_interests"])
}

func TestRouter_TogglesAreRateLimited(t *testing.T) {
	router := newTestRouter(middleware.NewRateLimiter(0.001, 1))

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Authorization", "Bearer user")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}
	assert.Equal(t, http.StatusOK, do("/events/42/like"))
	assert.Equal(t, http.StatusTooManyRequests, do("/events/42/like"))

	// Reads are not limited.
	req := httptest.NewRequest(http.MethodGet, "/events/42/likes", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
