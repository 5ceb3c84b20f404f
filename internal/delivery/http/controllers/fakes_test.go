package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventura/internal/delivery/http/helpers"
	"eventura/internal/delivery/http/middleware"
	"eventura/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeRelationService backs both InterestService and LikeService in handler tests.
type fakeRelationService struct {
	toggleResult *domain.ToggleResult
	status       bool
	total        int
	events       []*domain.Event
	err          error

	lastEventID int64
	lastUserID  int64
	calls       int
}

func (f *fakeRelationService) toggle(eventID, userID int64) (*domain.ToggleResult, error) {
	f.calls++
	f.lastEventID, f.lastUserID = eventID, userID
	return f.toggleResult, f.err
}

func (f *fakeRelationService) getStatus(eventID, userID int64) (bool, error) {
	f.calls++
	f.lastEventID, f.lastUserID = eventID, userID
	return f.status, f.err
}

func (f *fakeRelationService) getTotal(eventID int64) (int, error) {
	f.calls++
	f.lastEventID = eventID
	return f.total, f.err
}

func (f *fakeRelationService) list(userID int64) ([]*domain.Event, error) {
	f.calls++
	f.lastUserID = userID
	return f.events, f.err
}

type fakeInterestService struct{ fakeRelationService }

func (f *fakeInterestService) ToggleInterest(_ context.Context, eventID, userID int64) (*domain.ToggleResult, error) {
	return f.toggle(eventID, userID)
}

func (f *fakeInterestService) GetInterestStatus(_ context.Context, eventID, userID int64) (bool, error) {
	return f.getStatus(eventID, userID)
}

func (f *fakeInterestService) GetTotalInterests(_ context.Context, eventID int64) (int, error) {
	return f.getTotal(eventID)
}

func (f *fakeInterestService) ListEventsOfInterest(_ context.Context, userID int64) ([]*domain.Event, error) {
	return f.list(userID)
}

type fakeLikeService struct{ fakeRelationService }

func (f *fakeLikeService) ToggleLike(_ context.Context, eventID, userID int64) (*domain.ToggleResult, error) {
	return f.toggle(eventID, userID)
}

func (f *fakeLikeService) GetLikeStatus(_ context.Context, eventID, userID int64) (bool, error) {
	return f.getStatus(eventID, userID)
}

func (f *fakeLikeService) GetTotalLikes(_ context.Context, eventID int64) (int, error) {
	return f.getTotal(eventID)
}

func (f *fakeLikeService) ListLikedEvents(_ context.Context, userID int64) ([]*domain.Event, error) {
	return f.list(userID)
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events    []*domain.Event
	total     int
	event     *domain.Event
	err       error
	deleteErr error

	lastFilter        domain.EventFilter
	lastPage          domain.PaginationParams
	lastGetID         int64
	lastDeleteEventID int64
	lastDeleteActorID int64
}

func (f *fakeEventService) ListEvents(_ context.Context, filter domain.EventFilter, page domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastFilter, f.lastPage = filter, page
	return f.events, f.total, f.err
}

func (f *fakeEventService) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	f.lastGetID = id
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, eventID, actorID int64) error {
	f.lastDeleteEventID, f.lastDeleteActorID = eventID, actorID
	return f.deleteErr
}

// newRequest builds a request with the eventID path value and, when userID > 0, an authenticated principal.
func newRequest(method, target, eventID string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if eventID != "" {
		req.SetPathValue("eventID", eventID)
	}
	if userID > 0 {
		req = req.WithContext(middleware.SetPrincipal(req.Context(), &domain.Principal{UserID: userID}))
	}
	return req
}

// decodeEnvelope decodes the standard envelope, placing data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dest != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}
