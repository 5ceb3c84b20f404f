package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"eventura/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type mockEventRepository struct {
	events     map[int64]*domain.Event
	interested map[int64][]*domain.InterestedUser
	err        error
	listErr    error
	deleteErr  error
	deleted    []int64
	lastFilter domain.EventFilter
}

func newMockEventRepository(events ...*domain.Event) *mockEventRepository {
	m := &mockEventRepository{
		events:     map[int64]*domain.Event{},
		interested: map[int64][]*domain.InterestedUser{},
	}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) sorted(match func(*domain.Event) bool) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, e := range m.events {
		if match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *mockEventRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return m.sorted(func(e *domain.Event) bool { return want[e.ID] }), nil
}

func (m *mockEventRepository) List(ctx context.Context, filter domain.EventFilter, page domain.PaginationParams) ([]*domain.Event, int, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, 0, m.err
	}
	all := m.sorted(func(e *domain.Event) bool { return true })
	return all, len(all), nil
}

func (m *mockEventRepository) ListUpcomingActive(ctx context.Context, after time.Time) ([]*domain.UpcomingEvent, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	events := m.sorted(func(e *domain.Event) bool {
		return e.Date.After(after) && e.Status == domain.EventStatusActive
	})
	out := make([]*domain.UpcomingEvent, 0, len(events))
	for _, e := range events {
		out = append(out, &domain.UpcomingEvent{Event: e, Interested: m.interested[e.ID]})
	}
	return out, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// memRelationRepository is an in-memory ledger with an atomic Toggle.
type memRelationRepository struct {
	mu        sync.Mutex
	seq       int64
	rows      map[[2]int64]int64
	toggleErr error
	calls     int
}

func newMemRelationRepository() *memRelationRepository {
	return &memRelationRepository{rows: map[[2]int64]int64{}}
}

func (m *memRelationRepository) Toggle(ctx context.Context, eventID, userID int64, now time.Time) (*domain.ToggleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.toggleErr != nil {
		return nil, m.toggleErr
	}
	key := [2]int64{eventID, userID}
	active := false
	if _, ok := m.rows[key]; ok {
		delete(m.rows, key)
	} else {
		m.seq++
		m.rows[key] = m.seq
		active = true
	}
	return &domain.ToggleResult{Total: m.countLocked(eventID), Active: active}, nil
}

func (m *memRelationRepository) countLocked(eventID int64) int {
	n := 0
	for k := range m.rows {
		if k[0] == eventID {
			n++
		}
	}
	return n
}

func (m *memRelationRepository) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[[2]int64{eventID, userID}]
	return ok, nil
}

func (m *memRelationRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countLocked(eventID), nil
}

func (m *memRelationRepository) ListEventIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	type row struct{ eventID, seq int64 }
	var rows []row
	for k, seq := range m.rows {
		if k[1] == userID {
			rows = append(rows, row{k[0], seq})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.eventID)
	}
	return ids, nil
}

type mockRoleRepository struct {
	roles map[int64][]*domain.Role
	err   error
}

func (m *mockRoleRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Role, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.roles[userID], nil
}

// recordingEmailService records every reminder and fails for configured addresses.
type recordingEmailService struct {
	mu      sync.Mutex
	sent    []*domain.EventReminderEmailData
	failFor map[string]error
}

func (r *recordingEmailService) SendEventReminder(ctx context.Context, data *domain.EventReminderEmailData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failFor[data.Email]; ok {
		return err
	}
	r.sent = append(r.sent, data)
	return nil
}

func (r *recordingEmailService) recipients() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, d := range r.sent {
		out = append(out, d.Email)
	}
	sort.Strings(out)
	return out
}
