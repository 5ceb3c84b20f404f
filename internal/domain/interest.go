package domain

import (
	"context"
	"time"
)

// Interest is a user's bookmark on an event; it also subscribes the user to reminders.
// At most one Interest exists per (event, user).
type Interest struct {
	ID                   int64     `json:"id"`
	EventID              int64     `json:"event_id"`
	UserID               int64     `json:"user_id"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
}

// ToggleResult is the outcome of a toggle: the relationship count for the event
// after the mutation and whether the caller's row now exists.
type ToggleResult struct {
	Total  int
	Active bool
}

// RelationRepository is the storage contract shared by interests and likes.
type RelationRepository interface {
	// Toggle deletes the (event, user) row if present, inserts it otherwise, and
	// recounts the event's rows, atomically. A missing event yields ErrNotFound.
	Toggle(ctx context.Context, eventID, userID int64, now time.Time) (*ToggleResult, error)
	Exists(ctx context.Context, eventID, userID int64) (bool, error)
	CountByEvent(ctx context.Context, eventID int64) (int, error)
	// ListEventIDsByUser returns the ids of events the user is related to, in insertion order.
	ListEventIDsByUser(ctx context.Context, userID int64) ([]int64, error)
}

// InterestRepository stores interests.
type InterestRepository interface {
	RelationRepository
}

// InterestService exposes the interest ledger.
type InterestService interface {
	ToggleInterest(ctx context.Context, eventID, userID int64) (*ToggleResult, error)
	// GetInterestStatus returns false for an unauthenticated caller (userID 0).
	GetInterestStatus(ctx context.Context, eventID, userID int64) (bool, error)
	GetTotalInterests(ctx context.Context, eventID int64) (int, error)
	ListEventsOfInterest(ctx context.Context, userID int64) ([]*Event, error)
}
