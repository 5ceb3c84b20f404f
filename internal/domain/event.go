package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusEnded     EventStatus = "ended"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusCancelled, EventStatusEnded:
		return true
	}
	return false
}

// Event represents a published event. Category, Organizer and Images are
// populated only by expanded reads.
// swagger:model Event
type Event struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	Location    string        `json:"location"`
	Price       float64       `json:"price"`
	Status      EventStatus   `json:"status"`
	CategoryID  int64         `json:"category_id"`
	OrganizerID int64         `json:"organizer_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Category    *Category     `json:"category,omitempty"`
	Organizer   *UserSummary  `json:"organizer,omitempty"`
	Images      []*EventImage `json:"images,omitempty"`
}

// IsFree reports whether the event has no admission price.
func (e *Event) IsFree() bool {
	return e.Price == 0
}

// Category groups events for browsing.
// swagger:model Category
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EventImage is an image attached to an event, ordered by Position.
// swagger:model EventImage
type EventImage struct {
	ID       int64  `json:"id"`
	EventID  int64  `json:"event_id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// EventFilter holds the optional conditions of an event listing.
// Zero values mean "no condition", except Status which defaults to active.
type EventFilter struct {
	CategoryID int64
	Status     EventStatus
	MinPrice   *float64
	MaxPrice   *float64
	FreeOnly   bool
	From       *time.Time
	To         *time.Time
	Search     string
}

// InterestedUser is a reminder recipient loaded together with an upcoming event.
type InterestedUser struct {
	UserID int64
	Email  string
	Name   string
}

// UpcomingEvent bundles an upcoming active event with its interested users.
type UpcomingEvent struct {
	Event      *Event
	Interested []*InterestedUser
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*Event, error)
	// ListByIDs returns the expanded events for ids, ordered by date then id. Unknown ids are ignored.
	ListByIDs(ctx context.Context, ids []int64) ([]*Event, error)
	List(ctx context.Context, filter EventFilter, page PaginationParams) ([]*Event, int, error)
	// ListUpcomingActive returns active events dated strictly after the given instant with their interested users.
	ListUpcomingActive(ctx context.Context, after time.Time) ([]*UpcomingEvent, error)
	// Delete removes the event and every dependent row in one transaction.
	Delete(ctx context.Context, id int64) error
}

// EventService defines catalogue operations on events.
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter, page PaginationParams) ([]*Event, int, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, actorID int64) error
}
