package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventura/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	roleRepo       domain.RoleRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService for browsing and removing events.
func NewEventService(eventRepo domain.EventRepository, roleRepo domain.RoleRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		roleRepo:       roleRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, page domain.PaginationParams) ([]*domain.Event, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func validateFilter(f domain.EventFilter) error {
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, f.Status)
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("%w: min_price must not be negative", domain.ErrInvalidInput)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must not be negative", domain.ErrInvalidInput)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: min_price exceeds max_price", domain.ErrInvalidInput)
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return fmt.Errorf("%w: from is after to", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, fmt.Errorf("event id: %w", err)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes the event and its comments, likes, interests, reports and
// images. Only the organizer or an admin may delete.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, actorID int64) error {
	if err := domain.ValidateID(eventID); err != nil {
		return fmt.Errorf("event id: %w", err)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != actorID {
		admin, err := s.isAdmin(ctx, actorID)
		if err != nil {
			return err
		}
		if !admin {
			return domain.ErrForbidden
		}
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) isAdmin(ctx context.Context, userID int64) (bool, error) {
	roles, err := s.roleRepo.ListByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("list roles: %w", err)
	}
	for _, r := range roles {
		if r.Code == domain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}
