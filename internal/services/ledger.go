package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventura/internal/domain"
)

// ledger holds the toggle algorithm shared by the interest and like services.
type ledger struct {
	eventRepo      domain.EventRepository
	repo           domain.RelationRepository
	clock          domain.Clock
	contextTimeout time.Duration
}

func (l *ledger) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.contextTimeout)
}

func (l *ledger) toggle(ctx context.Context, eventID, userID int64) (*domain.ToggleResult, error) {
	if err := domain.ValidateID(eventID); err != nil {
		return nil, fmt.Errorf("event id: %w", err)
	}
	if err := domain.ValidateID(userID); err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	if _, err := l.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	res, err := l.repo.Toggle(ctx, eventID, userID, l.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("toggle: %w", err)
	}
	return res, nil
}

func (l *ledger) status(ctx context.Context, eventID, userID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	if err := domain.ValidateID(eventID); err != nil {
		return false, fmt.Errorf("event id: %w", err)
	}
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	ok, err := l.repo.Exists(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("check status: %w", err)
	}
	return ok, nil
}

func (l *ledger) total(ctx context.Context, eventID int64) (int, error) {
	if err := domain.ValidateID(eventID); err != nil {
		return 0, fmt.Errorf("event id: %w", err)
	}
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	n, err := l.repo.CountByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (l *ledger) listEvents(ctx context.Context, userID int64) ([]*domain.Event, error) {
	if err := domain.ValidateID(userID); err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	ids, err := l.repo.ListEventIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list event ids: %w", err)
	}
	events, err := l.eventRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
