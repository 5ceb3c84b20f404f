package services

import (
	"context"
	"time"

	"eventura/internal/domain"
)

type interestService struct {
	ledger
}

// NewInterestService creates an InterestService over the given repositories.
func NewInterestService(
	eventRepo domain.EventRepository,
	interestRepo domain.InterestRepository,
	clock domain.Clock,
	timeout time.Duration,
) domain.InterestService {
	return &interestService{ledger{
		eventRepo:      eventRepo,
		repo:           interestRepo,
		clock:          clock,
		contextTimeout: timeout,
	}}
}

func (s *interestService) ToggleInterest(ctx context.Context, eventID, userID int64) (*domain.ToggleResult, error) {
	return s.toggle(ctx, eventID, userID)
}

func (s *interestService) GetInterestStatus(ctx context.Context, eventID, userID int64) (bool, error) {
	return s.status(ctx, eventID, userID)
}

func (s *interestService) GetTotalInterests(ctx context.Context, eventID int64) (int, error) {
	return s.total(ctx, eventID)
}

// ListEventsOfInterest returns the user's events of interest ordered by event date, then id.
func (s *interestService) ListEventsOfInterest(ctx context.Context, userID int64) ([]*domain.Event, error) {
	return s.listEvents(ctx, userID)
}
