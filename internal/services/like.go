package services

import (
	"context"
	"time"

	"eventura/internal/domain"
)

type likeService struct {
	ledger
}

// NewLikeService creates a LikeService over the given repositories.
func NewLikeService(
	eventRepo domain.EventRepository,
	likeRepo domain.LikeRepository,
	clock domain.Clock,
	timeout time.Duration,
) domain.LikeService {
	return &likeService{ledger{
		eventRepo:      eventRepo,
		repo:           likeRepo,
		clock:          clock,
		contextTimeout: timeout,
	}}
}

func (s *likeService) ToggleLike(ctx context.Context, eventID, userID int64) (*domain.ToggleResult, error) {
	return s.toggle(ctx, eventID, userID)
}

func (s *likeService) GetLikeStatus(ctx context.Context, eventID, userID int64) (bool, error) {
	return s.status(ctx, eventID, userID)
}

func (s *likeService) GetTotalLikes(ctx context.Context, eventID int64) (int, error) {
	return s.total(ctx, eventID)
}

func (s *likeService) ListLikedEvents(ctx context.Context, userID int64) ([]*domain.Event, error) {
	return s.listEvents(ctx, userID)
}
