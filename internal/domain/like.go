package domain

import (
	"context"
	"time"
)

// Like is a user's approval mark on an event. It has no notification semantics.
type Like struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeRepository stores likes.
type LikeRepository interface {
	RelationRepository
}

// LikeService exposes the like ledger.
type LikeService interface {
	ToggleLike(ctx context.Context, eventID, userID int64) (*ToggleResult, error)
	GetLikeStatus(ctx context.Context, eventID, userID int64) (bool, error)
	GetTotalLikes(ctx context.Context, eventID int64) (int, error)
	ListLikedEvents(ctx context.Context, userID int64) ([]*Event, error)
}
