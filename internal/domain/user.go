package domain

import (
	"context"
	"slices"
	"time"
)

// RoleAdmin is the role code that grants access to any event.
const RoleAdmin = "admin"

// User represents a registered user
// swagger:model User
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is the public projection of a user embedded in events.
// swagger:model UserSummary
type UserSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Role represents an application role (e.g. admin, organizer)
type Role struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

// HasRole reports whether the principal carries the given role code.
func (p *Principal) HasRole(code string) bool {
	return p != nil && slices.Contains(p.Roles, code)
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// RoleRepository defines the interface for role storage
type RoleRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]*Role, error)
}
