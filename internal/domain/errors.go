package domain

import "errors"

// Sentinel errors shared by repositories, services and controllers.
var (
	// ErrNotFound is returned when an event, user or relationship row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the actor is neither the owner nor an admin.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned for malformed input such as a non-positive id.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDispatch wraps failures of the outbound mail provider.
	ErrDispatch = errors.New("email dispatch failed")
)

// ValidateID rejects non-positive identifiers with ErrInvalidInput.
func ValidateID(id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return nil
}
