package auctionerrors

import (
	"errors"
	"fmt"
)

// Client-side precondition and validation errors. These never reach the
// network; they are resolved before a request is dispatched.
var (
	ErrAuthMissing   = errors.New("no credential available")
	ErrItemNotFound  = errors.New("item not found")
	ErrAuctionClosed = errors.New("auction is closed")
	ErrInvalidAmount = errors.New("invalid bid amount")
	ErrBidTooLow     = errors.New("bid amount too low")
)

// Backend and transport errors.
var (
	ErrAuthExpired        = errors.New("session expired")
	ErrNetworkUnavailable = errors.New("network unavailable")
)

// Dev backend repository and auth errors.
var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)

// ServerError is a non-2xx backend response that is neither a 401 nor a
// transport failure. Message carries the backend-provided message when the
// response body had one.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}
