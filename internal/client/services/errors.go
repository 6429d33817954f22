package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFoundLocally = errors.New("server offline and user not found locally")
	ErrExistsLocally   = errors.New("user already exists locally, try logging in (offline mode)")
	ErrNotSignedIn     = errors.New("not signed in")
)

// AuthFailReason says why a login or signup was refused.
type AuthFailReason int

const (
	// ReasonServerRejected: the backend refused the request and the local
	// store had no match either.
	ReasonServerRejected AuthFailReason = iota + 1
	// ReasonNoLocalMatch: the backend was unreachable and the local store has
	// no user with these credentials.
	ReasonNoLocalMatch
	// ReasonExistsLocally: offline signup for a username the local store already has.
	ReasonExistsLocally
	// ReasonInvalidInput: the request failed validation before any call was made.
	ReasonInvalidInput
)

func (r AuthFailReason) String() string {
	switch r {
	case ReasonServerRejected:
		return "server rejected credentials"
	case ReasonNoLocalMatch:
		return "offline and no local match"
	case ReasonExistsLocally:
		return "exists locally"
	case ReasonInvalidInput:
		return "invalid input"
	}
	return "unknown"
}

// AuthFailedError is the only error login and signup return to the user.
type AuthFailedError struct {
	Reason AuthFailReason
	Err    error
}

func (e *AuthFailedError) Error() string {
	if e.Err == nil {
		return "authentication failed: " + e.Reason.String()
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthFailedError) Unwrap() error { return e.Err }
