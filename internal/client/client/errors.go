package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrQuotaExceeded = errors.New("ai quota exceeded")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrServer        = errors.New("server error")
	ErrBadResponse   = errors.New("bad response")
)

// StatusError is a non-2xx reply that has no more specific meaning.
// It matches ErrServer with errors.Is.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.Code)
	}
	return fmt.Sprintf("server error: status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrServer
}
