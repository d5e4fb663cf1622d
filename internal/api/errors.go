package api

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable indicates the interview service is down or
// unreachable (transport failure or 5xx).
type ErrServiceUnavailable struct {
	Err error
}

func (e *ErrServiceUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("interview service unavailable: %v", e.Err)
	}
	return "interview service unavailable"
}

func (e *ErrServiceUnavailable) Unwrap() error { return e.Err }

// APIError is a non-success HTTP response from the service, with the
// detail message from the body when one was provided.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("interview service returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("interview service returned %d", e.Status)
}

// IsUnavailable reports whether err represents a transport failure or a
// server-side error, i.e. something the user can only retry.
func IsUnavailable(err error) bool {
	var unavail *ErrServiceUnavailable
	return errors.As(err, &unavail)
}
