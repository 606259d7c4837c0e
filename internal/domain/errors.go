package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPage      = errors.New("page out of range")
	ErrInvalidPageSize  = errors.New("page size must be positive")
	ErrInvalidInterval  = errors.New("refresh interval must be positive")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrStaleResponse    = errors.New("stale response discarded")
)

// APIError is a gateway envelope whose code is not 200
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned code %d", e.Code)
	}
	return fmt.Sprintf("gateway returned code %d: %s", e.Code, e.Message)
}

// AuthError is returned when a login is rejected or cannot reach the gateway.
// Message is the text shown to the operator.
type AuthError struct {
	Err     error
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError builds an AuthError, preferring the gateway's message when there is one
func NewAuthError(err error) *AuthError {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &AuthError{Err: err, Message: apiErr.Message}
	}
	if err == nil {
		return &AuthError{Message: "login failed"}
	}
	return &AuthError{Err: err, Message: fmt.Sprintf("login failed: %v", err)}
}

// FetchError is returned when a list or detail fetch fails
type FetchError struct {
	Err error
	Op  string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
