package strava

import (
	"errors"
	"fmt"
)

var ErrNotAuthenticated = errors.New("strava: client is not authenticated")

// AuthError reports a refresh-token exchange that did not yield a usable
// access token.
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("strava auth failed: %s", e.Err)
	}
	return fmt.Sprintf("strava auth failed (status %d): %s", e.StatusCode, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// DecodeError reports an activity whose route or fields could not be decoded.
type DecodeError struct {
	Activity string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s of %q: %s", e.Field, e.Activity, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
