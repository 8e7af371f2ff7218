package service

import "fmt"

// ValidationError rejects a request locally, before any network I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AuthError is a failed login, or a login that returned no token.
type AuthError struct {
	Status int
	Body   string
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason != "" {
		return "authentication failed: " + e.Reason
	}
	return fmt.Sprintf("authentication failed: http %d: %s", e.Status, e.Body)
}

// RequestError is a non-2xx backend response that re-authentication could not
// recover.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("api request failed: http %d: %s", e.Status, e.Body)
}
