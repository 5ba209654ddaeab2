package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthRequired indicates an action that needs a credential was attempted
	// without one. It is raised before any request is sent.
	ErrAuthRequired = errors.New("sign in required")

	// ErrEmptyComment indicates the user submitted empty or whitespace-only text.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrMalformedPayload indicates a response that is missing required fields.
	ErrMalformedPayload = errors.New("malformed payload")
)

// RequestError is returned for any failed API call. Status is zero when the
// request never got a response; Err then holds the transport error.
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		if e.Err == nil {
			return "network error"
		}
		return "network error: " + e.Err.Error()
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), body)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Unauthorized reports whether the server rejected the credential.
func (e *RequestError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsUnauthorized reports whether err is a RequestError rejecting the credential.
func IsUnauthorized(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Unauthorized()
}
