package rest

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath is the cause reported when a call path is empty or absolute.
	ErrInvalidPath = errors.New("invalid request path")
	// ErrUnsupportedBody is the cause reported when a body value is not a primitive.
	ErrUnsupportedBody = errors.New("unsupported body value")
	// ErrStatus is the cause reported for responses outside the 2xx range.
	ErrStatus = errors.New("unsuccessful response status")
)

// RequestFailed describes a call that did not produce a 2xx response.
// StatusCode is zero when no response was received.
type RequestFailed struct {
	Method     string
	URL        string
	StatusCode int
	StatusText string
	Cause      error
}

func (e *RequestFailed) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d %s", e.Method, e.URL, e.StatusCode, e.StatusText)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Cause)
}

func (e *RequestFailed) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
