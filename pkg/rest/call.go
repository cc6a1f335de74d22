package rest

import "net/http"

// Outcome is the resolved result of a call. Err is nil on success.
// Header is nil when no response was received.
type Outcome struct {
	Payload    []byte
	StatusCode int
	StatusText string
	Header     http.Header
	Err        *RequestFailed
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// SuccessFunc receives the raw response payload and status code of a 2xx response.
type SuccessFunc func(payload []byte, statusCode int)

// ErrorFunc receives the failure of a call. statusCode is zero when no
// response was received.
type ErrorFunc func(statusCode int, statusText string, err *RequestFailed)

// Call is a single-resolution handle on an issued request.
type Call struct {
	Method string
	Path   string

	done    chan struct{}
	outcome Outcome
}

func newCall(method, path string) *Call {
	return &Call{Method: method, Path: path, done: make(chan struct{})}
}

// Done is closed once the call has resolved and its continuation has returned.
func (c *Call) Done() <-chan struct{} { return c.done }

// Wait blocks until the call resolves and returns its outcome.
func (c *Call) Wait() Outcome {
	<-c.done
	return c.outcome
}

// Outcome returns the outcome without blocking. ok is false while the call is in flight.
func (c *Call) Outcome() (Outcome, bool) {
	select {
	case <-c.done:
		return c.outcome, true
	default:
		return Outcome{}, false
	}
}
