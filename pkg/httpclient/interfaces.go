package httpclient

import (
	"context"
	"net/http"
)

// Body encodings understood by the transport.
const (
	EncodingForm = "form"
	EncodingJSON = "json"
)

// Request is a single outbound call. URL must be absolute.
type Request struct {
	Method   string
	URL      string
	Headers  map[string]string
	Form     map[string]string
	JSON     map[string]any
	Encoding string
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
