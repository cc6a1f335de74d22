package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient. No request timeout is configured.
func NewRestyClient() *RestyClient {
	return &RestyClient{client: newRestyBaseClient()}
}

// NewRestyClientFrom wraps an existing resty.Client, e.g. one with a custom transport.
func NewRestyClientFrom(c *resty.Client) *RestyClient {
	if c == nil {
		c = newRestyBaseClient()
	}
	return &RestyClient{client: c}
}

func newRestyBaseClient() *resty.Client {
	return resty.New()
}

// Do executes req and returns the raw response. A non-nil error means the
// request never produced an HTTP response.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	switch method {
	case http.MethodGet, http.MethodPost:
	default:
		return nil, fmt.Errorf("unsupported method %q", req.Method)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}

	if method == http.MethodPost {
		switch req.Encoding {
		case EncodingJSON:
			rr.SetHeader("Content-Type", "application/json")
			body := req.JSON
			if body == nil {
				body = map[string]any{}
			}
			rr.SetBody(body)
		case EncodingForm, "":
			rr.SetFormData(req.Form)
		default:
			return nil, fmt.Errorf("unsupported body encoding %q", req.Encoding)
		}
	}

	resp, err := rr.Execute(method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Status() string      { return r.resp.Status() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
