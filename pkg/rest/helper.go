// Package rest issues asynchronous GET and POST calls against a fixed API
// root and reports each outcome to exactly one continuation.
//
// Continuations run on the goroutine that performed the request. Callers that
// share state between continuations must synchronize it themselves.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/lorenzquack/agora-rest/pkg/httpclient"
)

// Helper issues requests relative to a configured base URL.
type Helper struct {
	cfg    Config
	client httpclient.Client
	log    Logger
	wg     sync.WaitGroup
}

// New builds a Helper. A nil client falls back to a resty-backed client.
func New(cfg Config, client httpclient.Client, log Logger) (*Helper, error) {
	cfg = cfg.sanitize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if client == nil {
		client = httpclient.NewRestyClient()
	}
	return &Helper{
		cfg:    cfg,
		client: client,
		log:    ensureLogger(log),
	}, nil
}

// BaseURL returns the API root every path is resolved against.
func (h *Helper) BaseURL() string { return h.cfg.BaseURL }

// Get schedules a GET to BaseURL + path and returns immediately.
func (h *Helper) Get(path string, onSuccess SuccessFunc, onError ErrorFunc) *Call {
	return h.dispatch(http.MethodGet, path, nil, onSuccess, onError)
}

// Post schedules a POST of body to BaseURL + path and returns immediately.
func (h *Helper) Post(path string, body Body, onSuccess SuccessFunc, onError ErrorFunc) *Call {
	return h.dispatch(http.MethodPost, path, body, onSuccess, onError)
}

// Wait blocks until every call issued so far has resolved.
func (h *Helper) Wait() { h.wg.Wait() }

func (h *Helper) dispatch(method, path string, body Body, onSuccess SuccessFunc, onError ErrorFunc) *Call {
	call := newCall(method, path)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer close(call.done)

		call.outcome = h.execute(method, path, body)
		h.deliver(call.outcome, onSuccess, onError)
	}()
	return call
}

// deliver invokes exactly one continuation for out.
func (h *Helper) deliver(out Outcome, onSuccess SuccessFunc, onError ErrorFunc) {
	if out.OK() {
		if onSuccess != nil {
			onSuccess(out.Payload, out.StatusCode)
		}
		return
	}
	if onError != nil {
		onError(out.StatusCode, out.StatusText, out.Err)
	}
}

func (h *Helper) execute(method, path string, body Body) Outcome {
	target, err := h.cfg.resolve(path)
	if err != nil {
		return h.failure(method, h.cfg.BaseURL+path, nil, err)
	}

	req := httpclient.Request{
		Method:   method,
		URL:      target,
		Headers:  h.cfg.Headers,
		Encoding: h.cfg.BodyEncoding,
	}
	if method == http.MethodPost {
		if err := h.encodeBody(&req, body); err != nil {
			return h.failure(method, target, nil, err)
		}
	}

	h.log.DebugObj("rest request issued", "request", map[string]any{
		"method": method,
		"url":    target,
	})

	resp, err := h.client.Do(context.Background(), req)
	if err != nil {
		return h.failure(method, target, nil, err)
	}
	if resp == nil {
		return h.failure(method, target, nil, errors.New("transport returned no response"))
	}
	code := resp.StatusCode()
	if code < 200 || code > 299 {
		return h.failure(method, target, resp, fmt.Errorf("%w: %d", ErrStatus, code))
	}

	h.log.DebugObj("rest request succeeded", "response", map[string]any{
		"method":      method,
		"url":         target,
		"status_code": code,
		"bytes":       len(resp.Body()),
	})
	return Outcome{
		Payload:    resp.Body(),
		StatusCode: code,
		StatusText: statusText(resp),
		Header:     resp.Header(),
	}
}

// statusText returns the reason phrase the server sent, falling back to the
// standard text for the code.
func statusText(resp httpclient.Response) string {
	code := resp.StatusCode()
	text := strings.TrimSpace(resp.Status())
	if prefix := strconv.Itoa(code); strings.HasPrefix(text, prefix) {
		text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}
	if text == "" {
		text = http.StatusText(code)
	}
	return text
}

func (h *Helper) encodeBody(req *httpclient.Request, body Body) error {
	switch h.cfg.BodyEncoding {
	case httpclient.EncodingJSON:
		values, err := body.jsonValues()
		if err != nil {
			return err
		}
		req.JSON = values
	default:
		values, err := body.formValues()
		if err != nil {
			return err
		}
		req.Form = values
	}
	return nil
}

func (h *Helper) failure(method, target string, resp httpclient.Response, cause error) Outcome {
	rf := &RequestFailed{Method: method, URL: target, Cause: cause}
	var payload []byte
	var header http.Header
	if resp != nil {
		rf.StatusCode = resp.StatusCode()
		rf.StatusText = statusText(resp)
		payload = resp.Body()
		header = resp.Header()
	}

	h.log.WarnObj("rest request failed", "request_error", map[string]any{
		"method":      method,
		"url":         target,
		"status_code": rf.StatusCode,
		"error":       cause.Error(),
	})
	return Outcome{
		Payload:    payload,
		StatusCode: rf.StatusCode,
		StatusText: rf.StatusText,
		Header:     header,
		Err:        rf,
	}
}
