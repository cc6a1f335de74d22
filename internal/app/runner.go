package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/lorenzquack/agora-rest/internal/config"
	"github.com/lorenzquack/agora-rest/internal/logger"
	"github.com/lorenzquack/agora-rest/pkg/httpclient"
	"github.com/lorenzquack/agora-rest/pkg/requests"
	"github.com/lorenzquack/agora-rest/pkg/rest"
)

// Result pairs a request definition with its resolved outcome.
type Result struct {
	Request  requests.Definition
	Outcome  rest.Outcome
	Duration time.Duration
}

// Runner issues request definitions through a rest.Helper.
type Runner struct {
	helper *rest.Helper
	log    logger.Logger
}

// NewRunner builds a runner from config. client may be nil to use resty.
func NewRunner(cfg *config.Config, client httpclient.Client, log logger.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	helper, err := rest.New(rest.Config{
		BaseURL:      cfg.BaseURL,
		BodyEncoding: cfg.BodyEncoding,
	}, client, log)
	if err != nil {
		return nil, fmt.Errorf("init rest helper: %w", err)
	}

	log.InfoObj("rest helper initialized", "helper_config", map[string]any{
		"base_url":      helper.BaseURL(),
		"body_encoding": cfg.BodyEncoding,
	})

	return &Runner{helper: helper, log: log}, nil
}

// Run issues every definition at once and waits for all of them. Results are
// returned in definition order regardless of completion order. The returned
// error joins every failed request.
func (r *Runner) Run(defs []requests.Definition) ([]Result, error) {
	if r == nil || r.helper == nil {
		return nil, fmt.Errorf("runner is not initialized")
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("no requests to run")
	}

	start := time.Now()
	r.log.InfoObj("batch started", "batch_meta", map[string]any{
		"requests_count": len(defs),
	})

	results := make([]Result, len(defs))
	calls := make([]*rest.Call, len(defs))
	for i, d := range defs {
		i, d := i, d
		issued := time.Now()
		onSuccess := func(payload []byte, status int) {
			results[i].Duration = time.Since(issued)
			r.log.InfoObj("request succeeded", "request_result", map[string]any{
				"request_id":  d.ID,
				"method":      d.Method,
				"path":        d.Path,
				"status_code": status,
				"bytes":       len(payload),
			})
		}
		onError := func(status int, statusText string, err *rest.RequestFailed) {
			results[i].Duration = time.Since(issued)
			r.log.ErrorObj("request failed", "request_error", map[string]any{
				"request_id":  d.ID,
				"method":      d.Method,
				"path":        d.Path,
				"status_code": status,
				"status_text": statusText,
				"error":       err.Error(),
			})
		}
		calls[i] = r.issue(d, onSuccess, onError)
	}

	var errs []error
	for i, c := range calls {
		results[i].Request = defs[i]
		results[i].Outcome = c.Wait()
		if !results[i].Outcome.OK() {
			errs = append(errs, fmt.Errorf("request %s: %w", defs[i].ID, results[i].Outcome.Err))
		}
	}

	r.log.InfoObj("batch completed", "batch_meta", map[string]any{
		"requests_count": len(defs),
		"failed_count":   len(errs),
		"elapsed_ms":     time.Since(start).Milliseconds(),
	})

	if len(errs) > 0 {
		return results, errors.Join(errs...)
	}
	return results, nil
}

// Do issues a single definition and waits for it.
func (r *Runner) Do(d requests.Definition) (Result, error) {
	results, err := r.Run([]requests.Definition{d})
	if len(results) == 0 {
		return Result{Request: d}, err
	}
	return results[0], err
}

func (r *Runner) issue(d requests.Definition, onSuccess rest.SuccessFunc, onError rest.ErrorFunc) *rest.Call {
	if d.Method == requests.MethodPost {
		return r.helper.Post(d.Path, rest.Body(d.Body), onSuccess, onError)
	}
	return r.helper.Get(d.Path, onSuccess, onError)
}
