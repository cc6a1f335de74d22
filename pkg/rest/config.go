package rest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lorenzquack/agora-rest/pkg/httpclient"
)

// DefaultBaseURL is the API root of a locally running agora node.
const DefaultBaseURL = "http://localhost:8080/api/"

// Config is fixed at construction and never changes for the helper's lifetime.
type Config struct {
	BaseURL string
	// BodyEncoding is httpclient.EncodingForm (default) or httpclient.EncodingJSON.
	BodyEncoding string
	// Headers are sent with every request.
	Headers map[string]string
}

func (c Config) sanitize() Config {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BodyEncoding = strings.ToLower(strings.TrimSpace(c.BodyEncoding))
	if c.BodyEncoding == "" {
		c.BodyEncoding = httpclient.EncodingForm
	}
	if len(c.Headers) > 0 {
		h := make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			h[k] = v
		}
		c.Headers = h
	}
	return c
}

// Validate reports whether c can build a Helper. Empty fields take their defaults.
func (c Config) Validate() error {
	return c.sanitize().validate()
}

func (c Config) validate() error {
	if err := ValidateBaseURL(c.BaseURL); err != nil {
		return err
	}
	switch c.BodyEncoding {
	case httpclient.EncodingForm, httpclient.EncodingJSON:
	default:
		return fmt.Errorf("unsupported body encoding %q", c.BodyEncoding)
	}
	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL that paths can be
// appended to, so it must not carry a query or fragment.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q has no host", raw)
	}
	if u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return fmt.Errorf("base url %q must not have a query or fragment", raw)
	}
	return nil
}

// resolve appends path to the base URL with exactly one slash between them.
func (c Config) resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return "", ErrInvalidPath
	}
	if strings.HasPrefix(path, "//") {
		return "", fmt.Errorf("%w: %q is not relative", ErrInvalidPath, path)
	}
	// Colons are legal in relative segments ("widgets:search"); only a full
	// http(s) URL addresses another host.
	if u, err := url.Parse(path); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return "", fmt.Errorf("%w: %q is not relative", ErrInvalidPath, path)
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/"), nil
}
