package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package requests loads named request definitions (YAML/JSON) for batch runs.

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Definition is a single named call relative to the configured base URL.
type Definition struct {
	ID     string         `json:"id" yaml:"id"`
	Method string         `json:"method" yaml:"method"`
	Path   string         `json:"path" yaml:"path"`
	Body   map[string]any `json:"body" yaml:"body"`
}

type catalogFile struct {
	Requests []Definition `json:"requests" yaml:"requests"`
}

// Catalog is an ordered, id-indexed set of definitions.
type Catalog struct {
	defs []Definition
	idx  map[string]Definition
}

// Load reads a catalog from a YAML or JSON file.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("requests file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requests file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read requests file: %w", err)
	}

	return Parse(raw, filepath.Ext(path))
}

// Parse decodes a catalog. ext selects the decoder; empty tries YAML then JSON.
func Parse(data []byte, ext string) (*Catalog, error) {
	f, err := parseFile(data, ext)
	if err != nil {
		return nil, err
	}
	if len(f.Requests) == 0 {
		return nil, errors.New("requests file contains no requests entries")
	}

	c := &Catalog{
		defs: make([]Definition, len(f.Requests)),
		idx:  make(map[string]Definition, len(f.Requests)),
	}
	for i := range f.Requests {
		d := sanitizeDefinition(f.Requests[i])
		if err := validateDefinition(d); err != nil {
			return nil, fmt.Errorf("requests[%d]: %w", i, err)
		}
		if _, exists := c.idx[d.ID]; exists {
			return nil, fmt.Errorf("duplicate request id %q", d.ID)
		}
		c.defs[i] = d
		c.idx[d.ID] = d
	}
	return c, nil
}

type unmarshalFn func([]byte, any) error

func parseFile(data []byte, ext string) (catalogFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var f catalogFile
		if err := d.fn(data, &f); err == nil {
			return f, nil
		}
	}

	return catalogFile{}, errors.New("requests file format not recognized (expected YAML or JSON)")
}

func sanitizeDefinition(d Definition) Definition {
	d.ID = strings.TrimSpace(d.ID)
	d.Method = strings.ToUpper(strings.TrimSpace(d.Method))
	d.Path = strings.TrimSpace(d.Path)
	if d.Method == "" {
		if len(d.Body) > 0 {
			d.Method = MethodPost
		} else {
			d.Method = MethodGet
		}
	}
	return d
}

func validateDefinition(d Definition) error {
	if d.ID == "" {
		return errors.New("id is required")
	}
	if d.Path == "" {
		return fmt.Errorf("path is required for request %q", d.ID)
	}
	switch d.Method {
	case MethodGet:
		if len(d.Body) > 0 {
			return fmt.Errorf("request %q: GET does not take a body", d.ID)
		}
	case MethodPost:
	default:
		return fmt.Errorf("request %q: unsupported method %q", d.ID, d.Method)
	}
	return nil
}

// All returns a copy of the definitions in file order.
func (c *Catalog) All() []Definition {
	if c == nil || len(c.defs) == 0 {
		return nil
	}
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// ByID returns the definition with the given id, if loaded.
func (c *Catalog) ByID(id string) (Definition, bool) {
	if c == nil {
		return Definition{}, false
	}
	d, ok := c.idx[strings.TrimSpace(id)]
	return d, ok
}

// Select returns the definitions for ids in the given order.
func (c *Catalog) Select(ids []string) ([]Definition, error) {
	if len(ids) == 0 {
		return c.All(), nil
	}
	out := make([]Definition, 0, len(ids))
	for _, id := range ids {
		d, ok := c.ByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown request id %q", id)
		}
		out = append(out, d)
	}
	return out, nil
}
