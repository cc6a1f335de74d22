package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseBody(t *testing.T) {
	body, err := parseBody([]string{"name=x", "note=a=b", "empty="})
	if err != nil {
		t.Fatalf("parseBody: %v", err)
	}
	if body["name"] != "x" || body["note"] != "a=b" || body["empty"] != "" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, err := parseBody([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for missing '='")
	}
	if _, err := parseBody([]string{"=x"}); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestPostCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Method != http.MethodPost || r.URL.Path != "/api/widgets" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("created " + r.PostForm.Get("name")))
	}))
	defer srv.Close()
	t.Setenv("BASE_URL", srv.URL+"/api/")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs([]string{"post", "/widgets", "name=x"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != "created x" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestBatchCommandReportsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			_, _ = w.Write([]byte("fine"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "requests.yaml")
	content := "requests:\n  - id: ok\n    path: /ok\n  - id: missing\n    path: /missing\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write requests file: %v", err)
	}
	t.Setenv("BASE_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs([]string{"batch", "--file", file})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for missing request")
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 result lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "ok\tGET /ok\t200\tfine") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "missing\tGET /missing\t404") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}
