package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRestyClientVerbsUseBaseURL(t *testing.T) {
	type seen struct {
		method, uri, contentType, body string
	}
	var (
		mu  sync.Mutex
		got []seen
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		defer mu.Unlock()
		got = append(got, seen{r.Method, r.URL.RequestURI(), r.Header.Get("Content-Type"), string(raw)})
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewRestyClient(srv.URL, 2*time.Second)
	ctx := context.Background()
	headers := map[string]string{"Content-Type": "application/json"}

	if _, err := c.Get(ctx, "api/heroes", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := c.Put(ctx, "api/heroes", map[string]any{"id": 1}, headers); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := c.Post(ctx, "api/heroes", map[string]any{"name": "N"}, headers); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, err := c.Delete(ctx, "api/heroes/3", headers); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 4 {
		t.Fatalf("expected 4 requests, got %d", len(got))
	}
	if got[0].method != http.MethodGet || got[0].uri != "/api/heroes" {
		t.Fatalf("unexpected GET %#v", got[0])
	}
	if got[1].method != http.MethodPut || got[1].contentType != "application/json" {
		t.Fatalf("unexpected PUT %#v", got[1])
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(got[2].body), &body); err != nil || body["name"] != "N" {
		t.Fatalf("unexpected POST body %q (err=%v)", got[2].body, err)
	}
	if got[3].method != http.MethodDelete || got[3].uri != "/api/heroes/3" {
		t.Fatalf("unexpected DELETE %#v", got[3])
	}
}

func TestRestyClientTransportFailureIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewRestyClient(url, time.Second)
	_, err := c.Get(context.Background(), "api/heroes", nil)
	if err == nil {
		t.Fatalf("expected error from closed server")
	}
	var httpErr *Error
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if httpErr.StatusCode != 0 || StatusText(err) != UnknownStatusText {
		t.Fatalf("unexpected error %#v", httpErr)
	}
}

func TestCheckResponseNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "hero missing", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewRestyClient(srv.URL, time.Second)
	resp, err := c.Get(context.Background(), "api/heroes/7", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	err = CheckResponse(http.MethodGet, "api/heroes/7", resp)
	if err == nil {
		t.Fatalf("expected error on 404")
	}
	if got := StatusText(err); got != "Not Found" {
		t.Fatalf("StatusText = %q", got)
	}
}

func TestStatusTextForForeignError(t *testing.T) {
	if got := StatusText(errors.New("boom")); got != UnknownStatusText {
		t.Fatalf("StatusText = %q", got)
	}
}

func TestReadBodySnippetTrimsAndTruncates(t *testing.T) {
	if got := ReadBodySnippet([]byte("  nope \n")); got != "nope" {
		t.Fatalf("snippet = %q", got)
	}
	long := strings.Repeat("x", 600)
	if got := ReadBodySnippet([]byte(long)); len(got) != 512 {
		t.Fatalf("snippet length = %d, want 512", len(got))
	}
}
