package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samvad-hq/hero-client/internal/domain"
	"github.com/samvad-hq/hero-client/internal/storage"
)

// useTempStore points the default bbolt message store at a per-test file.
func useTempStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.db")
	t.Setenv("BBOLT_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	return path
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := run(args, &out, &out); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return out.String()
}

func heroesAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/heroes" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.Hero{{ID: 1, Name: "A"}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListCommandPrintsHeroes(t *testing.T) {
	useTempStore(t)
	srv := heroesAPI(t)

	out := runCLI(t, "--base-url", srv.URL, "list")

	var got []domain.Hero
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("unexpected heroes %#v", got)
	}
}

func TestMessagesCommandShowsEarlierRuns(t *testing.T) {
	useTempStore(t)
	srv := heroesAPI(t)

	runCLI(t, "--base-url", srv.URL, "list")
	runCLI(t, "--base-url", srv.URL, "get", "7")

	out := runCLI(t, "messages")
	want := "HeroService: Got All The Heroes!\nHeroService: OPERATION: getHero id=7. ||| STATUS TEXT: Not Found\n"
	if out != want {
		t.Fatalf("messages output = %q, want %q", out, want)
	}

	runCLI(t, "messages", "--clear")
	if out := runCLI(t, "messages"); out != "" {
		t.Fatalf("expected empty log after --clear, got %q", out)
	}
}

func TestGetCommandPrintsNullOnFailure(t *testing.T) {
	useTempStore(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	out := runCLI(t, "--base-url", srv.URL, "get", "7")
	if strings.TrimSpace(out) != "null" {
		t.Fatalf("expected null output, got %q", out)
	}
}

func TestFailedCommandReleasesStore(t *testing.T) {
	path := useTempStore(t)

	var out bytes.Buffer
	if err := run([]string{"--base-url", "http://localhost:1", "get", "seven"}, &out, &out); err == nil {
		t.Fatalf("expected error for non-numeric id")
	}

	// bbolt holds an exclusive file lock while open; reopening only succeeds
	// if the failed run closed its store.
	store, err := storage.NewStore("bbolt", path, storage.Options{})
	if err != nil {
		t.Fatalf("reopen message store: %v", err)
	}
	store.Close()
}
