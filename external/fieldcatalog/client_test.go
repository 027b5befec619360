package fieldcatalog

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gameswap/gameswap/internal/domain/field"
	"github.com/gameswap/gameswap/internal/platform/logging"
	"github.com/gameswap/gameswap/internal/platform/resilience"
	"github.com/gameswap/gameswap/internal/usecase"
)

func newTestClient(srv *httptest.Server, maxRetries int) *Client {
	return NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		APIKey:     "catalog-key",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
	})
}

func TestClientGetByRef_ParsesResponse(t *testing.T) {
	var gotPath, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"ref":"turf","park":"gunston","name":"Gunston Turf","status":"Active"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, 0)

	got, found, err := client.GetByRef(t.Context(), "arlington-girls-softball", "gunston/turf")
	if err != nil {
		t.Fatalf("GetByRef() error = %v", err)
	}
	if !found {
		t.Fatal("GetByRef() found = false, want true")
	}
	if gotPath != "/leagues/arlington-girls-softball/fields/gunston%2Fturf" {
		t.Fatalf("request path = %q", gotPath)
	}
	if gotAPIKey != "catalog-key" {
		t.Fatalf("X-Api-Key = %q, want %q", gotAPIKey, "catalog-key")
	}
	if got.LeagueID != "arlington-girls-softball" || got.Ref != "turf" || got.Park != "gunston" {
		t.Fatalf("field = %+v", got)
	}
	if got.Status != field.StatusActive {
		t.Fatalf("field status = %q, want %q", got.Status, field.StatusActive)
	}
}

func TestClientGetByRef_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such field", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv, 2)

	got, found, err := client.GetByRef(t.Context(), "arlington-girls-softball", "missing")
	if err != nil {
		t.Fatalf("GetByRef() error = %v", err)
	}
	if found {
		t.Fatalf("GetByRef() found = true for missing ref, field = %+v", got)
	}
}

func TestClientGetByRef_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "catalog restarting", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"ref":"turf","park":"gunston","name":"Gunston Turf","status":"Active"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, 1)

	got, found, err := client.GetByRef(t.Context(), "arlington-girls-softball", "turf")
	if err != nil {
		t.Fatalf("GetByRef() error = %v", err)
	}
	if !found {
		t.Fatal("GetByRef() found = false, want true")
	}
	if got.Ref != "turf" {
		t.Fatalf("field ref = %q, want %q", got.Ref, "turf")
	}
	if n := calls.Load(); n != 2 {
		t.Fatalf("server calls = %d, want 2", n)
	}
}

func TestClientGetByRef_PermanentStatusDoesNotRetry(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad league", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := newTestClient(srv, 3)

	_, _, err := client.GetByRef(t.Context(), "arlington-girls-softball", "turf")
	if err == nil {
		t.Fatal("GetByRef() error = nil, want non-nil")
	}
	if errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("GetByRef() error = %v, want non-transient failure", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("server calls = %d, want 1", n)
	}
}

func TestClientGetByRef_CircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "catalog down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, _, err := client.GetByRef(t.Context(), "arlington-girls-softball", "turf"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("first GetByRef() error = %v, want ErrDependencyUnavailable", err)
	}
	if _, _, err := client.GetByRef(t.Context(), "arlington-girls-softball", "turf"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("second GetByRef() error = %v, want ErrDependencyUnavailable", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("server calls = %d, want 1 after breaker opened", n)
	}
}

func TestClientList_ParsesResponseAndNormalizesStatus(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":[
			{"ref":"gunston/turf","park":"gunston","name":"Gunston Turf","status":"Active"},
			{"ref":"tuckahoe/lower","park":"tuckahoe","name":"Tuckahoe Lower","status":"UnderRenovation"}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, 0)

	fields, err := client.List(t.Context(), "arlington-girls-softball")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotPath != "/leagues/arlington-girls-softball/fields" {
		t.Fatalf("request path = %q", gotPath)
	}
	if len(fields) != 2 {
		t.Fatalf("List() returned %d fields, want 2", len(fields))
	}
	if fields[0].Status != field.StatusActive {
		t.Fatalf("fields[0].Status = %q, want %q", fields[0].Status, field.StatusActive)
	}
	if fields[1].Status != field.StatusInactive {
		t.Fatalf("fields[1].Status = %q, want %q for unknown upstream status", fields[1].Status, field.StatusInactive)
	}
}

func TestClientGetByRef_ValidatesArguments(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://catalog.invalid", Logger: logging.NewNop()})

	if _, _, err := client.GetByRef(t.Context(), "", "turf"); err == nil {
		t.Fatal("GetByRef() with empty league id: error = nil, want non-nil")
	}
	if _, _, err := client.GetByRef(t.Context(), "arlington-girls-softball", "  "); err == nil {
		t.Fatal("GetByRef() with blank ref: error = nil, want non-nil")
	}
}
