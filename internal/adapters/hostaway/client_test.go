package hostaway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/domain"
)

func success(w http.ResponseWriter, result any) {
	w.WriteHeader(200)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "result": result})
}

func mustMock(t *testing.T) *hostaway.Mock {
	t.Helper()
	m, err := hostaway.NewMock()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return m
}

func TestClient_FetchReviews_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" || r.Header.Get("X-Account-ID") != "61148" {
			w.WriteHeader(401)
			return
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			success(w, []map[string]any{{"id": 1, "type": "guest-to-host", "status": "published", "listingName": "A - 1 Test Road"}})
		}
	}))
	defer ts.Close()

	cl := hostaway.New(ts.URL, "61148", "test-key", 100, nil) // high RPS for tests
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got, err := cl.FetchReviews(ctx, domain.HostawayQuery{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 || got[0].ListingName != "A - 1 Test Road" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_FetchReviews_SendsQuery(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		success(w, []any{})
	}))
	defer ts.Close()

	cl := hostaway.New(ts.URL, "61148", "test-key", 100, nil)
	_, err := cl.FetchReviews(context.Background(), domain.HostawayQuery{Limit: 10, Offset: 20, Status: "published"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotQuery != "limit=10&offset=20&status=published" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
}

func TestClient_NoCredentials_ServesMock(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	cl := hostaway.New(ts.URL, "", "", 100, mustMock(t))
	got, err := cl.FetchReviews(context.Background(), domain.HostawayQuery{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected the 12 mock reviews, got %d", len(got))
	}
	if hits != 0 {
		t.Fatalf("expected no remote calls without credentials, got %d", hits)
	}
}

func TestClient_RemoteError_FallsBackToMock(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	cl := hostaway.New(ts.URL, "61148", "test-key", 100, mustMock(t))
	got, err := cl.FetchReviews(context.Background(), domain.HostawayQuery{Status: "pending"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7461 {
		t.Fatalf("expected the single pending mock review, got %+v", got)
	}
}

func TestClient_BadEnvelope_WithoutFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"status":"fail"}`))
	}))
	defer ts.Close()

	cl := hostaway.New(ts.URL, "61148", "test-key", 100, nil)
	_, err := cl.FetchReviews(context.Background(), domain.HostawayQuery{})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !errors.Is(err, hostaway.ErrBadEnvelope) {
		t.Fatalf("expected the envelope error to be wrapped, got %v", err)
	}
}

func TestClient_FetchReviewByID_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl := hostaway.New(ts.URL, "61148", "test-key", 100, mustMock(t))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := cl.FetchReviewByID(ctx, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for 404, got %v", err)
	}
}

func TestMock_FetchReviews_FiltersAndPages(t *testing.T) {
	m := mustMock(t)
	ctx := context.Background()

	hostToGuest, _ := m.FetchReviews(ctx, domain.HostawayQuery{Type: "host-to-guest"})
	if len(hostToGuest) != 3 {
		t.Fatalf("expected 3 host-to-guest reviews, got %d", len(hostToGuest))
	}

	page, _ := m.FetchReviews(ctx, domain.HostawayQuery{Limit: 5, Offset: 10})
	if len(page) != 2 || page[0].ID != 7463 {
		t.Fatalf("unexpected tail page: %+v", page)
	}

	past, _ := m.FetchReviews(ctx, domain.HostawayQuery{Offset: 50})
	if len(past) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(past))
	}
}

func TestMock_FetchReviewByID(t *testing.T) {
	m := mustMock(t)
	r, err := m.FetchReviewByID(context.Background(), 7455)
	if err != nil || r.GuestName == "" {
		t.Fatalf("unexpected result: %+v, %v", r, err)
	}
	if _, err := m.FetchReviewByID(context.Background(), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
