package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flex_reviews/internal/domain"
)

// ---- fakes ----

var fixedNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func ptr[T any](v T) *T { return &v }

type fakeHostaway struct {
	reviews []domain.HostawayReview
	err       error
	calls     int
	byIDCalls int
}

func (f *fakeHostaway) FetchReviews(ctx context.Context, q domain.HostawayQuery) ([]domain.HostawayReview, error) {
	f.calls++
	return f.reviews, f.err
}

func (f *fakeHostaway) FetchReviewByID(ctx context.Context, id int64) (domain.HostawayReview, error) {
	f.byIDCalls++
	if f.err != nil {
		return domain.HostawayReview{}, f.err
	}
	for _, r := range f.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.HostawayReview{}, domain.ErrNotFound
}

type fakePlaces struct {
	reviews []domain.PlaceReview
	found   []domain.PlaceDetails
	err     error
}

func (f *fakePlaces) SearchPlace(ctx context.Context, query string) ([]domain.PlaceDetails, error) {
	return f.found, f.err
}

func (f *fakePlaces) GetPlaceReviews(ctx context.Context, placeID string) ([]domain.PlaceReview, error) {
	return f.reviews, f.err
}

type fakeCatalog struct{ props []domain.Property }

func (f *fakeCatalog) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return f.props, nil
}

func (f *fakeCatalog) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	for _, p := range f.props {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Property{}, fmt.Errorf("property %q: %w", id, domain.ErrNotFound)
}

type fakeStore struct {
	mu   sync.Mutex
	m    map[domain.ReviewKey]bool
	fail map[int64]bool
}

func (s *fakeStore) SetApproval(ctx context.Context, key domain.ReviewKey, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[key.ID] {
		return errors.New("store unavailable")
	}
	if s.m == nil {
		s.m = map[domain.ReviewKey]bool{}
	}
	s.m[key] = approved
	return nil
}

func (s *fakeStore) Approvals(ctx context.Context) (map[domain.ReviewKey]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.ReviewKey]bool, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out, nil
}

type fakeCache struct {
	store  map[string][]domain.HostawayReview
	sets   int
	getErr error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*(dst.(*[]domain.HostawayReview)) = v
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]domain.HostawayReview{}
	}
	c.store[key] = v.([]domain.HostawayReview)
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// ---- fixtures ----

func cats(pairs ...any) []domain.CategoryRating {
	out := make([]domain.CategoryRating, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.CategoryRating{Category: pairs[i].(string), Rating: float64(pairs[i+1].(int))})
	}
	return out
}

func review(id int64, ch domain.Channel, avg float64, at time.Time) domain.Review {
	return domain.Review{
		ID:                    id,
		Channel:               ch,
		Type:                  domain.TypeGuestToHost,
		Status:                domain.StatusPublished,
		AverageCategoryRating: avg,
		SubmittedAt:           at,
		PropertyID:            "p",
	}
}

func ids(rs []domain.Review) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
