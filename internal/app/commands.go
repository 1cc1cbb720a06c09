package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"flex_reviews/internal/domain"
)

// ApprovalService flips the public-display flag. Decisions are recorded in the
// approval store and layered over the next load; nothing else is mutated.
type ApprovalService struct {
	reviews *ReviewService
	store   domain.ApprovalStore
	workers int
}

func NewApprovalService(r *ReviewService, store domain.ApprovalStore, workers int) *ApprovalService {
	if workers <= 0 {
		workers = 4
	}
	return &ApprovalService{reviews: r, store: store, workers: workers}
}

type ApprovalResult struct {
	domain.ReviewKey
	IsApproved bool   `json:"isApproved"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

func (s *ApprovalService) Approve(ctx context.Context, key domain.ReviewKey, approved bool) error {
	if !key.Channel.Valid() {
		return fmt.Errorf("channel %q: %w", key.Channel, domain.ErrValidation)
	}
	if _, err := s.reviews.GetReview(ctx, key); err != nil {
		return err
	}
	if err := s.store.SetApproval(ctx, key, approved); err != nil {
		return fmt.Errorf("set approval %s/%d: %w", key.Channel, key.ID, err)
	}
	log.Info().Str("channel", string(key.Channel)).Int64("review_id", key.ID).Bool("approved", approved).Msg("approval updated")
	return nil
}

// BulkApprove issues one independent update per key against a single snapshot.
// Failures are reported per key and never roll back the others.
func (s *ApprovalService) BulkApprove(ctx context.Context, keys []domain.ReviewKey, approved bool) ([]ApprovalResult, error) {
	reviews, err := s.reviews.LoadReviews(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[domain.ReviewKey]struct{}, len(reviews))
	for _, r := range reviews {
		known[r.Key()] = struct{}{}
	}

	results := make([]ApprovalResult, len(keys))
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup

	for i, key := range keys {
		results[i] = ApprovalResult{ReviewKey: key, IsApproved: approved}
		if !key.Channel.Valid() {
			results[i].Error = fmt.Errorf("channel %q: %w", key.Channel, domain.ErrValidation).Error()
			continue
		}
		if _, ok := known[key]; !ok {
			results[i].Error = fmt.Errorf("review %s/%d: %w", key.Channel, key.ID, domain.ErrNotFound).Error()
			continue
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			results[i].Error = err.Error()
			continue
		}
		wg.Add(1)
		go func(i int, key domain.ReviewKey) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.store.SetApproval(ctx, key, approved); err != nil {
				log.Warn().Int64("review_id", key.ID).Err(err).Msg("bulk approval item failed")
				results[i].Error = err.Error()
				return
			}
			results[i].OK = true
		}(i, key)
	}

	wg.Wait()
	return results, nil
}
