package app

import "flex_reviews/internal/domain"

// MergeReviews concatenates existing and incoming and drops later duplicates,
// so the first-seen entry wins. Identity is (channel, id): a google review whose
// synthesized id equals a hostaway id is a different review and both are kept.
func MergeReviews(existing, incoming []domain.Review) []domain.Review {
	out := make([]domain.Review, 0, len(existing)+len(incoming))
	seen := make(map[domain.ReviewKey]struct{}, len(existing)+len(incoming))
	for _, batch := range [][]domain.Review{existing, incoming} {
		for _, r := range batch {
			k := r.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
