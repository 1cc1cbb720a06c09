package app

import (
	"time"

	"flex_reviews/internal/domain"
)

// ComputeMetrics derives PropertyPerformanceMetrics from reviews already narrowed
// to one property. Labels outside the six metric categories are skipped.
// Overall averages only the categories that received at least one rating.
func ComputeMetrics(reviews []domain.Review) domain.PropertyPerformanceMetrics {
	byCategory := make(map[domain.Category][]domain.CategoryRating, len(domain.MetricCategories))
	for _, r := range reviews {
		for _, cr := range r.ReviewCategories {
			c, ok := domain.ParseCategory(cr.Category)
			if !ok {
				continue
			}
			byCategory[c] = append(byCategory[c], cr)
		}
	}

	var m domain.PropertyPerformanceMetrics
	nonZero := make([]float64, 0, len(domain.MetricCategories))
	for _, c := range domain.MetricCategories {
		avg := domain.AverageRating(byCategory[c])
		*m.Field(c) = avg
		if avg > 0 {
			nonZero = append(nonZero, avg)
		}
	}
	m.Overall = domain.Mean(nonZero)
	return m
}

// GroupByProperty buckets reviews by PropertyID, preserving input order in each bucket.
func GroupByProperty(reviews []domain.Review) map[string][]domain.Review {
	out := make(map[string][]domain.Review)
	for _, r := range reviews {
		out[r.PropertyID] = append(out[r.PropertyID], r)
	}
	return out
}

// BuildPropertyView attaches review-derived aggregates to a catalog property.
func BuildPropertyView(p domain.Property, reviews []domain.Review, includeMetrics bool) domain.PropertyView {
	v := domain.PropertyView{Property: p, TotalReviews: len(reviews)}
	if len(reviews) > 0 {
		var sum float64
		var last time.Time
		for _, r := range reviews {
			sum += r.AverageCategoryRating
			if r.SubmittedAt.After(last) {
				last = r.SubmittedAt
			}
		}
		v.AverageRating = domain.Round1(sum / float64(len(reviews)))
		v.LastReviewDate = &last
	}
	if includeMetrics {
		v.PerformanceMetrics = ComputeMetrics(reviews)
	}
	return v
}
