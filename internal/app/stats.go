package app

import (
	"cmp"
	"math"
	"slices"
	"time"

	"flex_reviews/internal/domain"
)

// Sentiment thresholds on averageCategoryRating. They read like a 0-5 scale applied
// to 0-10 data; kept until product confirms the intended scale.
const (
	positiveThreshold = 4.0
	negativeThreshold = 3.0
)

func GetReviewStats(reviews []domain.Review) domain.ReviewStats {
	s := domain.ReviewStats{TotalReviews: len(reviews)}
	if s.TotalReviews == 0 {
		return s
	}
	var sum float64
	for _, r := range reviews {
		sum += r.AverageCategoryRating
		switch {
		case r.AverageCategoryRating >= positiveThreshold:
			s.PositiveReviews++
		case r.AverageCategoryRating < negativeThreshold:
			s.NegativeReviews++
		}
	}
	s.NeutralReviews = s.TotalReviews - s.PositiveReviews - s.NegativeReviews
	s.AverageRating = domain.Round1(sum / float64(s.TotalReviews))
	s.PositivePercentage = percent(s.PositiveReviews, s.TotalReviews)
	s.NegativePercentage = percent(s.NegativeReviews, s.TotalReviews)
	return s
}

func percent(n, total int) int {
	return int(math.Floor(float64(n)/float64(total)*100 + 0.5))
}

// GetReviewStatsByChannel averages the overall source rating per channel; a
// missing rating counts as 0. Averages are not rounded.
func GetReviewStatsByChannel(reviews []domain.Review) domain.ChannelStats {
	var out domain.ChannelStats
	var sumH, sumG, sumT float64
	for _, r := range reviews {
		v := 0.0
		if r.Rating != nil {
			v = *r.Rating
		}
		sumT += v
		out.Total.Count++
		switch r.Channel {
		case domain.ChannelHostaway:
			sumH += v
			out.Hostaway.Count++
		case domain.ChannelGoogle:
			sumG += v
			out.Google.Count++
		}
	}
	out.Hostaway.AverageRating = safeDiv(sumH, out.Hostaway.Count)
	out.Google.AverageRating = safeDiv(sumG, out.Google.Count)
	out.Total.AverageRating = safeDiv(sumT, out.Total.Count)
	return out
}

func safeDiv(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// GetReviewTrends summarizes reviews submitted within the window ending at now.
func GetReviewTrends(reviews []domain.Review, w domain.TimeWindow, now time.Time) domain.ReviewTrends {
	t := domain.ReviewTrends{Days: w.Days()}
	cutoff := w.Cutoff(now)
	var sum float64
	for _, r := range reviews {
		if r.SubmittedAt.Before(cutoff) {
			continue
		}
		t.Total++
		if r.IsApprovedForPublic {
			t.Approved++
		}
		if r.Rating != nil {
			sum += *r.Rating
		}
	}
	t.AverageRating = safeDiv(sum, t.Total)
	return t
}

// TopProperties orders views by averageRating, best first, and keeps n.
func TopProperties(views []domain.PropertyView, n int) []domain.PropertyView {
	out := slices.Clone(views)
	slices.SortStableFunc(out, func(a, b domain.PropertyView) int {
		return cmp.Compare(b.AverageRating, a.AverageRating)
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
