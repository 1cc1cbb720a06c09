package app

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"flex_reviews/internal/domain"
)

// RunQuery applies Filter -> Search -> Sort -> Paginate in that order.
func RunQuery(reviews []domain.Review, q domain.ReviewQuery, now time.Time) domain.ReviewsPage {
	out := FilterReviews(reviews, q.Filter, now)
	out = SearchReviews(out, q.Search)
	out = SortReviews(out, q.SortBy, q.SortOrder)
	return Paginate(out, q.Limit, q.Offset)
}

/********** filter **********/

// FilterReviews keeps the reviews that satisfy every non-nil predicate of f.
func FilterReviews(reviews []domain.Review, f domain.ReviewFilter, now time.Time) []domain.Review {
	var cutoff time.Time
	if f.TimeWindow != nil {
		cutoff = f.TimeWindow.Cutoff(now)
	}
	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if f.TimeWindow != nil && r.SubmittedAt.Before(cutoff) {
			continue
		}
		if matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r domain.Review, f domain.ReviewFilter) bool {
	if f.PropertyID != nil && r.PropertyID != *f.PropertyID {
		return false
	}
	// threshold applies to the category average, not the overall rating
	if f.MinRating != nil && r.AverageCategoryRating < *f.MinRating {
		return false
	}
	if f.Category != nil && !hasCategory(r, *f.Category) {
		return false
	}
	if f.Channel != nil && r.Channel != *f.Channel {
		return false
	}
	if dr := f.DateRange; dr != nil {
		if !dr.Start.IsZero() && r.SubmittedAt.Before(dr.Start) {
			return false
		}
		if !dr.End.IsZero() && r.SubmittedAt.After(dr.End) {
			return false
		}
	}
	if f.Approval != nil {
		switch *f.Approval {
		case domain.BucketApproved:
			if !r.IsApprovedForPublic {
				return false
			}
		case domain.BucketPending:
			if r.IsApprovedForPublic {
				return false
			}
		case domain.BucketDisapproved:
			// Nothing records an explicit rejection yet, so this bucket is always empty.
			return false
		}
	}
	if f.Type != nil && r.Type != *f.Type {
		return false
	}
	return true
}

func hasCategory(r domain.Review, label string) bool {
	for _, c := range r.ReviewCategories {
		if c.Category == label {
			return true
		}
	}
	return false
}

/********** search **********/

// SearchReviews keeps reviews whose body, guest name or listing name contains
// query, ignoring case. An empty query keeps everything.
func SearchReviews(reviews []domain.Review, query string) []domain.Review {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return reviews
	}
	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if strings.Contains(strings.ToLower(r.PublicReview), q) ||
			strings.Contains(strings.ToLower(r.GuestName), q) ||
			strings.Contains(strings.ToLower(r.ListingName), q) {
			out = append(out, r)
		}
	}
	return out
}

/********** sort **********/

// SortReviews returns a stably sorted copy. Equal keys keep their input order in
// both directions. An empty key defaults to date, an empty direction to desc.
func SortReviews(reviews []domain.Review, by domain.SortKey, dir domain.SortDirection) []domain.Review {
	out := slices.Clone(reviews)
	if by == "" {
		by = domain.SortByDate
	}

	var cmpFn func(a, b domain.Review) int
	switch by {
	case domain.SortByRating:
		cmpFn = func(a, b domain.Review) int { return cmp.Compare(a.AverageCategoryRating, b.AverageCategoryRating) }
	case domain.SortByGuestName:
		col := collate.New(language.English)
		cmpFn = func(a, b domain.Review) int { return col.CompareString(a.GuestName, b.GuestName) }
	case domain.SortByPropertyName:
		col := collate.New(language.English)
		cmpFn = func(a, b domain.Review) int { return col.CompareString(a.ListingName, b.ListingName) }
	default:
		cmpFn = func(a, b domain.Review) int { return a.SubmittedAt.Compare(b.SubmittedAt) }
	}

	if dir != domain.Asc {
		asc := cmpFn
		cmpFn = func(a, b domain.Review) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, cmpFn)
	return out
}

/********** paginate **********/

// Paginate slices the sequence and reports totals against the unsliced length.
// A non-positive limit returns everything as a single page.
func Paginate(reviews []domain.Review, limit, offset int) domain.ReviewsPage {
	total := len(reviews)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = total
	}
	p := domain.Pagination{Limit: limit, Total: total, Page: 1}
	if limit > 0 {
		p.TotalPages = total / limit
		if total%limit != 0 {
			p.TotalPages++
		}
		p.Page = offset/limit + 1
	}

	start := min(offset, total)
	end := total
	if limit > 0 && limit < total-start {
		end = start + limit
	}
	items := make([]domain.Review, end-start)
	copy(items, reviews[start:end])
	return domain.ReviewsPage{Items: items, Pagination: p}
}
