package app

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// submittedAt layouts seen from the property-management API, most common first.
var submittedAtLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	nonSlugChar   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Normalizer maps raw source records onto the canonical Review.
// The clock is only consulted when a timestamp cannot be parsed.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

/********** hostaway **********/

func (n *Normalizer) Hostaway(r domain.HostawayReview) domain.Review {
	rv := domain.Review{
		ID:           r.ID,
		Type:         r.Type,
		Status:       r.Status,
		Rating:       r.Rating,
		PublicReview: r.PublicReview,
		SubmittedAt:  n.parseSubmittedAt(r.ID, r.SubmittedAt),
		GuestName:    r.GuestName,
		ListingName:  r.ListingName,
		PropertyID:   PropertyIDFromListing(r.ListingName),
		Channel:      domain.ChannelHostaway,
		// managers approve explicitly, whatever the source status says
		IsApprovedForPublic: false,
	}
	cats := make([]domain.CategoryRating, len(r.ReviewCategory))
	copy(cats, r.ReviewCategory)
	rv.SetCategories(cats)
	observability.ObserveNormalized(string(domain.ChannelHostaway))
	return rv
}

func (n *Normalizer) HostawayAll(in []domain.HostawayReview) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		out = append(out, n.Hostaway(r))
	}
	return out
}

func (n *Normalizer) parseSubmittedAt(id int64, raw string) time.Time {
	s := strings.TrimSpace(raw)
	for _, layout := range submittedAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil && !t.IsZero() {
			return t
		}
	}
	// epoch seconds sometimes arrive as strings
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC()
	}
	log.Warn().
		Int64("review_id", id).
		Str("raw", raw).
		Msg("invalid submittedAt, using current time")
	observability.ObserveDateFallback(string(domain.ChannelHostaway))
	return n.now()
}

// PropertyIDFromListing derives the property slug from a listing name of the form
// "<unit label> - <property name>"; without a separator the whole name is slugged.
// "2B N1 A - 29 Shoreditch Heights" -> "29-shoreditch-heights".
func PropertyIDFromListing(listingName string) string {
	part := listingName
	if parts := strings.Split(listingName, " - "); len(parts) > 1 {
		part = parts[1]
	}
	return slug(part)
}

func slug(s string) string {
	s = strings.ToLower(s)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChar.ReplaceAllString(s, "")
}

/********** place reviews **********/

func (n *Normalizer) Place(r domain.PlaceReview, pc domain.PlaceContext) domain.Review {
	rating := r.Rating
	rv := domain.Review{
		ID:                  PlaceReviewID(pc, r),
		Type:                domain.TypeGuestToHost,
		Status:              domain.StatusPublished,
		Rating:              &rating,
		PublicReview:        r.Text,
		ReviewCategories:    []domain.CategoryRating{},
		SubmittedAt:         time.Unix(r.Time, 0).UTC(),
		GuestName:           r.AuthorName,
		ListingName:         pc.PropertyName,
		PropertyID:          pc.PropertyID,
		Channel:             domain.ChannelGoogle,
		IsApprovedForPublic: true, // no moderation step at the source
		// no per-category breakdown; the single score stands in for the average
		AverageCategoryRating: rating,
	}
	observability.ObserveNormalized(string(domain.ChannelGoogle))
	return rv
}

func (n *Normalizer) PlaceAll(in []domain.PlaceReview, pc domain.PlaceContext) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		out = append(out, n.Place(r, pc))
	}
	return out
}

// PlaceReviewID synthesizes a stable id from the place, author and timestamp.
// Kept within 2^53 so JSON consumers read it back exactly.
func PlaceReviewID(pc domain.PlaceContext, r domain.PlaceReview) int64 {
	sig := strings.Join([]string{
		pc.PlaceID,
		strings.TrimSpace(strings.ToLower(r.AuthorName)),
		strconv.FormatInt(r.Time, 10),
	}, "|")
	return int64(xxhash.Sum64String(sig) & (1<<53 - 1))
}
