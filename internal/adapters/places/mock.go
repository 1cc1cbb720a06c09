// Package places serves place reviews for the public-listing channel. Only a
// demo source exists; timestamps are relative to the injected clock.
package places

import (
	"context"
	"strings"
	"time"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

const (
	demoPlaceID      = "mock_place_1"
	premiumPlaceID   = "mock_place_2"
	demoAddress      = "123 Demo Street, Demo City, DC 12345"
	premiumAddress   = "456 Premium Ave, Demo City, DC 12345"
	defaultPlaceName = "Demo Property"
)

type Mock struct {
	now func() time.Time
}

func NewMock(now func() time.Time) *Mock {
	if now == nil {
		now = time.Now
	}
	return &Mock{now: now}
}

type seed struct {
	author, contrib, when, text string
	rating                      float64
	daysAgo                     int
}

var seeds = []seed{
	{"Sarah Johnson", "123456789", "2 months ago", "Amazing property! The location is perfect and the amenities are top-notch. Highly recommend for anyone visiting the area. The host was incredibly responsive and the place was spotless.", 5, 60},
	{"Michael Chen", "987654321", "1 month ago", "Great experience overall. The property was clean and well-maintained. The only minor issue was the wifi speed, but everything else was excellent. Would definitely stay again!", 4, 30},
	{"Emily Rodriguez", "456789123", "3 weeks ago", "Absolutely loved our stay! The property exceeded our expectations. The host was very responsive and the location couldn't be better. Perfect for our family vacation.", 5, 21},
	{"David Kim", "789123456", "1 week ago", "Very nice property with great amenities. The neighborhood is quiet and safe. The only suggestion would be to add more kitchen utensils, but overall a great stay.", 4, 7},
	{"Lisa Thompson", "321654987", "5 days ago", "Exceptional experience! The property is beautifully decorated and has everything you need. The host went above and beyond to make our stay comfortable. Highly recommend!", 5, 5},
}

func (m *Mock) reviews() []domain.PlaceReview {
	now := m.now()
	out := make([]domain.PlaceReview, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, domain.PlaceReview{
			AuthorName:              s.author,
			AuthorURL:               "https://maps.google.com/maps/contrib/" + s.contrib,
			Language:                "en",
			ProfilePhotoURL:         "https://lh3.googleusercontent.com/a/default-user",
			Rating:                  s.rating,
			RelativeTimeDescription: s.when,
			Text:                    s.text,
			Time:                    now.Add(-time.Duration(s.daysAgo) * 24 * time.Hour).Unix(),
		})
	}
	return out
}

// SearchPlace returns a primary and a premium match for any query.
func (m *Mock) SearchPlace(ctx context.Context, query string) ([]domain.PlaceDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	observability.ObserveFallback("places", "no_credentials")

	query = strings.TrimSpace(query)
	name := query
	if name == "" {
		name = defaultPlaceName
	}
	all := m.reviews()
	return []domain.PlaceDetails{
		{PlaceID: demoPlaceID, Name: name, FormattedAddress: demoAddress, Reviews: all},
		{PlaceID: premiumPlaceID, Name: query + " - Premium", FormattedAddress: premiumAddress, Reviews: all[:2]},
	}, nil
}

// GetPlaceReviews returns the same five reviews whatever the place id.
func (m *Mock) GetPlaceReviews(ctx context.Context, placeID string) ([]domain.PlaceReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	observability.ObserveFallback("places", "no_credentials")
	return m.reviews(), nil
}
