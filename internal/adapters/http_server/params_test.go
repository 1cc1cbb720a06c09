package httpserver

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flex_reviews/internal/domain"
)

func TestParseReviewParams_Defaults(t *testing.T) {
	p, err := parseReviewParams(url.Values{})
	require.NoError(t, err)

	q := p.query()
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, domain.ReviewFilter{}, q.Filter)
}

func TestParseReviewParams_AllIsAbsent(t *testing.T) {
	p, err := parseReviewParams(url.Values{
		"channel":   {"all"},
		"timeRange": {"all"},
		"status":    {"all"},
		"type":      {"all"},
		"category":  {"all"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewFilter{}, p.filter())
}

func TestParseReviewParams_Typed(t *testing.T) {
	p, err := parseReviewParams(url.Values{
		"propertyId": {"29-shoreditch-heights"},
		"rating":     {"8.5"},
		"category":   {"cleanliness"},
		"channel":    {"google"},
		"timeRange":  {"30d"},
		"status":     {"approved"},
		"type":       {"guest-to-host"},
		"start":      {"2024-01-01"},
		"end":        {"2024-01-31"},
		"q":          {"  spotless "},
		"sortBy":     {"rating"},
		"sortOrder":  {"asc"},
		"limit":      {"10"},
		"offset":     {"20"},
	})
	require.NoError(t, err)

	q := p.query()
	f := q.Filter
	assert.Equal(t, "29-shoreditch-heights", *f.PropertyID)
	assert.Equal(t, 8.5, *f.MinRating)
	assert.Equal(t, "cleanliness", *f.Category)
	assert.Equal(t, domain.ChannelGoogle, *f.Channel)
	assert.Equal(t, domain.Window30d, *f.TimeWindow)
	assert.Equal(t, domain.BucketApproved, *f.Approval)
	assert.Equal(t, domain.TypeGuestToHost, *f.Type)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f.DateRange.Start)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), f.DateRange.End)
	assert.Equal(t, "spotless", q.Search)
	assert.Equal(t, domain.SortByRating, q.SortBy)
	assert.Equal(t, domain.Asc, q.SortOrder)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 20, q.Offset)
}

func TestParseReviewParams_OpenDateRange(t *testing.T) {
	p, err := parseReviewParams(url.Values{"start": {"2024-01-10T00:00:00Z"}})
	require.NoError(t, err)

	dr := p.filter().DateRange
	require.NotNil(t, dr)
	assert.True(t, dr.End.IsZero())
}

func TestParseReviewParams_Invalid(t *testing.T) {
	for _, q := range []url.Values{
		{"limit": {"abc"}},
		{"rating": {"11"}},
		{"status": {"rejected"}},
		{"sortOrder": {"up"}},
		{"start": {"yesterday"}},
	} {
		_, err := parseReviewParams(q)
		assert.True(t, errors.Is(err, domain.ErrValidation), "%v: %v", q, err)
	}
}
