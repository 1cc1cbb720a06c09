package places_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flex_reviews/internal/adapters/places"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMock_SearchPlace(t *testing.T) {
	m := places.NewMock(func() time.Time { return fixedNow })

	got, err := m.SearchPlace(context.Background(), "Shoreditch Heights")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "mock_place_1", got[0].PlaceID)
	assert.Equal(t, "Shoreditch Heights", got[0].Name)
	assert.Len(t, got[0].Reviews, 5)
	assert.Equal(t, "Shoreditch Heights - Premium", got[1].Name)
	assert.Len(t, got[1].Reviews, 2)
}

func TestMock_SearchPlace_EmptyQuery(t *testing.T) {
	m := places.NewMock(func() time.Time { return fixedNow })

	got, err := m.SearchPlace(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Demo Property", got[0].Name)
}

func TestMock_GetPlaceReviews_RelativeToClock(t *testing.T) {
	m := places.NewMock(func() time.Time { return fixedNow })

	got, err := m.GetPlaceReviews(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, "Sarah Johnson", got[0].AuthorName)
	assert.Equal(t, fixedNow.AddDate(0, 0, -60).Unix(), got[0].Time)
	assert.Equal(t, "Lisa Thompson", got[4].AuthorName)
	assert.Equal(t, fixedNow.AddDate(0, 0, -5).Unix(), got[4].Time)
}

func TestMock_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := places.NewMock(nil).GetPlaceReviews(ctx, "mock_place_1")
	assert.ErrorIs(t, err, context.Canceled)
}
