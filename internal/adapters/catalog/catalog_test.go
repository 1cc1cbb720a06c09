package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flex_reviews/internal/adapters/catalog"
	"flex_reviews/internal/domain"
)

func TestLoad_EmbeddedProperties(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	ps, err := c.ListProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, "29-shoreditch-heights", ps[0].ID)
	assert.Equal(t, "mock_place_1", ps[0].PlaceID)
}

func TestGetProperty(t *testing.T) {
	c := catalog.New([]domain.Property{{ID: "15-brick-lane", Name: "15 Brick Lane"}})

	p, err := c.GetProperty(context.Background(), "15-brick-lane")
	require.NoError(t, err)
	assert.Equal(t, "15 Brick Lane", p.Name)

	_, err = c.GetProperty(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProperties_ReturnsCopy(t *testing.T) {
	c := catalog.New([]domain.Property{{ID: "a"}})
	ps, _ := c.ListProperties(context.Background())
	ps[0].ID = "mutated"

	again, _ := c.ListProperties(context.Background())
	assert.Equal(t, "a", again[0].ID)
}
