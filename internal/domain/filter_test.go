package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flex_reviews/internal/domain"
)

func TestParseTimeWindow(t *testing.T) {
	for _, s := range []string{"", "all"} {
		w, ok := domain.ParseTimeWindow(s)
		assert.True(t, ok, s)
		assert.Nil(t, w, s)
	}

	w, ok := domain.ParseTimeWindow("90d")
	assert.True(t, ok)
	assert.Equal(t, 90, w.Days())

	_, ok = domain.ParseTimeWindow("14d")
	assert.False(t, ok)
}

func TestTimeWindow_Cutoff(t *testing.T) {
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 24, 12, 0, 0, 0, time.UTC), domain.Window7d.Cutoff(now))
}
