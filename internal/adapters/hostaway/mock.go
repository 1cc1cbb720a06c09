package hostaway

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"flex_reviews/internal/domain"
)

//go:embed mock_reviews.json
var mockReviewsJSON []byte

// Mock serves a fixed review set with the same filtering and paging as the live API.
type Mock struct {
	reviews []domain.HostawayReview
}

// NewMock loads the embedded dataset.
func NewMock() (*Mock, error) {
	var rs []domain.HostawayReview
	if err := json.Unmarshal(mockReviewsJSON, &rs); err != nil {
		return nil, fmt.Errorf("decode mock reviews: %w", err)
	}
	return &Mock{reviews: rs}, nil
}

// NewMockFrom serves rs as given.
func NewMockFrom(rs []domain.HostawayReview) *Mock { return &Mock{reviews: rs} }

func (m *Mock) FetchReviews(ctx context.Context, q domain.HostawayQuery) ([]domain.HostawayReview, error) {
	out := make([]domain.HostawayReview, 0, len(m.reviews))
	for _, r := range m.reviews {
		if q.Status != "" && string(r.Status) != q.Status {
			continue
		}
		if q.Type != "" && string(r.Type) != q.Type {
			continue
		}
		out = append(out, r)
	}

	start := min(max(q.Offset, 0), len(out))
	end := len(out)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(out))
	}
	return out[start:end], nil
}

func (m *Mock) FetchReviewByID(ctx context.Context, id int64) (domain.HostawayReview, error) {
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.HostawayReview{}, fmt.Errorf("hostaway review %d: %w", id, domain.ErrNotFound)
}
