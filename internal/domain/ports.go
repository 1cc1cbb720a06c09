package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	// ErrUpstream means a source could not be read even after its own fallback.
	ErrUpstream = errors.New("failed to fetch")
)

// HostawayQuery mirrors the property-management API's list parameters.
// Zero values mean "not set".
type HostawayQuery struct {
	Limit  int
	Offset int
	Status string
	Type   string
}

type HostawaySource interface {
	FetchReviews(ctx context.Context, q HostawayQuery) ([]HostawayReview, error)
	FetchReviewByID(ctx context.Context, id int64) (HostawayReview, error)
}

type PlaceSource interface {
	SearchPlace(ctx context.Context, query string) ([]PlaceDetails, error)
	GetPlaceReviews(ctx context.Context, placeID string) ([]PlaceReview, error)
}

type PropertyCatalog interface {
	ListProperties(ctx context.Context) ([]Property, error)
	GetProperty(ctx context.Context, id string) (Property, error)
}

// ApprovalStore holds public-display decisions layered over freshly normalized reviews.
type ApprovalStore interface {
	SetApproval(ctx context.Context, key ReviewKey, approved bool) error
	Approvals(ctx context.Context) (map[ReviewKey]bool, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
