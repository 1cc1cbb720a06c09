package domain

import "time"

// Property is a managed property from the catalog. PlaceID links it to the
// place-reviews source when the property has a public listing there.
type Property struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Type    string `json:"type"`
	PlaceID string `json:"placeId,omitempty"`
}

// PropertyView is a Property with aggregates derived from the current review set.
// It is recomputed on every read.
type PropertyView struct {
	Property
	TotalReviews       int                        `json:"totalReviews"`
	AverageRating      float64                    `json:"averageRating"`
	LastReviewDate     *time.Time                 `json:"lastReviewDate"`
	PerformanceMetrics PropertyPerformanceMetrics `json:"performanceMetrics"`
}

type ReviewStats struct {
	TotalReviews       int     `json:"totalReviews"`
	AverageRating      float64 `json:"averageRating"`
	PositiveReviews    int     `json:"positiveReviews"`
	NegativeReviews    int     `json:"negativeReviews"`
	NeutralReviews     int     `json:"neutralReviews"`
	PositivePercentage int     `json:"positivePercentage"`
	NegativePercentage int     `json:"negativePercentage"`
}

type ChannelBucket struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

type ChannelStats struct {
	Hostaway ChannelBucket `json:"hostaway"`
	Google   ChannelBucket `json:"google"`
	Total    ChannelBucket `json:"total"`
}

type ReviewTrends struct {
	Days          int     `json:"days"`
	Total         int     `json:"total"`
	Approved      int     `json:"approved"`
	AverageRating float64 `json:"averageRating"`
}
