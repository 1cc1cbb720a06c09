package domain

import "time"

type Channel string

const (
	ChannelHostaway Channel = "hostaway"
	ChannelGoogle   Channel = "google"
)

func (c Channel) Valid() bool { return c == ChannelHostaway || c == ChannelGoogle }

type ReviewType string

const (
	TypeHostToGuest ReviewType = "host-to-guest"
	TypeGuestToHost ReviewType = "guest-to-host"
)

// ReviewStatus is the source moderation status. The canonical domain extends the
// source's published|pending|rejected with approved|disapproved.
type ReviewStatus string

const (
	StatusPublished   ReviewStatus = "published"
	StatusPending     ReviewStatus = "pending"
	StatusRejected    ReviewStatus = "rejected"
	StatusApproved    ReviewStatus = "approved"
	StatusDisapproved ReviewStatus = "disapproved"
)

type CategoryRating struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// Review is the canonical, channel-agnostic review.
type Review struct {
	ID                    int64            `json:"id"`
	Type                  ReviewType       `json:"type"`
	Status                ReviewStatus     `json:"status"`
	Rating                *float64         `json:"rating"`
	PublicReview          string           `json:"publicReview"`
	ReviewCategories      []CategoryRating `json:"reviewCategories"`
	SubmittedAt           time.Time        `json:"submittedAt"`
	GuestName             string           `json:"guestName"`
	ListingName           string           `json:"listingName"`
	PropertyID            string           `json:"propertyId"`
	Channel               Channel          `json:"channel"`
	IsApprovedForPublic   bool             `json:"isApprovedForPublic"`
	AverageCategoryRating float64          `json:"averageCategoryRating"`
}

// SetCategories replaces the category ratings and recomputes AverageCategoryRating.
func (r *Review) SetCategories(cs []CategoryRating) {
	r.ReviewCategories = cs
	r.AverageCategoryRating = AverageRating(cs)
}

// Key identifies a review across channels; numeric ids are only unique within one channel.
func (r Review) Key() ReviewKey { return ReviewKey{Channel: r.Channel, ID: r.ID} }

type ReviewKey struct {
	Channel Channel `json:"channel"`
	ID      int64   `json:"reviewId"`
}

// HostawayReview is the raw property-management record as received.
type HostawayReview struct {
	ID             int64            `json:"id"`
	Type           ReviewType       `json:"type"`
	Status         ReviewStatus     `json:"status"`
	Rating         *float64         `json:"rating"`
	PublicReview   string           `json:"publicReview"`
	ReviewCategory []CategoryRating `json:"reviewCategory"`
	SubmittedAt    string           `json:"submittedAt"`
	GuestName      string           `json:"guestName"`
	ListingName    string           `json:"listingName"`
}

// PlaceReview is the raw place-reviews record. RelativeTimeDescription is display-only.
type PlaceReview struct {
	AuthorName              string  `json:"author_name"`
	AuthorURL               string  `json:"author_url"`
	Language                string  `json:"language"`
	ProfilePhotoURL         string  `json:"profile_photo_url"`
	Rating                  float64 `json:"rating"`
	RelativeTimeDescription string  `json:"relative_time_description"`
	Text                    string  `json:"text"`
	Time                    int64   `json:"time"`
	Translated              bool    `json:"translated"`
}

type PlaceDetails struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	Reviews          []PlaceReview `json:"reviews,omitempty"`
}

// PlaceContext carries the property a batch of place reviews belongs to;
// the place source itself knows nothing about managed properties.
type PlaceContext struct {
	PlaceID      string
	PropertyID   string
	PropertyName string
}
