package domain

import "time"

// TimeWindow is a named relative window ending now.
type TimeWindow int

const (
	Window7d  TimeWindow = 7
	Window30d TimeWindow = 30
	Window90d TimeWindow = 90
)

// ParseTimeWindow accepts 7d|30d|90d. "all" and "" mean no window.
func ParseTimeWindow(s string) (*TimeWindow, bool) {
	var w TimeWindow
	switch s {
	case "", "all":
		return nil, true
	case "7d":
		w = Window7d
	case "30d":
		w = Window30d
	case "90d":
		w = Window90d
	default:
		return nil, false
	}
	return &w, true
}

func (w TimeWindow) Days() int { return int(w) }

// Cutoff is the earliest instant inside the window.
func (w TimeWindow) Cutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(w) * 24 * time.Hour)
}

// ApprovalBucket selects reviews by public-display state.
type ApprovalBucket string

const (
	BucketPending     ApprovalBucket = "pending"
	BucketApproved    ApprovalBucket = "approved"
	BucketDisapproved ApprovalBucket = "disapproved"
)

// DateRange is inclusive at both ends. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ReviewFilter is the set of optional predicates of the query pipeline.
// A nil field places no constraint; there is no "all" sentinel past the boundary.
type ReviewFilter struct {
	PropertyID *string
	MinRating  *float64
	Category   *string
	Channel    *Channel
	DateRange  *DateRange
	TimeWindow *TimeWindow
	Approval   *ApprovalBucket
	Type       *ReviewType
}

type SortKey string

const (
	SortByDate         SortKey = "date"
	SortByRating       SortKey = "rating"
	SortByGuestName    SortKey = "guestName"
	SortByPropertyName SortKey = "propertyName"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ReviewQuery drives the full Filter -> Search -> Sort -> Paginate pipeline.
type ReviewQuery struct {
	Filter    ReviewFilter
	Search    string
	SortBy    SortKey
	SortOrder SortDirection
	Limit     int
	Offset    int
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ReviewsPage struct {
	Items      []Review   `json:"items"`
	Pagination Pagination `json:"pagination"`
}
