package httpserver

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"flex_reviews/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// reviewParams is the raw query string of the review endpoints. Parsing and
// validation happen here so nothing past the handler sees an "all" sentinel.
type reviewParams struct {
	PropertyID string   `validate:"omitempty,max=200"`
	Rating     *float64 `validate:"omitnil,gte=0,lte=10"`
	Category   string   `validate:"omitempty,max=100"`
	Channel    string   `validate:"omitempty,oneof=all hostaway google"`
	TimeRange  string   `validate:"omitempty,oneof=all 7d 30d 90d"`
	Status     string   `validate:"omitempty,oneof=all pending approved disapproved"`
	Type       string   `validate:"omitempty,oneof=all host-to-guest guest-to-host"`
	Search     string   `validate:"max=200"`
	SortBy     string   `validate:"omitempty,oneof=date rating guestName propertyName"`
	SortOrder  string   `validate:"omitempty,oneof=asc desc"`
	Limit      int      `validate:"min=1,max=200"`
	Offset     int      `validate:"min=0"`
	Start      *time.Time
	End        *time.Time
}

const defaultLimit = 50

func parseReviewParams(q url.Values) (reviewParams, error) {
	p := reviewParams{
		PropertyID: strings.TrimSpace(q.Get("propertyId")),
		Category:   strings.TrimSpace(q.Get("category")),
		Channel:    q.Get("channel"),
		TimeRange:  q.Get("timeRange"),
		Status:     q.Get("status"),
		Type:       q.Get("type"),
		Search:     strings.TrimSpace(q.Get("q")),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
		Limit:      defaultLimit,
	}

	var errs []error
	if v := q.Get("rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, errors.New("rating must be a number"))
		} else {
			p.Rating = &f
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, errors.New("limit must be an integer between 1 and 200"))
		} else {
			p.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, errors.New("offset must be a non-negative integer"))
		} else {
			p.Offset = n
		}
	}
	if v := q.Get("start"); v != "" {
		t, _, err := parseDate(v)
		if err != nil {
			errs = append(errs, errors.New("start must be an RFC 3339 time or YYYY-MM-DD date"))
		} else {
			p.Start = &t
		}
	}
	if v := q.Get("end"); v != "" {
		t, dateOnly, err := parseDate(v)
		if err != nil {
			errs = append(errs, errors.New("end must be an RFC 3339 time or YYYY-MM-DD date"))
		} else {
			if dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			p.End = &t
		}
	}
	if len(errs) > 0 {
		return p, fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}

	if err := validate.Struct(p); err != nil {
		return p, fmt.Errorf("%w: %s", domain.ErrValidation, describe(err))
	}
	if p.Start != nil && p.End != nil && p.End.Before(*p.Start) {
		return p, fmt.Errorf("%w: end is before start", domain.ErrValidation)
	}
	return p, nil
}

// parseDate accepts RFC 3339 or a bare UTC date.
func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	t, err = time.ParseInLocation(time.DateOnly, s, time.UTC)
	return t, true, err
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: rule '%s' expected '%s', got '%v'", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: rule '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func (p reviewParams) filter() domain.ReviewFilter {
	var f domain.ReviewFilter
	if p.PropertyID != "" && p.PropertyID != "all" {
		id := p.PropertyID
		f.PropertyID = &id
	}
	f.MinRating = p.Rating
	if p.Category != "" && p.Category != "all" {
		c := p.Category
		f.Category = &c
	}
	if p.Channel != "" && p.Channel != "all" {
		c := domain.Channel(p.Channel)
		f.Channel = &c
	}
	if p.Start != nil || p.End != nil {
		var dr domain.DateRange
		if p.Start != nil {
			dr.Start = *p.Start
		}
		if p.End != nil {
			dr.End = *p.End
		}
		f.DateRange = &dr
	}
	f.TimeWindow, _ = domain.ParseTimeWindow(p.TimeRange)
	if p.Status != "" && p.Status != "all" {
		b := domain.ApprovalBucket(p.Status)
		f.Approval = &b
	}
	if p.Type != "" && p.Type != "all" {
		t := domain.ReviewType(p.Type)
		f.Type = &t
	}
	return f
}

func (p reviewParams) query() domain.ReviewQuery {
	return domain.ReviewQuery{
		Filter:    p.filter(),
		Search:    p.Search,
		SortBy:    domain.SortKey(p.SortBy),
		SortOrder: domain.SortDirection(p.SortOrder),
		Limit:     p.Limit,
		Offset:    p.Offset,
	}
}

// approvalBody uses pointers so a missing field is distinguishable from a zero value.
type approvalBody struct {
	ReviewID   *int64 `json:"reviewId" validate:"required"`
	IsApproved *bool  `json:"isApproved" validate:"required"`
	Channel    string `json:"channel" validate:"omitempty,oneof=hostaway google"`
}

type bulkApprovalBody struct {
	ReviewIDs  []int64 `json:"reviewIds" validate:"required,min=1,max=500"`
	IsApproved *bool   `json:"isApproved" validate:"required"`
	Channel    string  `json:"channel" validate:"omitempty,oneof=hostaway google"`
}

func channelOrDefault(s string) domain.Channel {
	if s == "" {
		return domain.ChannelHostaway
	}
	return domain.Channel(s)
}
