package domain

import "math"

// Category is one of the scored aspects that feed PropertyPerformanceMetrics.
type Category string

const (
	CategoryCleanliness   Category = "cleanliness"
	CategoryCommunication Category = "communication"
	CategoryCheckIn       Category = "check_in"
	CategoryAccuracy      Category = "accuracy"
	CategoryLocation      Category = "location"
	CategoryValue         Category = "value"
)

// MetricCategories lists the six categories in report order.
var MetricCategories = []Category{
	CategoryCleanliness,
	CategoryCommunication,
	CategoryCheckIn,
	CategoryAccuracy,
	CategoryLocation,
	CategoryValue,
}

// ParseCategory maps a free-text source label onto a metric category.
// Labels outside the six (e.g. "respect_house_rules") report ok=false.
func ParseCategory(label string) (Category, bool) {
	c := Category(label)
	switch c {
	case CategoryCleanliness, CategoryCommunication, CategoryCheckIn,
		CategoryAccuracy, CategoryLocation, CategoryValue:
		return c, true
	}
	return "", false
}

type PropertyPerformanceMetrics struct {
	Cleanliness   float64 `json:"cleanliness"`
	Communication float64 `json:"communication"`
	CheckIn       float64 `json:"checkIn"`
	Accuracy      float64 `json:"accuracy"`
	Location      float64 `json:"location"`
	Value         float64 `json:"value"`
	Overall       float64 `json:"overall"`
}

// Field returns the metric slot for c. Every Category has exactly one slot.
func (m *PropertyPerformanceMetrics) Field(c Category) *float64 {
	switch c {
	case CategoryCleanliness:
		return &m.Cleanliness
	case CategoryCommunication:
		return &m.Communication
	case CategoryCheckIn:
		return &m.CheckIn
	case CategoryAccuracy:
		return &m.Accuracy
	case CategoryLocation:
		return &m.Location
	case CategoryValue:
		return &m.Value
	}
	return nil
}

// AverageRating is the arithmetic mean of the ratings rounded to one decimal.
// An empty slice yields 0.
func AverageRating(cs []CategoryRating) float64 {
	if len(cs) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cs {
		sum += c.Rating
	}
	return Round1(sum / float64(len(cs)))
}

// Mean averages plain values with the same rounding as AverageRating.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return Round1(sum / float64(len(vs)))
}

// Round1 rounds half-up to one decimal place.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
