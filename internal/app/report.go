package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"flex_reviews/internal/domain"
)

// PortfolioReport is the offline summary printed by the reporter.
type PortfolioReport struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Properties  []domain.PropertyView `json:"properties"`
	Top         []domain.PropertyView `json:"top"`
	Summary     domain.ReviewStats    `json:"summary"`
	ByChannel   domain.ChannelStats   `json:"byChannel"`
	Trends      domain.ReviewTrends   `json:"trends"`
}

// PortfolioReport loads one snapshot and builds every property view on a
// bounded pool of workers. Views keep catalog order.
func (s *ReviewService) PortfolioReport(ctx context.Context, workers, top int, window domain.TimeWindow) (PortfolioReport, error) {
	if workers <= 0 {
		workers = 4
	}
	props, err := s.catalog.ListProperties(ctx)
	if err != nil {
		return PortfolioReport{}, err
	}
	reviews, err := s.LoadReviews(ctx)
	if err != nil {
		return PortfolioReport{}, err
	}
	byProp := GroupByProperty(reviews)

	views := make([]domain.PropertyView, len(props))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, p := range props {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return PortfolioReport{}, err
		}
		wg.Add(1)
		go func(i int, p domain.Property) {
			defer wg.Done()
			defer sem.Release(1)

			views[i] = BuildPropertyView(p, byProp[p.ID], true)
			log.Debug().Str("property_id", p.ID).Int("reviews", views[i].TotalReviews).Msg("property metrics computed")
		}(i, p)
	}
	wg.Wait()

	now := s.now()
	return PortfolioReport{
		GeneratedAt: now,
		Properties:  views,
		Top:         TopProperties(views, top),
		Summary:     GetReviewStats(reviews),
		ByChannel:   GetReviewStatsByChannel(reviews),
		Trends:      GetReviewTrends(reviews, window, now),
	}, nil
}
