package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"flex_reviews/internal/domain"
)

const (
	hostawayCacheKey = "hostaway:reviews:all"
	placeFetchLimit  = 4
)

// Deps are the collaborators of ReviewService. Cache may be nil.
type Deps struct {
	Hostaway  domain.HostawaySource
	Places    domain.PlaceSource
	Catalog   domain.PropertyCatalog
	Approvals domain.ApprovalStore
	Cache     domain.Cache
	CacheTTL  time.Duration
	Now       func() time.Time
}

// ReviewService runs the read side of the pipeline. Every call rebuilds the
// review set from the sources; nothing derived is kept between calls.
type ReviewService struct {
	hostaway  domain.HostawaySource
	places    domain.PlaceSource
	catalog   domain.PropertyCatalog
	approvals domain.ApprovalStore
	cache     domain.Cache
	cacheTTL  time.Duration
	now       func() time.Time
	norm      *Normalizer
}

func NewReviewService(d Deps) *ReviewService {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &ReviewService{
		hostaway:  d.Hostaway,
		places:    d.Places,
		catalog:   d.Catalog,
		approvals: d.Approvals,
		cache:     d.Cache,
		cacheTTL:  d.CacheTTL,
		now:       now,
		norm:      NewNormalizer(now),
	}
}

type StatsReport struct {
	Summary   domain.ReviewStats  `json:"summary"`
	ByChannel domain.ChannelStats `json:"byChannel"`
	Trends    domain.ReviewTrends `json:"trends"`
}

// LoadReviews fetches both sources concurrently, normalizes, merges and applies
// the current approval decisions. Either source failing fails the whole load.
func (s *ReviewService) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	var (
		raw    []domain.HostawayReview
		google []domain.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.fetchHostaway(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		google, err = s.fetchGoogle(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reviews := MergeReviews(s.norm.HostawayAll(raw), google)
	if err := s.applyApprovals(ctx, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) fetchHostaway(ctx context.Context) ([]domain.HostawayReview, error) {
	var out []domain.HostawayReview
	if s.cache != nil && s.cacheTTL > 0 {
		ok, err := s.cache.Get(ctx, hostawayCacheKey, &out)
		if err != nil {
			log.Warn().Err(err).Str("key", hostawayCacheKey).Msg("cache get failed, reading source")
		}
		if ok {
			return out, nil
		}
	}
	out, err := s.hostaway.FetchReviews(ctx, domain.HostawayQuery{})
	if err != nil {
		return nil, upstreamErr("hostaway reviews", err)
	}
	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, hostawayCacheKey, out, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", hostawayCacheKey).Msg("cache set failed")
		}
	}
	return out, nil
}

// fetchGoogle pulls place reviews for every catalog property that has a place id.
// Results keep catalog order regardless of completion order.
func (s *ReviewService) fetchGoogle(ctx context.Context) ([]domain.Review, error) {
	props, err := s.catalog.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	batches := make([][]domain.Review, len(props))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(placeFetchLimit)
	for i, p := range props {
		if p.PlaceID == "" {
			continue
		}
		g.Go(func() error {
			raw, err := s.places.GetPlaceReviews(gctx, p.PlaceID)
			if err != nil {
				return upstreamErr("place reviews "+p.PlaceID, err)
			}
			batches[i] = s.norm.PlaceAll(raw, domain.PlaceContext{
				PlaceID:      p.PlaceID,
				PropertyID:   p.ID,
				PropertyName: p.Name,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.Review
	for _, b := range batches {
		out = MergeReviews(out, b)
	}
	return out, nil
}

func (s *ReviewService) applyApprovals(ctx context.Context, reviews []domain.Review) error {
	if s.approvals == nil {
		return nil
	}
	decisions, err := s.approvals.Approvals(ctx)
	if err != nil {
		return fmt.Errorf("load approvals: %w", err)
	}
	for i := range reviews {
		if v, ok := decisions[reviews[i].Key()]; ok {
			reviews[i].IsApprovedForPublic = v
		}
	}
	return nil
}

func upstreamErr(what string, err error) error {
	if errors.Is(err, domain.ErrUpstream) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%s: %w: %w", what, domain.ErrUpstream, err)
}

func (s *ReviewService) getHostawayReview(ctx context.Context, id int64) (domain.Review, error) {
	raw, err := s.hostaway.FetchReviewByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.Review{}, fmt.Errorf("review %s/%d: %w", domain.ChannelHostaway, id, domain.ErrNotFound)
	case err != nil:
		return domain.Review{}, upstreamErr(fmt.Sprintf("hostaway review %d", id), err)
	}
	rv := []domain.Review{s.norm.Hostaway(raw)}
	if err := s.applyApprovals(ctx, rv); err != nil {
		return domain.Review{}, err
	}
	return rv[0], nil
}

/********** queries **********/

func (s *ReviewService) ListReviews(ctx context.Context, q domain.ReviewQuery) (domain.ReviewsPage, error) {
	reviews, err := s.LoadReviews(ctx)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	return RunQuery(reviews, q, s.now()), nil
}

// GetReview resolves one review with its approval applied. Hostaway reviews are
// fetched individually; place reviews have no id lookup upstream and are found
// in the merged set.
func (s *ReviewService) GetReview(ctx context.Context, key domain.ReviewKey) (domain.Review, error) {
	if key.Channel == domain.ChannelHostaway {
		return s.getHostawayReview(ctx, key.ID)
	}
	reviews, err := s.LoadReviews(ctx)
	if err != nil {
		return domain.Review{}, err
	}
	for _, r := range reviews {
		if r.Key() == key {
			return r, nil
		}
	}
	return domain.Review{}, fmt.Errorf("review %s/%d: %w", key.Channel, key.ID, domain.ErrNotFound)
}

// Stats summarizes the reviews that pass f and match search, the same set ListReviews pages over.
func (s *ReviewService) Stats(ctx context.Context, f domain.ReviewFilter, search string, trend domain.TimeWindow) (StatsReport, error) {
	reviews, err := s.LoadReviews(ctx)
	if err != nil {
		return StatsReport{}, err
	}
	now := s.now()
	filtered := SearchReviews(FilterReviews(reviews, f, now), search)
	return StatsReport{
		Summary:   GetReviewStats(filtered),
		ByChannel: GetReviewStatsByChannel(filtered),
		Trends:    GetReviewTrends(filtered, trend, now),
	}, nil
}

func (s *ReviewService) ListProperties(ctx context.Context, includeMetrics bool) ([]domain.PropertyView, error) {
	props, err := s.catalog.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	reviews, err := s.LoadReviews(ctx)
	if err != nil {
		return nil, err
	}
	byProp := GroupByProperty(reviews)
	out := make([]domain.PropertyView, 0, len(props))
	for _, p := range props {
		out = append(out, BuildPropertyView(p, byProp[p.ID], includeMetrics))
	}
	return out, nil
}

func (s *ReviewService) GetProperty(ctx context.Context, id string) (domain.PropertyView, error) {
	p, err := s.catalog.GetProperty(ctx, id)
	if err != nil {
		return domain.PropertyView{}, err
	}
	reviews, err := s.LoadReviews(ctx)
	if err != nil {
		return domain.PropertyView{}, err
	}
	return BuildPropertyView(p, GroupByProperty(reviews)[p.ID], true), nil
}

func (s *ReviewService) TopProperties(ctx context.Context, n int) ([]domain.PropertyView, error) {
	views, err := s.ListProperties(ctx, true)
	if err != nil {
		return nil, err
	}
	return TopProperties(views, n), nil
}

// PublicReviews lists the approved reviews of one property, newest first.
func (s *ReviewService) PublicReviews(ctx context.Context, propertyID string) ([]domain.Review, error) {
	if _, err := s.catalog.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	reviews, err := s.LoadReviews(ctx)
	if err != nil {
		return nil, err
	}
	bucket := domain.BucketApproved
	f := domain.ReviewFilter{PropertyID: &propertyID, Approval: &bucket}
	return SortReviews(FilterReviews(reviews, f, s.now()), domain.SortByDate, domain.Desc), nil
}

// PlaceReviews looks up one place, by id or else by the first search hit for query,
// and returns its reviews normalized.
func (s *ReviewService) PlaceReviews(ctx context.Context, placeID, query string) ([]domain.Review, error) {
	pc := domain.PlaceContext{PlaceID: placeID}
	if placeID == "" {
		if query == "" {
			return nil, fmt.Errorf("placeId or query is required: %w", domain.ErrValidation)
		}
		places, err := s.places.SearchPlace(ctx, query)
		if err != nil {
			return nil, upstreamErr("search place", err)
		}
		if len(places) == 0 {
			return nil, fmt.Errorf("no places for %q: %w", query, domain.ErrNotFound)
		}
		pc = domain.PlaceContext{
			PlaceID:      places[0].PlaceID,
			PropertyID:   slug(places[0].Name),
			PropertyName: places[0].Name,
		}
	}

	// a catalog property linked to this place wins over the search result's naming
	props, err := s.catalog.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	if i := slices.IndexFunc(props, func(p domain.Property) bool { return p.PlaceID == pc.PlaceID }); i >= 0 {
		pc.PropertyID, pc.PropertyName = props[i].ID, props[i].Name
	}

	raw, err := s.places.GetPlaceReviews(ctx, pc.PlaceID)
	if err != nil {
		return nil, upstreamErr("place reviews "+pc.PlaceID, err)
	}
	return s.norm.PlaceAll(raw, pc), nil
}
