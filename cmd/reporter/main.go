package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/catalog"
	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/adapters/memory"
	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/adapters/places"
	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
)

func main() {
	window := flag.String("window", "30d", "trend window: 7d|30d|90d")
	top := flag.Int("top", 3, "number of best-rated properties to list")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "reporter", cfg.LogLevel)

	w, ok := domain.ParseTimeWindow(*window)
	if !ok || w == nil {
		log.Fatal().Str("window", *window).Msg("window must be one of 7d, 30d, 90d")
	}

	log.Info().
		Str("base", cfg.HostawayBase).
		Int("workers", cfg.ReportWorkers).
		Str("window", *window).
		Msg("reporter starting")

	mock, err := hostaway.NewMock()
	if err != nil {
		log.Fatal().Err(err).Msg("load mock reviews failed")
	}
	props, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load property catalog failed")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	svc := app.NewReviewService(app.Deps{
		Hostaway:  hostaway.New(cfg.HostawayBase, cfg.HostawayAccountID, cfg.HostawayKey, cfg.HostawayRPS, mock),
		Places:    places.NewMock(time.Now),
		Catalog:   props,
		Approvals: memory.NewApprovals(),
		Cache:     cache,
		CacheTTL:  cfg.CacheTTL,
	})

	report, err := svc.PortfolioReport(ctx, cfg.ReportWorkers, *top, *w)
	if err != nil {
		log.Fatal().Err(err).Msg("report failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatal().Err(err).Msg("write report failed")
	}
	log.Info().Int("properties", len(report.Properties)).Int("reviews", report.Summary.TotalReviews).Msg("report completed")
}
