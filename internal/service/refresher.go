package service

import (
	"context"
	"log"
	"time"

	"surveypulse/internal/repository"
)

// Refresher periodically recomputes and re-caches summaries for active
// surveys. Each run is a bounded, cancellable unit of work with no
// side effects to roll back on cancellation.
type Refresher struct {
	surveyRepo repository.SurveyRepo
	analytics  *AnalyticsService
	interval   time.Duration
}

// NewRefresher creates a new summary refresher
func NewRefresher(surveyRepo repository.SurveyRepo, analytics *AnalyticsService, interval time.Duration) *Refresher {
	return &Refresher{
		surveyRepo: surveyRepo,
		analytics:  analytics,
		interval:   interval,
	}
}

// Run blocks until ctx is cancelled, refreshing on each tick.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *Refresher) refreshAll(ctx context.Context) {
	surveys, err := r.surveyRepo.GetActive(ctx)
	if err != nil {
		log.Printf("refresher: failed to list active surveys: %v", err)
		return
	}
	for _, survey := range surveys {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.analytics.Refresh(ctx, survey.ID); err != nil {
			log.Printf("refresher: failed to refresh survey %s: %v", survey.ID, err)
		}
	}
}
