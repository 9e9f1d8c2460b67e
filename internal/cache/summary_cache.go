package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"surveypulse/internal/model"
)

// SummaryCache handles Redis storage of computed survey reports.
// Cached reports are never the source of truth: they are re-derived
// from responses on expiry or invalidation.
type SummaryCache interface {
	GetReport(ctx context.Context, surveyID string) (*model.SurveyReport, error)
	SetReport(ctx context.Context, report *model.SurveyReport) error
	Invalidate(ctx context.Context, surveyID string) error
}

type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new summary cache with the given TTL
func NewSummaryCache(client *redis.Client, ttl time.Duration) SummaryCache {
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *summaryCache) reportKey(surveyID string) string {
	return fmt.Sprintf("survey:%s:report", surveyID)
}

func (c *summaryCache) GetReport(ctx context.Context, surveyID string) (*model.SurveyReport, error) {
	data, err := c.client.Get(ctx, c.reportKey(surveyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.SurveyReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *summaryCache) SetReport(ctx context.Context, report *model.SurveyReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.reportKey(report.SurveyID), data, c.ttl).Err()
}

func (c *summaryCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, c.reportKey(surveyID)).Err()
}
