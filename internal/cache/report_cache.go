package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mindwell/internal/model"
)

const riskDistributionKey = "reports:risk_distribution"

// ReportCache holds the computed risk distribution for a short while
type ReportCache interface {
	GetDistribution(ctx context.Context) (*model.RiskDistribution, error)
	SetDistribution(ctx context.Context, d *model.RiskDistribution) error
	Invalidate(ctx context.Context) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client) ReportCache {
	return &reportCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *reportCache) GetDistribution(ctx context.Context) (*model.RiskDistribution, error) {
	data, err := c.client.Get(ctx, riskDistributionKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d model.RiskDistribution
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *reportCache) SetDistribution(ctx context.Context, d *model.RiskDistribution) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, riskDistributionKey, data, c.ttl).Err()
}

// Invalidate drops the cached distribution after a new assessment
func (c *reportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, riskDistributionKey).Err()
}
