package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// AnalyticsKey scopes a cached dashboard payload to one employer account.
func AnalyticsKey(employerID string) string {
	return "analytics:employer:" + employerID
}
