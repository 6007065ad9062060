package services

import (
	"context"
	"sort"
	"time"

	"github.com/yoockh/hireboard/internal/cache"
	"github.com/yoockh/hireboard/internal/models"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/utils"
)

const (
	analyticsWindow   = 30 * 24 * time.Hour
	analyticsTopN     = 10
	analyticsCacheTTL = time.Minute
)

type AnalyticsService interface {
	EmployerDashboard(ctx context.Context, employerID string) (*models.EmployerAnalytics, error)
}

type analyticsService struct {
	analytics pgrepo.AnalyticsRepository
	cache     cache.Cache
	now       func() time.Time
}

func NewAnalyticsService(analytics pgrepo.AnalyticsRepository, c cache.Cache) AnalyticsService {
	return &analyticsService{analytics: analytics, cache: c, now: time.Now}
}

// EmployerDashboard aggregates the caller's application funnel. The payload
// is a deterministic function of the current rows; the cache entry is dropped
// by every mutating operation that touches the employer's data.
func (s *analyticsService) EmployerDashboard(ctx context.Context, employerID string) (*models.EmployerAnalytics, error) {
	const op = "AnalyticsService.EmployerDashboard"

	if employerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	key := cache.AnalyticsKey(employerID)
	if s.cache != nil {
		var cached models.EmployerAnalytics
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	statusCounts, err := s.analytics.StatusCounts(ctx, employerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count statuses", err)
	}

	jobsByType, err := s.analytics.JobsByType(ctx, employerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count jobs by type", err)
	}

	since := s.now().UTC().Add(-analyticsWindow)
	applied, err := s.analytics.AppliedTimes(ctx, employerID, since)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load application times", err)
	}

	locations, err := s.analytics.LocationCounts(ctx, employerID, analyticsTopN)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count locations", err)
	}

	topJobs, err := s.analytics.TopJobs(ctx, employerID, analyticsTopN)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to rank jobs", err)
	}

	out := &models.EmployerAnalytics{
		StatusCounts:         statusCounts,
		JobsByType:           jobsByType,
		ApplicationsOverTime: bucketByDay(applied),
		Funnel:               buildFunnel(statusCounts),
		LocationCounts:       locations,
		TopJobs:              topJobs,
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, out, analyticsCacheTTL)
	}
	return out, nil
}

// bucketByDay folds timestamps into per-day counts, ascending by date. Days
// with no applications are omitted.
func bucketByDay(times []time.Time) []models.TimePoint {
	counts := make(map[string]int64, len(times))
	for _, t := range times {
		counts[t.UTC().Format("2006-01-02")]++
	}

	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]models.TimePoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.TimePoint{Date: d, Count: counts[d]})
	}
	return out
}

func buildFunnel(c models.StatusCounts) models.Funnel {
	total := c.Pending + c.Reviewed + c.Accepted + c.Rejected
	f := models.Funnel{
		Total:    total,
		Pending:  c.Pending,
		Reviewed: c.Reviewed,
		Accepted: c.Accepted,
		Rejected: c.Rejected,
	}
	if total > 0 {
		f.ReviewRate = float64(c.Reviewed) / float64(total)
		f.AcceptRate = float64(c.Accepted) / float64(total)
	}
	return f
}
