package postgres

import (
	"context"
	"time"

	"github.com/yoockh/hireboard/internal/models"
	"gorm.io/gorm"
)

// AnalyticsRepository runs the read-side aggregations behind the employer
// dashboard. Every query is scoped to jobs owned by one employer.
type AnalyticsRepository interface {
	StatusCounts(ctx context.Context, employerID string) (models.StatusCounts, error)
	JobsByType(ctx context.Context, employerID string) (map[string]int64, error)
	AppliedTimes(ctx context.Context, employerID string, since time.Time) ([]time.Time, error)
	LocationCounts(ctx context.Context, employerID string, limit int) ([]models.LocationCount, error)
	TopJobs(ctx context.Context, employerID string, limit int) ([]models.TopJob, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) employerApps(ctx context.Context, employerID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID)
}

func (r *analyticsRepo) StatusCounts(ctx context.Context, employerID string) (models.StatusCounts, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.employerApps(ctx, employerID).
		Select("applications.status AS status, COUNT(*) AS n").
		Group("applications.status").
		Scan(&rows).Error
	if err != nil {
		return models.StatusCounts{}, err
	}

	var counts models.StatusCounts
	for _, rr := range rows {
		switch models.ApplicationStatus(rr.Status) {
		case models.StatusPending:
			counts.Pending = rr.N
		case models.StatusReviewed:
			counts.Reviewed = rr.N
		case models.StatusAccepted:
			counts.Accepted = rr.N
		case models.StatusRejected:
			counts.Rejected = rr.N
		}
	}
	return counts, nil
}

func (r *analyticsRepo) JobsByType(ctx context.Context, employerID string) (map[string]int64, error) {
	type row struct {
		JobType string
		N       int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("job_type, COUNT(*) AS n").
		Where("employer_id = ?", employerID).
		Group("job_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rr := range rows {
		out[rr.JobType] = rr.N
	}
	return out, nil
}

// AppliedTimes returns raw application timestamps since the cutoff; the
// service buckets them per day, keeping the SQL portable.
func (r *analyticsRepo) AppliedTimes(ctx context.Context, employerID string, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.employerApps(ctx, employerID).
		Where("applications.applied_at >= ?", since).
		Pluck("applications.applied_at", &times).Error
	return times, err
}

func (r *analyticsRepo) LocationCounts(ctx context.Context, employerID string, limit int) ([]models.LocationCount, error) {
	type row struct {
		Location *string
		N        int64
	}
	var rows []row
	err := r.employerApps(ctx, employerID).
		Select("job_seeker_profiles.location AS location, COUNT(*) AS n").
		Joins("LEFT JOIN job_seeker_profiles ON job_seeker_profiles.user_id = applications.applicant_id").
		Group("job_seeker_profiles.location").
		Order("n DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.LocationCount, 0, len(rows))
	for _, rr := range rows {
		loc := "Unknown"
		if rr.Location != nil && *rr.Location != "" {
			loc = *rr.Location
		}
		out = append(out, models.LocationCount{Location: loc, Count: rr.N})
	}
	return out, nil
}

func (r *analyticsRepo) TopJobs(ctx context.Context, employerID string, limit int) ([]models.TopJob, error) {
	type row struct {
		ID    string
		Title string
		N     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("jobs.id AS id, jobs.title AS title, COUNT(applications.id) AS n").
		Joins("LEFT JOIN applications ON applications.job_id = jobs.id").
		Where("jobs.employer_id = ?", employerID).
		Group("jobs.id, jobs.title").
		Order("n DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.TopJob, 0, len(rows))
	for _, rr := range rows {
		out = append(out, models.TopJob{ID: rr.ID, Title: rr.Title, Count: rr.N})
	}
	return out, nil
}
