package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/hireboard/internal/models"
	"github.com/yoockh/hireboard/internal/utils"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	ExistsFor(ctx context.Context, jobID, applicantID string) (bool, error)
	Update(ctx context.Context, a *models.Application) error
	Delete(ctx context.Context, id string) error
	ListByJob(ctx context.Context, jobID string, offset, limit int) ([]models.Application, int64, error)
	ListByApplicant(ctx context.Context, applicantID string, offset, limit int) ([]models.Application, int64, error)
	CountsByStatusForJob(ctx context.Context, jobID string) (models.StatusCounts, error)
	CountsByStatusForApplicant(ctx context.Context, applicantID string) (models.StatusCounts, error)
	RecentForEmployer(ctx context.Context, employerID string, limit int) ([]models.Application, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) ExistsFor(ctx context.Context, jobID, applicantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepo) Update(ctx context.Context, a *models.Application) error {
	return r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"status":     a.Status,
			"notes":      a.Notes,
			"updated_at": a.UpdatedAt,
		}).Error
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Application{}).Error
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string, offset, limit int) ([]models.Application, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ?", jobID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := q.Order("applied_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error
	return apps, total, err
}

func (r *applicationRepo) ListByApplicant(ctx context.Context, applicantID string, offset, limit int) ([]models.Application, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("applicant_id = ?", applicantID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error
	return apps, total, err
}

func (r *applicationRepo) CountsByStatusForJob(ctx context.Context, jobID string) (models.StatusCounts, error) {
	return r.countsByStatus(ctx, r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ?", jobID))
}

func (r *applicationRepo) CountsByStatusForApplicant(ctx context.Context, applicantID string) (models.StatusCounts, error) {
	return r.countsByStatus(ctx, r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("applicant_id = ?", applicantID))
}

func (r *applicationRepo) countsByStatus(ctx context.Context, q *gorm.DB) (models.StatusCounts, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	if err := q.Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return models.StatusCounts{}, err
	}

	var counts models.StatusCounts
	for _, r := range rows {
		switch models.ApplicationStatus(r.Status) {
		case models.StatusPending:
			counts.Pending = r.N
		case models.StatusReviewed:
			counts.Reviewed = r.N
		case models.StatusAccepted:
			counts.Accepted = r.N
		case models.StatusRejected:
			counts.Rejected = r.N
		}
	}
	return counts, nil
}

func (r *applicationRepo) RecentForEmployer(ctx context.Context, employerID string, limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID).
		Order("applications.applied_at DESC").
		Limit(limit).
		Find(&apps).Error
	return apps, err
}
