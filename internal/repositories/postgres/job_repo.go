package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/hireboard/internal/models"
	"github.com/yoockh/hireboard/internal/utils"
	"gorm.io/gorm"
)

// JobFilters narrows the public job listing. Zero values mean "no filter".
type JobFilters struct {
	Search    string
	Location  string
	JobType   models.JobType
	SalaryMin *float64
}

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	DeleteWithApplications(ctx context.Context, jobID string) error
	SearchActive(ctx context.Context, f JobFilters, offset, limit int) ([]models.Job, int64, error)
	ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
	ListActiveByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
	ApplicationCounts(ctx context.Context, employerID string) (map[string]int64, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

func (r *jobRepo) Update(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

// DeleteWithApplications removes the job and every application against it in
// one transaction. The cascade is explicit rather than a foreign-key action.
func (r *jobRepo) DeleteWithApplications(ctx context.Context, jobID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", jobID).Delete(&models.Job{}).Error
	})
}

func (r *jobRepo) SearchActive(ctx context.Context, f JobFilters, offset, limit int) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("is_active = ?", true)

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR company_name LIKE ? OR description LIKE ?", like, like, like)
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.SalaryMin != nil {
		q = q.Where("salary_min >= ?", *f.SalaryMin)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *jobRepo) ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepo) ListActiveByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("employer_id = ? AND is_active = ?", employerID, true).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// ApplicationCounts returns application totals keyed by job id for every job
// the employer owns.
func (r *jobRepo) ApplicationCounts(ctx context.Context, employerID string) (map[string]int64, error) {
	type row struct {
		JobID string
		N     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("applications.job_id AS job_id, COUNT(*) AS n").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID).
		Group("applications.job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.JobID] = r.N
	}
	return out, nil
}
