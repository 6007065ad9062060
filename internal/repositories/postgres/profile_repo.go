package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/hireboard/internal/models"
	"github.com/yoockh/hireboard/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	GetEmployer(ctx context.Context, userID string) (*models.EmployerProfile, error)
	GetSeeker(ctx context.Context, userID string) (*models.JobSeekerProfile, error)
	UpsertEmployer(ctx context.Context, p *models.EmployerProfile) error
	UpsertSeeker(ctx context.Context, p *models.JobSeekerProfile) error
	SaveEmployerWithAccount(ctx context.Context, u *models.User, p *models.EmployerProfile) error
	SaveSeekerWithAccount(ctx context.Context, u *models.User, p *models.JobSeekerProfile) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetEmployer(ctx context.Context, userID string) (*models.EmployerProfile, error) {
	var p models.EmployerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) GetSeeker(ctx context.Context, userID string) (*models.JobSeekerProfile, error) {
	var p models.JobSeekerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) UpsertEmployer(ctx context.Context, p *models.EmployerProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"company_name", "company_description", "location", "website",
				"contact_email", "phone_number", "logo", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *profileRepo) UpsertSeeker(ctx context.Context, p *models.JobSeekerProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "phone_number", "location", "resume", "profile_picture",
				"skills", "experience", "education", "linkedin_url", "portfolio_url", "updated_at",
			}),
		}).
		Create(p).Error
}

// SaveEmployerWithAccount commits the account row and the employer profile as
// one unit; neither update is observable without the other.
func (r *profileRepo) SaveEmployerWithAccount(ctx context.Context, u *models.User, p *models.EmployerProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		return tx.Save(p).Error
	})
}

func (r *profileRepo) SaveSeekerWithAccount(ctx context.Context, u *models.User, p *models.JobSeekerProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		return tx.Save(p).Error
	})
}
