// Package seed fills a database with demo accounts, jobs and applications.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/yoockh/hireboard/internal/models"
	"github.com/yoockh/hireboard/internal/utils"
	"gorm.io/gorm"
)

const demoPassword = "Password123"

var jobTypes = []models.JobType{
	models.JobTypeFullTime,
	models.JobTypePartTime,
	models.JobTypeContract,
	models.JobTypeInternship,
	models.JobTypeFreelance,
}

var statuses = []models.ApplicationStatus{
	models.StatusPending,
	models.StatusReviewed,
	models.StatusAccepted,
	models.StatusRejected,
}

type Options struct {
	Employers    int
	Seekers      int
	JobsPer      int
	Applications int
}

func DefaultOptions() Options {
	return Options{Employers: 5, Seekers: 20, JobsPer: 4, Applications: 60}
}

// Run inserts the demo graph. All demo accounts share the same password so
// the board is easy to poke at locally.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	hash, err := utils.HashPassword(demoPassword)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	employers := make([]models.User, 0, opts.Employers)
	for i := 0; i < opts.Employers; i++ {
		u := models.User{
			ID:           uuid.NewString(),
			Username:     fmt.Sprintf("employer_%02d", i+1),
			Email:        fmt.Sprintf("employer%02d@example.com", i+1),
			PasswordHash: hash,
			Role:         models.RoleEmployer,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			return err
		}
		p := models.EmployerProfile{
			UserID:             u.ID,
			CompanyName:        gofakeit.Company(),
			CompanyDescription: gofakeit.Paragraph(1, 3, 12, " "),
			Location:           gofakeit.City(),
			Website:            "https://" + gofakeit.DomainName(),
			ContactEmail:       u.Email,
			PhoneNumber:        gofakeit.Phone(),
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return err
		}
		employers = append(employers, u)
	}

	seekers := make([]models.User, 0, opts.Seekers)
	for i := 0; i < opts.Seekers; i++ {
		u := models.User{
			ID:           uuid.NewString(),
			Username:     fmt.Sprintf("seeker_%02d", i+1),
			Email:        fmt.Sprintf("seeker%02d@example.com", i+1),
			PasswordHash: hash,
			Role:         models.RoleJobSeeker,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			return err
		}
		skills := []string{gofakeit.ProgrammingLanguage(), gofakeit.ProgrammingLanguage(), gofakeit.HackerNoun()}
		p := models.JobSeekerProfile{
			UserID:      u.ID,
			FullName:    gofakeit.Name(),
			PhoneNumber: gofakeit.Phone(),
			Location:    gofakeit.City(),
			Skills:      strings.Join(skills, ", "),
			Experience:  gofakeit.Paragraph(1, 2, 10, " "),
			Education:   gofakeit.Paragraph(1, 1, 10, " "),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return err
		}
		seekers = append(seekers, u)
	}

	var jobs []models.Job
	for _, e := range employers {
		var company models.EmployerProfile
		if err := db.WithContext(ctx).Where("user_id = ?", e.ID).Take(&company).Error; err != nil {
			return err
		}
		for i := 0; i < opts.JobsPer; i++ {
			min := float64(40000 + rand.Intn(60000))
			max := min + float64(rand.Intn(40000))
			createdAt := now.Add(-time.Duration(rand.Intn(29*24)) * time.Hour)
			j := models.Job{
				ID:           uuid.NewString(),
				EmployerID:   e.ID,
				Title:        gofakeit.JobTitle(),
				CompanyName:  company.CompanyName,
				Description:  gofakeit.Paragraph(2, 3, 12, " "),
				Requirements: gofakeit.Paragraph(1, 3, 10, " "),
				Location:     gofakeit.City(),
				SalaryMin:    &min,
				SalaryMax:    &max,
				JobType:      jobTypes[rand.Intn(len(jobTypes))],
				IsActive:     rand.Intn(10) > 1,
				CreatedAt:    createdAt,
				UpdatedAt:    createdAt,
			}
			if err := db.WithContext(ctx).Create(&j).Error; err != nil {
				return err
			}
			jobs = append(jobs, j)
		}
	}

	// One application per (job, seeker) pair at most.
	type pair struct{ job, seeker string }
	seen := map[pair]struct{}{}
	created := 0
	for attempts := 0; created < opts.Applications && attempts < opts.Applications*10; attempts++ {
		j := jobs[rand.Intn(len(jobs))]
		s := seekers[rand.Intn(len(seekers))]
		k := pair{j.ID, s.ID}
		if _, dup := seen[k]; dup || !j.IsActive {
			continue
		}
		seen[k] = struct{}{}

		appliedAt := j.CreatedAt.Add(time.Duration(rand.Intn(72)) * time.Hour)
		a := models.Application{
			ID:          uuid.NewString(),
			JobID:       j.ID,
			ApplicantID: s.ID,
			CoverLetter: gofakeit.Paragraph(1, 3, 15, " "),
			Status:      statuses[rand.Intn(len(statuses))],
			AppliedAt:   appliedAt,
			UpdatedAt:   appliedAt,
		}
		if err := db.WithContext(ctx).Create(&a).Error; err != nil {
			return err
		}
		created++
	}

	return nil
}
