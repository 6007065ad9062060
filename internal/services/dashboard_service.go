package services

import (
	"context"
	"errors"

	"github.com/yoockh/hireboard/internal/models"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/utils"
)

const recentApplications = 5

type EmployerDashboard struct {
	Profile            *models.EmployerProfile `json:"profile"`
	Jobs               []JobWithCount          `json:"jobs"`
	RecentApplications []models.Application    `json:"recent_applications"`
	TotalJobs          int                     `json:"total_jobs"`
	ActiveJobs         int                     `json:"active_jobs"`
	TotalApplications  int64                   `json:"total_applications"`
}

type SeekerDashboard struct {
	Profile           *models.JobSeekerProfile `json:"profile"`
	Applications      []models.Application     `json:"applications"`
	TotalApplications int64                    `json:"total_applications"`
	Pending           int64                    `json:"pending_applications"`
	Accepted          int64                    `json:"accepted_applications"`
}

type DashboardService interface {
	Employer(ctx context.Context, callerID string) (*EmployerDashboard, error)
	Seeker(ctx context.Context, callerID string) (*SeekerDashboard, error)
}

type dashboardService struct {
	profiles pgrepo.ProfileRepository
	jobs     pgrepo.JobRepository
	apps     pgrepo.ApplicationRepository
}

func NewDashboardService(profiles pgrepo.ProfileRepository, jobs pgrepo.JobRepository, apps pgrepo.ApplicationRepository) DashboardService {
	return &dashboardService{profiles: profiles, jobs: jobs, apps: apps}
}

func (s *dashboardService) Employer(ctx context.Context, callerID string) (*EmployerDashboard, error) {
	const op = "DashboardService.Employer"

	if callerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	profile, err := s.profiles.GetEmployer(ctx, callerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "employer profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}

	jobs, err := s.jobs.ListByEmployer(ctx, callerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	counts, err := s.jobs.ApplicationCounts(ctx, callerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}
	recent, err := s.apps.RecentForEmployer(ctx, callerID, recentApplications)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load recent applications", err)
	}

	d := &EmployerDashboard{
		Profile:            profile,
		Jobs:               make([]JobWithCount, 0, len(jobs)),
		RecentApplications: recent,
		TotalJobs:          len(jobs),
	}
	for _, j := range jobs {
		if j.IsActive {
			d.ActiveJobs++
		}
		d.TotalApplications += counts[j.ID]
		d.Jobs = append(d.Jobs, JobWithCount{Job: j, ApplicationsCount: counts[j.ID]})
	}
	return d, nil
}

func (s *dashboardService) Seeker(ctx context.Context, callerID string) (*SeekerDashboard, error) {
	const op = "DashboardService.Seeker"

	if callerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	profile, err := s.profiles.GetSeeker(ctx, callerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job seeker profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}

	apps, total, err := s.apps.ListByApplicant(ctx, callerID, 0, PageSize)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	stripNotes(apps)
	counts, err := s.apps.CountsByStatusForApplicant(ctx, callerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}

	return &SeekerDashboard{
		Profile:           profile,
		Applications:      apps,
		TotalApplications: total,
		Pending:           counts.Pending,
		Accepted:          counts.Accepted,
	}, nil
}
