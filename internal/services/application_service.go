package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/hireboard/internal/cache"
	"github.com/yoockh/hireboard/internal/models"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/storage"
	"github.com/yoockh/hireboard/internal/utils"
)

type ApplicationPage struct {
	Applications []models.Application `json:"applications"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
}

// JobApplications is an employer's view of one job's applications, with the
// per-status breakdown computed alongside the page.
type JobApplications struct {
	Job          models.Job           `json:"job"`
	Applications []models.Application `json:"applications"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	StatusCounts models.StatusCounts  `json:"status_counts"`
}

type ApplicationService interface {
	Apply(ctx context.Context, applicantID, jobID, coverLetter string) (*models.Application, error)
	UpdateStatus(ctx context.Context, employerID, applicationID string, status models.ApplicationStatus, notes string) (*models.Application, error)
	Withdraw(ctx context.Context, applicantID, applicationID string) error
	ListForJob(ctx context.Context, employerID, jobID string, page int) (*JobApplications, error)
	ListForApplicant(ctx context.Context, applicantID string, page int) (*ApplicationPage, error)
	Get(ctx context.Context, callerID, applicationID string) (*models.Application, error)
	ResumeURL(ctx context.Context, callerID, applicationID string) (string, error)
}

type applicationService struct {
	apps     pgrepo.ApplicationRepository
	jobs     pgrepo.JobRepository
	profiles pgrepo.ProfileRepository
	signer   storage.Signer
	cache    cache.Cache
}

func NewApplicationService(apps pgrepo.ApplicationRepository, jobs pgrepo.JobRepository, profiles pgrepo.ProfileRepository, signer storage.Signer, c cache.Cache) ApplicationService {
	return &applicationService{apps: apps, jobs: jobs, profiles: profiles, signer: signer, cache: c}
}

func (s *applicationService) invalidateAnalytics(ctx context.Context, employerID string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, cache.AnalyticsKey(employerID))
	}
}

func (s *applicationService) Apply(ctx context.Context, applicantID, jobID, coverLetter string) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if applicantID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	if _, err := s.profiles.GetSeeker(ctx, applicantID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeForbidden, op, "job seeker profile required", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	if !job.IsActive {
		return nil, utils.E(utils.CodeNotFound, op, "job not found", nil)
	}
	if job.EmployerID == applicantID {
		return nil, utils.E(utils.CodeForbidden, op, "you cannot apply to your own job", nil)
	}
	if job.IsDeadlinePassed(time.Now().UTC()) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "the application deadline for this job has passed", nil)
	}
	if coverLetter == "" {
		return nil, utils.EFields(op, []utils.FieldError{{Field: "cover_letter", Message: "is required"}})
	}

	exists, err := s.apps.ExistsFor(ctx, jobID, applicantID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing application", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "you have already applied for this job", nil)
	}

	now := time.Now().UTC()
	a := &models.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: applicantID,
		CoverLetter: coverLetter,
		Status:      models.StatusPending,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.apps.Create(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}

	s.invalidateAnalytics(ctx, job.EmployerID)
	return a, nil
}

// UpdateStatus overwrites status and notes. Any of the four statuses may be
// set from any other; no transition graph is enforced.
func (s *applicationService) UpdateStatus(ctx context.Context, employerID, applicationID string, status models.ApplicationStatus, notes string) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if employerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if !status.Valid() {
		return nil, utils.EFields(op, []utils.FieldError{{Field: "status", Message: "must be one of pending, reviewed, accepted, rejected"}})
	}

	a, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	if a.Job == nil || a.Job.EmployerID != employerID {
		return nil, utils.E(utils.CodeNotFound, op, "application not found", nil)
	}

	a.Status = status
	a.Notes = notes
	a.UpdatedAt = time.Now().UTC()
	if err := s.apps.Update(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}

	s.invalidateAnalytics(ctx, employerID)
	return a, nil
}

func (s *applicationService) Withdraw(ctx context.Context, applicantID, applicationID string) error {
	const op = "ApplicationService.Withdraw"

	if applicantID == "" {
		return utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	a, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	if a.ApplicantID != applicantID {
		return utils.E(utils.CodeNotFound, op, "application not found", nil)
	}

	if err := s.apps.Delete(ctx, applicationID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete application", err)
	}
	if a.Job != nil {
		s.invalidateAnalytics(ctx, a.Job.EmployerID)
	}
	return nil
}

func (s *applicationService) ListForJob(ctx context.Context, employerID, jobID string, page int) (*JobApplications, error) {
	const op = "ApplicationService.ListForJob"

	if employerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	if job.EmployerID != employerID {
		return nil, utils.E(utils.CodeNotFound, op, "job not found", nil)
	}

	if page < 1 {
		page = 1
	}
	apps, total, err := s.apps.ListByJob(ctx, jobID, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	counts, err := s.apps.CountsByStatusForJob(ctx, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}

	return &JobApplications{
		Job:          *job,
		Applications: apps,
		Total:        total,
		Page:         page,
		PageSize:     PageSize,
		StatusCounts: counts,
	}, nil
}

func (s *applicationService) ListForApplicant(ctx context.Context, applicantID string, page int) (*ApplicationPage, error) {
	const op = "ApplicationService.ListForApplicant"

	if applicantID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if page < 1 {
		page = 1
	}

	apps, total, err := s.apps.ListByApplicant(ctx, applicantID, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	stripNotes(apps)
	return &ApplicationPage{
		Applications: apps,
		Total:        total,
		Page:         page,
		PageSize:     PageSize,
	}, nil
}

// stripNotes blanks the employer-only annotation before rows leave an
// applicant-facing operation.
func stripNotes(apps []models.Application) {
	for i := range apps {
		apps[i].Notes = ""
	}
}

// Get is visible to the applicant and to the job's employer. Internal notes
// are stripped for the applicant.
func (s *applicationService) Get(ctx context.Context, callerID, applicationID string) (*models.Application, error) {
	const op = "ApplicationService.Get"

	if callerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	a, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	isApplicant := a.ApplicantID == callerID
	isEmployer := a.Job != nil && a.Job.EmployerID == callerID
	if !isApplicant && !isEmployer {
		return nil, utils.E(utils.CodeNotFound, op, "application not found", nil)
	}
	if isApplicant && !isEmployer {
		a.Notes = ""
	}
	return a, nil
}

const resumeURLTTL = 15 * time.Minute

// ResumeURL turns the applicant's stored resume reference into a short-lived
// download URL. Same visibility as Get: the applicant and the job's employer.
func (s *applicationService) ResumeURL(ctx context.Context, callerID, applicationID string) (string, error) {
	const op = "ApplicationService.ResumeURL"

	a, err := s.Get(ctx, callerID, applicationID)
	if err != nil {
		return "", err
	}

	p, err := s.profiles.GetSeeker(ctx, a.ApplicantID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}
	if p.Resume == "" {
		return "", utils.E(utils.CodeNotFound, op, "resume not found", nil)
	}

	if s.signer == nil {
		return "", utils.E(utils.CodeInternal, op, "storage is not configured", nil)
	}
	object, ok := storage.ObjectFromRef(p.Resume)
	if !ok {
		return "", utils.E(utils.CodeInternal, op, "malformed resume reference", nil)
	}

	url, err := s.signer.SignedGetURL(ctx, object, resumeURLTTL)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to sign resume url", err)
	}
	return url, nil
}
