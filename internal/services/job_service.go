package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/hireboard/internal/cache"
	"github.com/yoockh/hireboard/internal/models"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/utils"
	"github.com/yoockh/hireboard/internal/validation"
)

// PageSize is the fixed page length for job and application listings.
const PageSize = 10

type JobInput struct {
	Title        string
	Description  string
	Requirements string
	Location     string
	SalaryMin    *float64
	SalaryMax    *float64
	JobType      models.JobType
	IsActive     *bool
	Deadline     *time.Time
}

type JobPage struct {
	Jobs       []models.Job `json:"jobs"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

type JobDetail struct {
	Job            models.Job `json:"job"`
	UserHasApplied bool       `json:"user_has_applied"`
}

type JobWithCount struct {
	models.Job
	ApplicationsCount int64 `json:"applications_count"`
}

type JobService interface {
	Create(ctx context.Context, employerID string, in JobInput) (*models.Job, error)
	Edit(ctx context.Context, employerID, jobID string, in JobInput) (*models.Job, error)
	Delete(ctx context.Context, employerID, jobID string) error
	ListActive(ctx context.Context, f pgrepo.JobFilters, page int) (*JobPage, error)
	Get(ctx context.Context, jobID, callerID string) (*JobDetail, error)
	ListMine(ctx context.Context, employerID string) ([]JobWithCount, error)
}

type jobService struct {
	jobs     pgrepo.JobRepository
	apps     pgrepo.ApplicationRepository
	profiles pgrepo.ProfileRepository
	cache    cache.Cache
}

func NewJobService(jobs pgrepo.JobRepository, apps pgrepo.ApplicationRepository, profiles pgrepo.ProfileRepository, c cache.Cache) JobService {
	return &jobService{jobs: jobs, apps: apps, profiles: profiles, cache: c}
}

func validateJobInput(in JobInput) []utils.FieldError {
	fields := validation.Collect(
		validation.Required("title", in.Title),
		validation.MaxLen("title", in.Title, 200),
		validation.Required("description", in.Description),
		validation.Required("requirements", in.Requirements),
		validation.Required("location", in.Location),
	)
	if !in.JobType.Valid() {
		fields = append(fields, utils.FieldError{Field: "job_type", Message: "must be one of full_time, part_time, contract, internship, freelance"})
	}
	return fields
}

func (s *jobService) Create(ctx context.Context, employerID string, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	if employerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	profile, err := s.profiles.GetEmployer(ctx, employerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeForbidden, op, "employer profile required", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load employer profile", err)
	}

	if fields := validateJobInput(in); len(fields) > 0 {
		return nil, utils.EFields(op, fields)
	}

	now := time.Now().UTC()
	j := &models.Job{
		ID:           uuid.NewString(),
		EmployerID:   employerID,
		Title:        in.Title,
		// snapshot, not kept in sync with later profile edits
		CompanyName:  profile.CompanyName,
		Description:  in.Description,
		Requirements: in.Requirements,
		Location:     in.Location,
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		JobType:      in.JobType,
		IsActive:     true,
		Deadline:     in.Deadline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	return j, nil
}

// ownedJob loads a job and conflates non-ownership with absence.
func (s *jobService) ownedJob(ctx context.Context, op, employerID, jobID string) (*models.Job, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	if j.EmployerID != employerID {
		return nil, utils.E(utils.CodeNotFound, op, "job not found", nil)
	}
	return j, nil
}

func (s *jobService) Edit(ctx context.Context, employerID, jobID string, in JobInput) (*models.Job, error) {
	const op = "JobService.Edit"

	if employerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	j, err := s.ownedJob(ctx, op, employerID, jobID)
	if err != nil {
		return nil, err
	}

	if fields := validateJobInput(in); len(fields) > 0 {
		return nil, utils.EFields(op, fields)
	}

	j.Title = in.Title
	j.Description = in.Description
	j.Requirements = in.Requirements
	j.Location = in.Location
	j.SalaryMin = in.SalaryMin
	j.SalaryMax = in.SalaryMax
	j.JobType = in.JobType
	j.Deadline = in.Deadline
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}
	j.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	return j, nil
}

func (s *jobService) Delete(ctx context.Context, employerID, jobID string) error {
	const op = "JobService.Delete"

	if employerID == "" {
		return utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if _, err := s.ownedJob(ctx, op, employerID, jobID); err != nil {
		return err
	}

	if err := s.jobs.DeleteWithApplications(ctx, jobID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, cache.AnalyticsKey(employerID))
	}
	return nil
}

func (s *jobService) ListActive(ctx context.Context, f pgrepo.JobFilters, page int) (*JobPage, error) {
	const op = "JobService.ListActive"

	if page < 1 {
		page = 1
	}
	jobs, total, err := s.jobs.SearchActive(ctx, f, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return &JobPage{
		Jobs:       jobs,
		Total:      total,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns an active job's detail. For an authenticated caller it also
// reports whether that caller has already applied.
func (s *jobService) Get(ctx context.Context, jobID, callerID string) (*JobDetail, error) {
	const op = "JobService.Get"

	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	if !j.IsActive && j.EmployerID != callerID {
		return nil, utils.E(utils.CodeNotFound, op, "job not found", nil)
	}

	detail := &JobDetail{Job: *j}
	if callerID != "" {
		applied, err := s.apps.ExistsFor(ctx, jobID, callerID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to check application", err)
		}
		detail.UserHasApplied = applied
	}
	return detail, nil
}

func (s *jobService) ListMine(ctx context.Context, employerID string) ([]JobWithCount, error) {
	const op = "JobService.ListMine"

	if employerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	jobs, err := s.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	counts, err := s.jobs.ApplicationCounts(ctx, employerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}

	out := make([]JobWithCount, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobWithCount{Job: j, ApplicationsCount: counts[j.ID]})
	}
	return out, nil
}
