package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/yoockh/hireboard/internal/models"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/storage"
	"github.com/yoockh/hireboard/internal/utils"
	"github.com/yoockh/hireboard/internal/validation"
)

// AccountInput carries the account-level fields that may be edited together
// with a profile.
type AccountInput struct {
	Username string
	Email    string
}

type ProfileService interface {
	Get(ctx context.Context, callerID string, role models.UserRole) (*models.Profile, error)
	UpsertEmployer(ctx context.Context, callerID string, p *models.EmployerProfile) (*models.EmployerProfile, error)
	UpsertSeeker(ctx context.Context, callerID string, p *models.JobSeekerProfile) (*models.JobSeekerProfile, error)
	UpdateEmployerWithAccount(ctx context.Context, callerID string, acct AccountInput, p *models.EmployerProfile) (*models.EmployerProfile, error)
	UpdateSeekerWithAccount(ctx context.Context, callerID string, acct AccountInput, p *models.JobSeekerProfile) (*models.JobSeekerProfile, error)
	EmployerDetail(ctx context.Context, userID string) (*models.EmployerProfile, []models.Job, error)
	SeekerDetail(ctx context.Context, userID string) (*models.JobSeekerProfile, error)
	AttachResume(ctx context.Context, callerID, fileName, mimeType string, r io.Reader) (*models.JobSeekerProfile, error)
	AttachPicture(ctx context.Context, callerID, fileName, mimeType string, r io.Reader) (*models.JobSeekerProfile, error)
	AttachLogo(ctx context.Context, callerID, fileName, mimeType string, r io.Reader) (*models.EmployerProfile, error)
}

type profileService struct {
	users    pgrepo.UserRepository
	profiles pgrepo.ProfileRepository
	jobs     pgrepo.JobRepository
	uploader storage.Uploader
}

func NewProfileService(users pgrepo.UserRepository, profiles pgrepo.ProfileRepository, jobs pgrepo.JobRepository, uploader storage.Uploader) ProfileService {
	return &profileService{users: users, profiles: profiles, jobs: jobs, uploader: uploader}
}

// requireRole loads the caller and hides the mismatch behind a not-found, so
// one role's edit surface is invisible to the other.
func (s *profileService) requireRole(ctx context.Context, op, callerID string, role models.UserRole) (*models.User, error) {
	if callerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	u, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "unknown account", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load account", err)
	}
	if u.Role != role {
		return nil, utils.E(utils.CodeNotFound, op, "not found", nil)
	}
	return u, nil
}

func (s *profileService) Get(ctx context.Context, callerID string, role models.UserRole) (*models.Profile, error) {
	const op = "ProfileService.Get"

	if callerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	switch role {
	case models.RoleEmployer:
		p, err := s.profiles.GetEmployer(ctx, callerID)
		if err != nil {
			return nil, s.wrapGet(op, err)
		}
		return &models.Profile{Role: role, Employer: p}, nil
	case models.RoleJobSeeker:
		p, err := s.profiles.GetSeeker(ctx, callerID)
		if err != nil {
			return nil, s.wrapGet(op, err)
		}
		return &models.Profile{Role: role, Seeker: p}, nil
	default:
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown role", nil)
	}
}

func (s *profileService) wrapGet(op string, err error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "profile not found", err)
	}
	return utils.E(utils.CodeInternal, op, "failed to get profile", err)
}

func validateEmployerProfile(p *models.EmployerProfile) []utils.FieldError {
	return validation.Collect(
		validation.Required("company_name", p.CompanyName),
		validation.MaxLen("company_name", p.CompanyName, 200),
		validation.Required("company_description", p.CompanyDescription),
		validation.Required("location", p.Location),
		validation.Required("contact_email", p.ContactEmail),
		validation.Email("contact_email", p.ContactEmail),
		validation.URL("website", p.Website),
	)
}

func validateSeekerProfile(p *models.JobSeekerProfile) []utils.FieldError {
	return validation.Collect(
		validation.Required("full_name", p.FullName),
		validation.MaxLen("full_name", p.FullName, 200),
		validation.Required("skills", p.Skills),
		validation.URL("linkedin_url", p.LinkedinURL),
		validation.URL("portfolio_url", p.PortfolioURL),
	)
}

func (s *profileService) UpsertEmployer(ctx context.Context, callerID string, p *models.EmployerProfile) (*models.EmployerProfile, error) {
	const op = "ProfileService.UpsertEmployer"

	if _, err := s.requireRole(ctx, op, callerID, models.RoleEmployer); err != nil {
		return nil, err
	}
	if fields := validateEmployerProfile(p); len(fields) > 0 {
		return nil, utils.EFields(op, fields)
	}

	p.UserID = callerID
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.profiles.UpsertEmployer(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}
	return p, nil
}

func (s *profileService) UpsertSeeker(ctx context.Context, callerID string, p *models.JobSeekerProfile) (*models.JobSeekerProfile, error) {
	const op = "ProfileService.UpsertSeeker"

	if _, err := s.requireRole(ctx, op, callerID, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	if fields := validateSeekerProfile(p); len(fields) > 0 {
		return nil, utils.EFields(op, fields)
	}

	p.UserID = callerID
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.profiles.UpsertSeeker(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}
	return p, nil
}

// checkAccountInput validates the edited account fields and their uniqueness
// against other accounts.
func (s *profileService) checkAccountInput(ctx context.Context, op string, u *models.User, acct AccountInput) error {
	fields := validation.Collect(
		validation.Required("username", acct.Username),
		validation.Username("username", acct.Username),
		validation.Required("email", acct.Email),
		validation.Email("email", acct.Email),
	)
	if len(fields) > 0 {
		return utils.EFields(op, fields)
	}

	if acct.Username != u.Username {
		taken, err := s.users.UsernameTaken(ctx, acct.Username)
		if err != nil {
			return utils.E(utils.CodeInternal, op, "failed to check username", err)
		}
		if taken {
			return utils.EFields(op, []utils.FieldError{{Field: "username", Message: "is already taken"}})
		}
	}
	if acct.Email != u.Email {
		taken, err := s.users.EmailTaken(ctx, acct.Email)
		if err != nil {
			return utils.E(utils.CodeInternal, op, "failed to check email", err)
		}
		if taken {
			return utils.EFields(op, []utils.FieldError{{Field: "email", Message: "is already taken"}})
		}
	}
	return nil
}

func (s *profileService) UpdateEmployerWithAccount(ctx context.Context, callerID string, acct AccountInput, p *models.EmployerProfile) (*models.EmployerProfile, error) {
	const op = "ProfileService.UpdateEmployerWithAccount"

	u, err := s.requireRole(ctx, op, callerID, models.RoleEmployer)
	if err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetEmployer(ctx, callerID)
	if err != nil {
		return nil, s.wrapGet(op, err)
	}

	if err := s.checkAccountInput(ctx, op, u, acct); err != nil {
		return nil, err
	}
	if fields := validateEmployerProfile(p); len(fields) > 0 {
		return nil, utils.EFields(op, fields)
	}

	now := time.Now().UTC()
	u.Username = acct.Username
	u.Email = acct.Email
	u.UpdatedAt = now

	p.UserID = callerID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = now

	if err := s.profiles.SaveEmployerWithAccount(ctx, u, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save account and profile", err)
	}
	return p, nil
}

func (s *profileService) UpdateSeekerWithAccount(ctx context.Context, callerID string, acct AccountInput, p *models.JobSeekerProfile) (*models.JobSeekerProfile, error) {
	const op = "ProfileService.UpdateSeekerWithAccount"

	u, err := s.requireRole(ctx, op, callerID, models.RoleJobSeeker)
	if err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetSeeker(ctx, callerID)
	if err != nil {
		return nil, s.wrapGet(op, err)
	}

	if err := s.checkAccountInput(ctx, op, u, acct); err != nil {
		return nil, err
	}
	if fields := validateSeekerProfile(p); len(fields) > 0 {
		return nil, utils.EFields(op, fields)
	}

	now := time.Now().UTC()
	u.Username = acct.Username
	u.Email = acct.Email
	u.UpdatedAt = now

	p.UserID = callerID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = now

	if err := s.profiles.SaveSeekerWithAccount(ctx, u, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save account and profile", err)
	}
	return p, nil
}

// EmployerDetail is the public company page: the profile plus its active jobs.
func (s *profileService) EmployerDetail(ctx context.Context, userID string) (*models.EmployerProfile, []models.Job, error) {
	const op = "ProfileService.EmployerDetail"

	p, err := s.profiles.GetEmployer(ctx, userID)
	if err != nil {
		return nil, nil, s.wrapGet(op, err)
	}
	jobs, err := s.jobs.ListActiveByEmployer(ctx, userID)
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return p, jobs, nil
}

func (s *profileService) SeekerDetail(ctx context.Context, userID string) (*models.JobSeekerProfile, error) {
	const op = "ProfileService.SeekerDetail"

	p, err := s.profiles.GetSeeker(ctx, userID)
	if err != nil {
		return nil, s.wrapGet(op, err)
	}
	return p, nil
}
