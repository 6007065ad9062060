package services

import (
	"context"
	"errors"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/hireboard/internal/models"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	users    pgrepo.UserRepository
	profiles pgrepo.ProfileRepository
	jobs     pgrepo.JobRepository
	apps     pgrepo.ApplicationRepository

	auth         AuthService
	profile      ProfileService
	job          JobService
	application  ApplicationService
	dashboard    DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.EmployerProfile{},
		&models.JobSeekerProfile{},
		&models.Job{},
		&models.Application{},
	))

	env := &testEnv{
		db:       db,
		users:    pgrepo.NewUserRepo(db),
		profiles: pgrepo.NewProfileRepo(db),
		jobs:     pgrepo.NewJobRepo(db),
		apps:     pgrepo.NewApplicationRepo(db),
	}
	env.auth = NewAuthService(env.users, "test-secret", time.Hour)
	env.profile = NewProfileService(env.users, env.profiles, env.jobs, nil)
	env.job = NewJobService(env.jobs, env.apps, env.profiles, nil)
	env.application = NewApplicationService(env.apps, env.jobs, env.profiles, nil, nil)
	env.dashboard = NewDashboardService(env.profiles, env.jobs, env.apps)
	return env
}

func (e *testEnv) registerEmployer(t *testing.T, username, company string) *models.User {
	t.Helper()
	ctx := context.Background()
	u, _, err := e.auth.Register(ctx, RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "Password123",
		Role:     models.RoleEmployer,
	})
	require.NoError(t, err)
	_, err = e.profile.UpsertEmployer(ctx, u.ID, &models.EmployerProfile{
		CompanyName:        company,
		CompanyDescription: "we hire",
		Location:           "Berlin",
		ContactEmail:       username + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) registerSeeker(t *testing.T, username, location string) *models.User {
	t.Helper()
	ctx := context.Background()
	u, _, err := e.auth.Register(ctx, RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "Password123",
		Role:     models.RoleJobSeeker,
	})
	require.NoError(t, err)
	_, err = e.profile.UpsertSeeker(ctx, u.ID, &models.JobSeekerProfile{
		FullName: username,
		Location: location,
		Skills:   "go, sql",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) postJob(t *testing.T, employerID, title string) *models.Job {
	t.Helper()
	j, err := e.job.Create(context.Background(), employerID, JobInput{
		Title:        title,
		Description:  "do things",
		Requirements: "be good",
		Location:     "Berlin",
		JobType:      models.JobTypeFullTime,
	})
	require.NoError(t, err)
	return j
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.auth.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "Password123", Role: models.RoleEmployer,
	})
	require.NoError(t, err)

	_, _, err = env.auth.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice2@example.com", Password: "Password123", Role: models.RoleJobSeeker,
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	var ae *utils.AppError
	require.True(t, errors.As(err, &ae))
	require.Len(t, ae.Fields, 1)
	assert.Equal(t, "username", ae.Fields[0].Field)
}

func TestRegister_WeakPassword(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Register(context.Background(), RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "short", Role: models.RoleJobSeeker,
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.registerSeeker(t, "bob", "Hamburg")

	_, token, err := env.auth.Login(ctx, "bob", "Password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = env.auth.Login(ctx, "bob", "WrongPassword1")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, _, err = env.auth.Login(ctx, "ghost", "Password123")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestCreateJob_RequiresEmployerProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	carol, _, err := env.auth.Register(ctx, RegisterInput{
		Username: "carol", Email: "carol@example.com", Password: "Password123", Role: models.RoleEmployer,
	})
	require.NoError(t, err)

	_, err = env.job.Create(ctx, carol.ID, JobInput{
		Title: "T", Description: "D", Requirements: "R", Location: "L", JobType: models.JobTypeFullTime,
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	var count int64
	require.NoError(t, env.db.Model(&models.Job{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateJob_SnapshotsCompanyName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	job := env.postJob(t, alice.ID, "Engineer")
	assert.Equal(t, "Acme", job.CompanyName)

	// renaming the company later does not touch existing jobs
	_, err := env.profile.UpsertEmployer(ctx, alice.ID, &models.EmployerProfile{
		CompanyName:        "Acme GmbH",
		CompanyDescription: "we hire",
		Location:           "Berlin",
		ContactEmail:       "alice@example.com",
	})
	require.NoError(t, err)

	got, err := env.jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
}

func TestEditDeleteJob_NonOwnerSeesNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	eve := env.registerEmployer(t, "eve", "Evil Corp")
	job := env.postJob(t, alice.ID, "Engineer")

	_, err := env.job.Edit(ctx, eve.ID, job.ID, JobInput{
		Title: "Hijacked", Description: "x", Requirements: "x", Location: "x", JobType: models.JobTypeContract,
	})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	err = env.job.Delete(ctx, eve.ID, job.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	got, err := env.jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Title)
}

func TestApply_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	bob := env.registerSeeker(t, "bob", "Hamburg")
	job := env.postJob(t, alice.ID, "Engineer")

	app, err := env.application.Apply(ctx, bob.ID, job.ID, "X")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, "X", app.CoverLetter)

	t.Run("SecondApplyReportsAlreadyApplied", func(t *testing.T) {
		_, err := env.application.Apply(ctx, bob.ID, job.ID, "again")
		require.Error(t, err)
		assert.True(t, utils.IsCode(err, utils.CodeConflict))

		var count int64
		require.NoError(t, env.db.Model(&models.Application{}).
			Where("job_id = ? AND applicant_id = ?", job.ID, bob.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("EmployerAccepts", func(t *testing.T) {
		got, err := env.application.UpdateStatus(ctx, alice.ID, app.ID, models.StatusAccepted, "strong candidate")
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, got.Status)
	})

	t.Run("NonOwnerStatusUpdateIsNotFound", func(t *testing.T) {
		eve := env.registerEmployer(t, "eve", "Evil Corp")
		_, err := env.application.UpdateStatus(ctx, eve.ID, app.ID, models.StatusRejected, "")
		assert.True(t, utils.IsCode(err, utils.CodeNotFound))

		var got models.Application
		require.NoError(t, env.db.Where("id = ?", app.ID).Take(&got).Error)
		assert.Equal(t, models.StatusAccepted, got.Status)
	})

	t.Run("Withdraw", func(t *testing.T) {
		require.NoError(t, env.application.Withdraw(ctx, bob.ID, app.ID))

		var count int64
		require.NoError(t, env.db.Model(&models.Application{}).
			Where("job_id = ? AND applicant_id = ?", job.ID, bob.ID).
			Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func TestApply_Gates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	job := env.postJob(t, alice.ID, "Engineer")

	t.Run("RequiresSeekerProfile", func(t *testing.T) {
		noProfile, _, err := env.auth.Register(ctx, RegisterInput{
			Username: "norbert", Email: "norbert@example.com", Password: "Password123", Role: models.RoleJobSeeker,
		})
		require.NoError(t, err)

		_, err = env.application.Apply(ctx, noProfile.ID, job.ID, "X")
		assert.True(t, utils.IsCode(err, utils.CodeForbidden))
	})

	t.Run("InactiveJobIsNotFound", func(t *testing.T) {
		bob := env.registerSeeker(t, "bob", "Hamburg")
		inactive := false
		_, err := env.job.Edit(ctx, alice.ID, job.ID, JobInput{
			Title: "Engineer", Description: "do things", Requirements: "be good",
			Location: "Berlin", JobType: models.JobTypeFullTime, IsActive: &inactive,
		})
		require.NoError(t, err)

		_, err = env.application.Apply(ctx, bob.ID, job.ID, "X")
		assert.True(t, utils.IsCode(err, utils.CodeNotFound))

		active := true
		_, err = env.job.Edit(ctx, alice.ID, job.ID, JobInput{
			Title: "Engineer", Description: "do things", Requirements: "be good",
			Location: "Berlin", JobType: models.JobTypeFullTime, IsActive: &active,
		})
		require.NoError(t, err)
	})

	t.Run("DeadlinePassed", func(t *testing.T) {
		bob2 := env.registerSeeker(t, "bob2", "Hamburg")
		past := time.Now().UTC().Add(-time.Hour)
		_, err := env.job.Edit(ctx, alice.ID, job.ID, JobInput{
			Title: "Engineer", Description: "do things", Requirements: "be good",
			Location: "Berlin", JobType: models.JobTypeFullTime, Deadline: &past,
		})
		require.NoError(t, err)

		_, err = env.application.Apply(ctx, bob2.ID, job.ID, "X")
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	})

	t.Run("SelfApplicationForbidden", func(t *testing.T) {
		// nothing in the schema stops an owner from having a seeker profile,
		// so the guard has to hold even then
		require.NoError(t, env.db.Create(&models.JobSeekerProfile{
			UserID: alice.ID, FullName: "Alice", Skills: "hiring",
		}).Error)

		own := env.postJob(t, alice.ID, "Self Serve")
		_, err := env.application.Apply(ctx, alice.ID, own.ID, "me")
		assert.True(t, utils.IsCode(err, utils.CodeForbidden))
	})
}

func TestDeleteJob_CascadesApplications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	job := env.postJob(t, alice.ID, "Engineer")

	for _, name := range []string{"seeker1", "seeker2", "seeker3"} {
		seeker := env.registerSeeker(t, name, "Hamburg")
		_, err := env.application.Apply(ctx, seeker.ID, job.ID, "hi")
		require.NoError(t, err)
	}

	require.NoError(t, env.job.Delete(ctx, alice.ID, job.ID))

	var apps int64
	require.NoError(t, env.db.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&apps).Error)
	assert.Equal(t, int64(0), apps)

	_, err := env.job.Get(ctx, job.ID, "")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestListForJob_IncludesStatusCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	job := env.postJob(t, alice.ID, "Engineer")

	s1 := env.registerSeeker(t, "seeker1", "Hamburg")
	s2 := env.registerSeeker(t, "seeker2", "Munich")
	a1, err := env.application.Apply(ctx, s1.ID, job.ID, "hi")
	require.NoError(t, err)
	_, err = env.application.Apply(ctx, s2.ID, job.ID, "hi")
	require.NoError(t, err)
	_, err = env.application.UpdateStatus(ctx, alice.ID, a1.ID, models.StatusReviewed, "")
	require.NoError(t, err)

	page, err := env.application.ListForJob(ctx, alice.ID, job.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, int64(1), page.StatusCounts.Pending)
	assert.Equal(t, int64(1), page.StatusCounts.Reviewed)

	eve := env.registerEmployer(t, "eve", "Evil Corp")
	_, err = env.application.ListForJob(ctx, eve.ID, job.ID, 1)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestApplicationGet_Visibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	bob := env.registerSeeker(t, "bob", "Hamburg")
	mallory := env.registerSeeker(t, "mallory", "Nowhere")
	job := env.postJob(t, alice.ID, "Engineer")

	app, err := env.application.Apply(ctx, bob.ID, job.ID, "X")
	require.NoError(t, err)
	_, err = env.application.UpdateStatus(ctx, alice.ID, app.ID, models.StatusReviewed, "internal note")
	require.NoError(t, err)

	got, err := env.application.Get(ctx, alice.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "internal note", got.Notes)

	got, err = env.application.Get(ctx, bob.ID, app.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes)

	_, err = env.application.Get(ctx, mallory.ID, app.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	t.Run("ListForApplicantStripsNotes", func(t *testing.T) {
		page, err := env.application.ListForApplicant(ctx, bob.ID, 1)
		require.NoError(t, err)
		require.Len(t, page.Applications, 1)
		assert.Empty(t, page.Applications[0].Notes)
	})

	t.Run("SeekerDashboardStripsNotes", func(t *testing.T) {
		sd, err := env.dashboard.Seeker(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, sd.Applications, 1)
		assert.Empty(t, sd.Applications[0].Notes)
	})

	t.Run("EmployerListKeepsNotes", func(t *testing.T) {
		page, err := env.application.ListForJob(ctx, alice.ID, job.ID, 1)
		require.NoError(t, err)
		require.Len(t, page.Applications, 1)
		assert.Equal(t, "internal note", page.Applications[0].Notes)
	})
}

func TestObjectNameKeepsExtension(t *testing.T) {
	name := objectName("resumes", "u1", "My CV.PDF")
	assert.True(t, strings.HasPrefix(name, "resumes/u1/"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	// hostile or missing extensions are dropped, never embedded
	assert.False(t, strings.Contains(objectName("resumes", "u1", `..\..\evil`), `\`))
	noExt := objectName("profile_pictures", "u1", "headshot")
	assert.False(t, strings.Contains(path.Base(noExt), "."))
}

type stubSigner struct{ base string }

func (s stubSigner) SignedGetURL(_ context.Context, object string, _ time.Duration) (string, error) {
	return s.base + object, nil
}

func TestResumeURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.application = NewApplicationService(env.apps, env.jobs, env.profiles, stubSigner{base: "https://signed.example/"}, nil)

	alice := env.registerEmployer(t, "alice", "Acme")
	bob := env.registerSeeker(t, "bob", "Hamburg")
	job := env.postJob(t, alice.ID, "Engineer")

	require.NoError(t, env.db.Model(&models.JobSeekerProfile{}).
		Where("user_id = ?", bob.ID).
		Update("resume", "gs://test-bucket/resumes/bob/cv.pdf").Error)

	app, err := env.application.Apply(ctx, bob.ID, job.ID, "hi")
	require.NoError(t, err)

	t.Run("EmployerGetsSignedURL", func(t *testing.T) {
		url, err := env.application.ResumeURL(ctx, alice.ID, app.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://signed.example/resumes/bob/cv.pdf", url)
	})

	t.Run("ApplicantGetsOwn", func(t *testing.T) {
		_, err := env.application.ResumeURL(ctx, bob.ID, app.ID)
		assert.NoError(t, err)
	})

	t.Run("StrangerSeesNotFound", func(t *testing.T) {
		mallory := env.registerSeeker(t, "mallory", "Nowhere")
		_, err := env.application.ResumeURL(ctx, mallory.ID, app.ID)
		assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	})

	t.Run("NoResumeOnFile", func(t *testing.T) {
		bare := env.registerSeeker(t, "bare_cv", "Hamburg")
		bareApp, err := env.application.Apply(ctx, bare.ID, job.ID, "hi")
		require.NoError(t, err)

		_, err = env.application.ResumeURL(ctx, alice.ID, bareApp.ID)
		assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	})

	t.Run("NoSignerConfigured", func(t *testing.T) {
		unsigned := NewApplicationService(env.apps, env.jobs, env.profiles, nil, nil)
		_, err := unsigned.ResumeURL(ctx, alice.ID, app.ID)
		assert.True(t, utils.IsCode(err, utils.CodeInternal))
	})
}

func TestProfileGet_NotFoundBeforeCreation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, _, err := env.auth.Register(ctx, RegisterInput{
		Username: "fresh", Email: "fresh@example.com", Password: "Password123", Role: models.RoleEmployer,
	})
	require.NoError(t, err)

	_, err = env.profile.Get(ctx, u.ID, models.RoleEmployer)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestProfileUpsert_RoleMismatchIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.registerSeeker(t, "bob", "Hamburg")
	_, err := env.profile.UpsertEmployer(ctx, bob.ID, &models.EmployerProfile{
		CompanyName: "Bob Inc", CompanyDescription: "x", Location: "x", ContactEmail: "bob@example.com",
	})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestUpdateAccountAndProfile_Atomic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	taken := env.registerEmployer(t, "taken", "Other")

	// duplicate username rejected before anything is written
	_, err := env.profile.UpdateEmployerWithAccount(ctx, alice.ID,
		AccountInput{Username: taken.Username, Email: "alice@example.com"},
		&models.EmployerProfile{
			CompanyName: "Changed", CompanyDescription: "x", Location: "x", ContactEmail: "alice@example.com",
		})
	require.Error(t, err)

	p, err := env.profiles.GetEmployer(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.CompanyName)

	// valid combined edit lands on both rows
	_, err = env.profile.UpdateEmployerWithAccount(ctx, alice.ID,
		AccountInput{Username: "alice_neu", Email: "alice@example.com"},
		&models.EmployerProfile{
			CompanyName: "Acme Neu", CompanyDescription: "x", Location: "x", ContactEmail: "alice@example.com",
		})
	require.NoError(t, err)

	u, err := env.users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_neu", u.Username)

	p, err = env.profiles.GetEmployer(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Neu", p.CompanyName)
}

func TestDashboards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerEmployer(t, "alice", "Acme")
	bob := env.registerSeeker(t, "bob", "Hamburg")

	j1 := env.postJob(t, alice.ID, "Engineer")
	env.postJob(t, alice.ID, "Designer")
	_, err := env.application.Apply(ctx, bob.ID, j1.ID, "hi")
	require.NoError(t, err)

	ed, err := env.dashboard.Employer(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, ed.TotalJobs)
	assert.Equal(t, 2, ed.ActiveJobs)
	assert.Equal(t, int64(1), ed.TotalApplications)
	require.Len(t, ed.RecentApplications, 1)

	sd, err := env.dashboard.Seeker(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sd.TotalApplications)
	assert.Equal(t, int64(1), sd.Pending)

	_, err = env.dashboard.Employer(ctx, bob.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
