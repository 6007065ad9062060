package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/hireboard/internal/models"
	"github.com/yoockh/hireboard/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.EmployerProfile{},
		&models.JobSeekerProfile{},
		&models.Job{},
		&models.Application{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func newUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newJob(t *testing.T, db *gorm.DB, employerID, title string, active bool, createdAt time.Time) *models.Job {
	t.Helper()
	j := &models.Job{
		ID:          uuid.NewString(),
		EmployerID:  employerID,
		Title:       title,
		CompanyName: "Acme",
		Description: "build things",
		Location:    "Berlin",
		JobType:     models.JobTypeFullTime,
		IsActive:    active,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, db.Create(j).Error)
	return j
}

func newApplication(t *testing.T, db *gorm.DB, jobID, applicantID string, status models.ApplicationStatus) *models.Application {
	t.Helper()
	a := &models.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: applicantID,
		CoverLetter: "hello",
		Status:      status,
		AppliedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestUserRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := newUser(t, db, "alice", models.RoleEmployer)

	t.Run("GetByLogin", func(t *testing.T) {
		got, err := repo.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		got, err = repo.GetByLogin(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		_, err = repo.GetByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("Taken", func(t *testing.T) {
		taken, err := repo.UsernameTaken(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.EmailTaken(ctx, "free@example.com")
		require.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestProfileRepo_UpsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	u := newUser(t, db, "carol", models.RoleEmployer)

	p := &models.EmployerProfile{
		UserID:       u.ID,
		CompanyName:  "Initech",
		ContactEmail: "jobs@initech.example",
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.UpsertEmployer(ctx, p))

	p.CompanyName = "Initech GmbH"
	require.NoError(t, repo.UpsertEmployer(ctx, p))

	var count int64
	require.NoError(t, db.Model(&models.EmployerProfile{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetEmployer(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Initech GmbH", got.CompanyName)

	_, err = repo.GetSeeker(ctx, u.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestProfileRepo_SaveWithAccountIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	u := newUser(t, db, "dave", models.RoleJobSeeker)
	p := &models.JobSeekerProfile{UserID: u.ID, FullName: "Dave", Skills: "go"}
	require.NoError(t, repo.UpsertSeeker(ctx, p))

	u.Email = "dave2@example.com"
	p.FullName = "David"
	require.NoError(t, repo.SaveSeekerWithAccount(ctx, u, p))

	var gotUser models.User
	require.NoError(t, db.Where("id = ?", u.ID).Take(&gotUser).Error)
	assert.Equal(t, "dave2@example.com", gotUser.Email)

	gotProfile, err := repo.GetSeeker(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "David", gotProfile.FullName)
}

func TestJobRepo_SearchActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJobRepo(db)
	ctx := context.Background()

	employer := newUser(t, db, "acme", models.RoleEmployer)
	base := time.Now().UTC().Add(-24 * time.Hour)

	older := newJob(t, db, employer.ID, "Backend Engineer", true, base)
	newer := newJob(t, db, employer.ID, "Frontend Engineer", true, base.Add(time.Hour))
	newJob(t, db, employer.ID, "Old Posting", false, base)

	min := 90000.0
	newer.SalaryMin = &min
	newer.Location = "Remote, Europe"
	newer.JobType = models.JobTypeContract
	require.NoError(t, repo.Update(ctx, newer))

	t.Run("OnlyActiveNewestFirst", func(t *testing.T) {
		jobs, total, err := repo.SearchActive(ctx, JobFilters{}, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, jobs, 2)
		assert.Equal(t, newer.ID, jobs[0].ID)
		assert.Equal(t, older.ID, jobs[1].ID)
	})

	t.Run("FreeTextMatch", func(t *testing.T) {
		jobs, total, err := repo.SearchActive(ctx, JobFilters{Search: "Backend"}, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, older.ID, jobs[0].ID)
	})

	t.Run("LocationSubstring", func(t *testing.T) {
		_, total, err := repo.SearchActive(ctx, JobFilters{Location: "Europe"}, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("TypeAndSalary", func(t *testing.T) {
		minFilter := 80000.0
		jobs, total, err := repo.SearchActive(ctx, JobFilters{JobType: models.JobTypeContract, SalaryMin: &minFilter}, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, newer.ID, jobs[0].ID)
	})

	t.Run("Pagination", func(t *testing.T) {
		jobs, total, err := repo.SearchActive(ctx, JobFilters{}, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, jobs, 1)
		assert.Equal(t, older.ID, jobs[0].ID)
	})
}

func TestJobRepo_DeleteWithApplications(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJobRepo(db)
	ctx := context.Background()

	employer := newUser(t, db, "walter", models.RoleEmployer)
	seeker1 := newUser(t, db, "s1", models.RoleJobSeeker)
	seeker2 := newUser(t, db, "s2", models.RoleJobSeeker)
	seeker3 := newUser(t, db, "s3", models.RoleJobSeeker)

	job := newJob(t, db, employer.ID, "Chemist", true, time.Now().UTC())
	other := newJob(t, db, employer.ID, "Lab Tech", true, time.Now().UTC())

	newApplication(t, db, job.ID, seeker1.ID, models.StatusPending)
	newApplication(t, db, job.ID, seeker2.ID, models.StatusPending)
	newApplication(t, db, job.ID, seeker3.ID, models.StatusReviewed)
	keep := newApplication(t, db, other.ID, seeker1.ID, models.StatusPending)

	require.NoError(t, repo.DeleteWithApplications(ctx, job.ID))

	var apps int64
	require.NoError(t, db.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&apps).Error)
	assert.Equal(t, int64(0), apps)

	_, err := repo.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// the sibling job's applications survive
	var remaining models.Application
	require.NoError(t, db.Where("id = ?", keep.ID).Take(&remaining).Error)
}

func TestApplicationRepo_CountsAndUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepo(db)
	ctx := context.Background()

	employer := newUser(t, db, "boss", models.RoleEmployer)
	seeker := newUser(t, db, "worker", models.RoleJobSeeker)
	other := newUser(t, db, "other", models.RoleJobSeeker)
	job := newJob(t, db, employer.ID, "Role", true, time.Now().UTC())

	newApplication(t, db, job.ID, seeker.ID, models.StatusPending)
	newApplication(t, db, job.ID, other.ID, models.StatusAccepted)

	exists, err := repo.ExistsFor(ctx, job.ID, seeker.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// second row for the same pair is rejected by the unique index
	dup := &models.Application{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		ApplicantID: seeker.ID,
		Status:      models.StatusPending,
	}
	assert.Error(t, db.Create(dup).Error)

	counts, err := repo.CountsByStatusForJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Pending)
	assert.Equal(t, int64(1), counts.Accepted)
	assert.Equal(t, int64(0), counts.Reviewed)
	assert.Equal(t, int64(0), counts.Rejected)

	apps, total, err := repo.ListByJob(ctx, job.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, apps, 2)

	mine, total, err := repo.ListByApplicant(ctx, seeker.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Job)
	assert.Equal(t, job.ID, mine[0].Job.ID)
}

func TestTimestampColumnsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepo(db)
	jobs := NewJobRepo(db)
	ctx := context.Background()

	created := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	u := &models.User{
		ID:        uuid.NewString(),
		Username:  "stamped",
		Email:     "stamped@example.com",
		Role:      models.RoleEmployer,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, users.Create(ctx, u))

	gotUser, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, gotUser.CreatedAt.Equal(created))

	deadline := created.Add(30 * 24 * time.Hour)
	j := newJob(t, db, u.ID, "Stamped Role", true, created)
	j.Deadline = &deadline
	require.NoError(t, jobs.Update(ctx, j))

	gotJob, err := jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.True(t, gotJob.CreatedAt.Equal(created))
	require.NotNil(t, gotJob.Deadline)
	assert.True(t, gotJob.Deadline.Equal(deadline))
}
