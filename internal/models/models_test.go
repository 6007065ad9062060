package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSkillsList(t *testing.T) {
	p := &JobSeekerProfile{Skills: "go, sql , , kubernetes"}
	assert.Equal(t, []string{"go", "sql", "kubernetes"}, p.SkillsList())

	assert.Empty(t, (&JobSeekerProfile{}).SkillsList())
}

func TestIsDeadlinePassed(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	j := &Job{}
	assert.False(t, j.IsDeadlinePassed(now), "no deadline means open")

	past := now.Add(-time.Minute)
	j.Deadline = &past
	assert.True(t, j.IsDeadlinePassed(now))

	future := now.Add(time.Minute)
	j.Deadline = &future
	assert.False(t, j.IsDeadlinePassed(now))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleEmployer.Valid())
	assert.True(t, RoleJobSeeker.Valid())
	assert.False(t, UserRole("admin").Valid())

	for _, jt := range []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeFreelance} {
		assert.True(t, jt.Valid(), string(jt))
	}
	assert.False(t, JobType("gig").Valid())

	for _, st := range []ApplicationStatus{StatusPending, StatusReviewed, StatusAccepted, StatusRejected} {
		assert.True(t, st.Valid(), string(st))
	}
	assert.False(t, ApplicationStatus("ghosted").Valid())
}
