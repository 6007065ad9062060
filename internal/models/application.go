package models

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application links an applicant account to a job. An account may apply to a
// given job at most once. Notes are employer-side annotations and are never
// shown to the applicant.
type Application struct {
	ID          string            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID       string            `gorm:"column:job_id;type:uuid;uniqueIndex:idx_job_applicant" json:"job_id"`
	ApplicantID string            `gorm:"column:applicant_id;type:uuid;uniqueIndex:idx_job_applicant" json:"applicant_id"`
	CoverLetter string            `gorm:"column:cover_letter;type:text" json:"cover_letter"`
	Status      ApplicationStatus `gorm:"column:status;type:text" json:"status"`
	Notes       string            `gorm:"column:notes;type:text" json:"notes,omitempty"`
	AppliedAt   time.Time         `gorm:"column:applied_at" json:"applied_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at" json:"updated_at"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (Application) TableName() string { return "applications" }

// StatusCounts is the per-status breakdown returned alongside an employer's
// application listings and in the analytics payloads. All four keys are
// always present.
type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Reviewed int64 `json:"reviewed"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}
