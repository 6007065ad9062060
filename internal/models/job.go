package models

import "time"

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeFreelance:
		return true
	}
	return false
}

// Job is a posting owned by one employer account. CompanyName is copied from
// the employer profile when the job is created and is not kept in sync with
// later profile edits.
type Job struct {
	ID           string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployerID   string     `gorm:"column:employer_id;type:uuid;index" json:"employer_id"`
	Title        string     `gorm:"column:title;type:text" json:"title"`
	CompanyName  string     `gorm:"column:company_name;type:text" json:"company_name"`
	Description  string     `gorm:"column:description;type:text" json:"description"`
	Requirements string     `gorm:"column:requirements;type:text" json:"requirements"`
	Location     string     `gorm:"column:location;type:text" json:"location"`
	SalaryMin    *float64   `gorm:"column:salary_min" json:"salary_min,omitempty"`
	SalaryMax    *float64   `gorm:"column:salary_max" json:"salary_max,omitempty"`
	JobType      JobType    `gorm:"column:job_type;type:text" json:"job_type"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	Deadline     *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

func (j *Job) IsDeadlinePassed(now time.Time) bool {
	return j.Deadline != nil && now.After(*j.Deadline)
}
