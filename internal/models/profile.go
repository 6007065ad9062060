package models

import (
	"strings"
	"time"
)

type EmployerProfile struct {
	UserID             string    `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	CompanyName        string    `gorm:"column:company_name;type:text" json:"company_name"`
	CompanyDescription string    `gorm:"column:company_description;type:text" json:"company_description"`
	Location           string    `gorm:"column:location;type:text" json:"location"`
	Website            string    `gorm:"column:website;type:text" json:"website,omitempty"`
	ContactEmail       string    `gorm:"column:contact_email;type:text" json:"contact_email"`
	PhoneNumber        string    `gorm:"column:phone_number;type:text" json:"phone_number,omitempty"`
	Logo               string    `gorm:"column:logo;type:text" json:"logo,omitempty"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (EmployerProfile) TableName() string { return "employer_profiles" }

type JobSeekerProfile struct {
	UserID         string    `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FullName       string    `gorm:"column:full_name;type:text" json:"full_name"`
	PhoneNumber    string    `gorm:"column:phone_number;type:text" json:"phone_number,omitempty"`
	Location       string    `gorm:"column:location;type:text" json:"location,omitempty"`
	Resume         string    `gorm:"column:resume;type:text" json:"resume,omitempty"`
	ProfilePicture string    `gorm:"column:profile_picture;type:text" json:"profile_picture,omitempty"`
	Skills         string    `gorm:"column:skills;type:text" json:"skills"`
	Experience     string    `gorm:"column:experience;type:text" json:"experience,omitempty"`
	Education      string    `gorm:"column:education;type:text" json:"education,omitempty"`
	LinkedinURL    string    `gorm:"column:linkedin_url;type:text" json:"linkedin_url,omitempty"`
	PortfolioURL   string    `gorm:"column:portfolio_url;type:text" json:"portfolio_url,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (JobSeekerProfile) TableName() string { return "job_seeker_profiles" }

// SkillsList splits the comma-delimited skills field into trimmed tokens.
func (p *JobSeekerProfile) SkillsList() []string {
	var out []string
	for _, s := range strings.Split(p.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Profile is the role-tagged view of an account's extension data. Exactly one
// of Employer/Seeker is set, matching Role.
type Profile struct {
	Role     UserRole          `json:"role"`
	Employer *EmployerProfile  `json:"employer,omitempty"`
	Seeker   *JobSeekerProfile `json:"job_seeker,omitempty"`
}
