package models

import "time"

type UserRole string

const (
	RoleEmployer  UserRole = "employer"
	RoleJobSeeker UserRole = "job_seeker"
)

func (r UserRole) Valid() bool {
	return r == RoleEmployer || r == RoleJobSeeker
}

// User is an authenticated account. The role is chosen at registration and
// never changes afterwards; the matching profile is filled in a later step.
type User struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;type:text;uniqueIndex" json:"username"`
	Email        string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:text" json:"-"`
	Role         UserRole  `gorm:"column:role;type:text" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
