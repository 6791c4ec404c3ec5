package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAnonymous     UserRole = "ANONYMOUS"
	RoleAuthenticated UserRole = "AUTHENTICATED"
	RoleManager       UserRole = "MANAGER"
	RoleAdmin         UserRole = "ADMIN"
)

// IsValid reports whether the role is one of the four known values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAnonymous, RoleAuthenticated, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                          uuid.UUID  `json:"id" db:"id"`
	Nickname                    string     `json:"nickname" db:"nickname"`
	Email                       string     `json:"email" db:"email"`
	PasswordHash                string     `json:"-" db:"password_hash"`
	FirstName                   *string    `json:"first_name,omitempty" db:"first_name"`
	LastName                    *string    `json:"last_name,omitempty" db:"last_name"`
	Bio                         *string    `json:"bio,omitempty" db:"bio"`
	ProfilePictureURL           *string    `json:"profile_picture_url,omitempty" db:"profile_picture_url"`
	LinkedinProfileURL          *string    `json:"linkedin_profile_url,omitempty" db:"linkedin_profile_url"`
	GithubProfileURL            *string    `json:"github_profile_url,omitempty" db:"github_profile_url"`
	Role                        UserRole   `json:"role" db:"role"`
	EmailVerified               bool       `json:"email_verified" db:"email_verified"`
	VerificationToken           *string    `json:"-" db:"verification_token"`
	IsLocked                    bool       `json:"is_locked" db:"is_locked"`
	FailedLoginAttempts         int        `json:"-" db:"failed_login_attempts"`
	LastLoginAt                 *time.Time `json:"last_login_at" db:"last_login_at"`
	IsProfessional              bool       `json:"is_professional" db:"is_professional"`
	ProfessionalStatusUpdatedAt *time.Time `json:"professional_status_updated_at,omitempty" db:"professional_status_updated_at"`
	IsConverted                 bool       `json:"is_converted" db:"is_converted"`
	InvitedByUserID             *uuid.UUID `json:"invited_by_user_id,omitempty" db:"invited_by_user_id"`
	CreatedAt                   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt                   time.Time  `json:"updated_at" db:"updated_at"`
}

// HasRole checks if the user has the specified role.
func (u *User) HasRole(role UserRole) bool {
	return u.Role == role
}

// UserPatch carries the fields of a partial update. Nil pointers mean
// "leave unchanged"; only non-nil fields are written.
type UserPatch struct {
	Email              *string
	FirstName          *string
	LastName           *string
	Bio                *string
	ProfilePictureURL  *string
	LinkedinProfileURL *string
	GithubProfileURL   *string
	Role               *UserRole
	IsProfessional     *bool
}

// IsEmpty reports whether the patch carries no fields to apply.
func (p *UserPatch) IsEmpty() bool {
	return p.Email == nil &&
		p.FirstName == nil &&
		p.LastName == nil &&
		p.Bio == nil &&
		p.ProfilePictureURL == nil &&
		p.LinkedinProfileURL == nil &&
		p.GithubProfileURL == nil &&
		p.Role == nil &&
		p.IsProfessional == nil
}
