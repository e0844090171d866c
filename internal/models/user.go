package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles assignable to a user account.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered account with its public profile fields
type User struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Username          string     `json:"username" db:"username"`
	Email             string     `json:"email" db:"email"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	Role              string     `json:"role" db:"role"`
	FullName          *string    `json:"full_name,omitempty" db:"full_name"`
	Bio               *string    `json:"bio,omitempty" db:"bio"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty" db:"profile_picture_url"`
	WebsiteURL        *string    `json:"website_url,omitempty" db:"website_url"`
	GithubUsername    *string    `json:"github_username,omitempty" db:"github_username"`
	TwitterUsername   *string    `json:"twitter_username,omitempty" db:"twitter_username"`
	LinkedinURL       *string    `json:"linkedin_url,omitempty" db:"linkedin_url"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	LastLogin         *time.Time `json:"last_login,omitempty" db:"last_login"`
}

// UserProfileResponse is the public-facing profile shape
type UserProfileResponse struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FullName          *string   `json:"full_name,omitempty"`
	Bio               *string   `json:"bio,omitempty"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	WebsiteURL        *string   `json:"website_url,omitempty"`
	GithubUsername    *string   `json:"github_username,omitempty"`
	TwitterUsername   *string   `json:"twitter_username,omitempty"`
	LinkedinURL       *string   `json:"linkedin_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// UserAdminResponse is the shape returned to the admin back office
type UserAdminResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProfileResponse converts User to UserProfileResponse
func (u *User) ToProfileResponse() UserProfileResponse {
	return UserProfileResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		FullName:          u.FullName,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		WebsiteURL:        u.WebsiteURL,
		GithubUsername:    u.GithubUsername,
		TwitterUsername:   u.TwitterUsername,
		LinkedinURL:       u.LinkedinURL,
		CreatedAt:         u.CreatedAt,
	}
}

// ToAdminResponse converts User to UserAdminResponse
func (u *User) ToAdminResponse() UserAdminResponse {
	return UserAdminResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
