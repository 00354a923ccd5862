// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Ripple application. Email is the sole
// login identifier; username is optional but globally unique when present.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"unique;not null" json:"email"`
	Username     *string    `gorm:"unique" json:"username,omitempty"`
	Password     string     `gorm:"not null" json:"-"`
	PhoneNumber  string     `gorm:"size:15" json:"phone_number,omitempty"`
	Bio          string     `gorm:"type:text" json:"bio"`
	ProfileImage string     `json:"profile_image,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Location     string     `gorm:"size:255" json:"location,omitempty"`
	IsStaff      bool       `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool       `gorm:"default:false" json:"is_superuser"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// UsernameOrEmail returns the username when set, otherwise the email.
// Used for display and token claims.
func (u *User) UsernameOrEmail() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}

// IsAdmin reports whether the user holds elevated privilege. Staff and
// superuser are equivalent for authorization purposes.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}
