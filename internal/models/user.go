package models

import (
	"time"

	"gorm.io/datatypes"
)

// User represents any account in the system: students, teachers and admins.
// Accounts are never hard-deleted; IsActive soft-disables them.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	SecretID     string    `gorm:"size:64;uniqueIndex;not null" json:"secret_id"`
	Email        string    `gorm:"size:255" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:STUDENT" json:"role"`
	DateOfBirth  time.Time `gorm:"not null" json:"date_of_birth"`
	Gender       Gender    `gorm:"size:16;not null" json:"gender"`
	BloodGroup   string    `gorm:"size:8" json:"blood_group"`
	PhoneNumber  string    `gorm:"size:16;uniqueIndex" json:"phone_number"`
	Address      string    `gorm:"size:512" json:"address"`

	ProfileImage FileRef `gorm:"embedded;embeddedPrefix:profile_image_" json:"profile_image"`

	AdminAccess datatypes.JSONSlice[Capability] `json:"admin_access"`

	IsActive     bool `gorm:"not null;default:false" json:"is_active"`
	IsFirstLogin bool `gorm:"not null;default:true" json:"is_first_login"`

	CreatedByID *uint `json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCapability reports whether the user may use the given admin capability.
// Only admins carry capabilities; for any other role the set is ignored.
func (u User) HasCapability(capability Capability) bool {
	if u.Role != RoleAdmin {
		return false
	}
	for _, granted := range u.AdminAccess {
		if granted == capability {
			return true
		}
	}
	return false
}
