package models

import "time"

// Session is a persisted refresh-token record. A user may hold several
// sessions at once (multi-device); expired rows are removed opportunistically
// on login.
type Session struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	RefreshToken string    `gorm:"size:1024;not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsExpired reports whether the session has passed its absolute expiry.
func (s Session) IsExpired(reference time.Time) bool {
	return reference.After(s.ExpiresAt)
}
