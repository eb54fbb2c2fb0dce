package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notice is an announcement published to a department, optionally scoped to
// a semester. Description HTML is sanitized before it is stored.
type Notice struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Date        time.Time  `gorm:"not null" json:"date"`
	Department  Department `gorm:"size:16;index" json:"department"`
	Semester    Semester   `json:"semester"`
	CreatedByID uint       `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Attachments datatypes.JSONSlice[FileRef] `json:"attachments"`
}
