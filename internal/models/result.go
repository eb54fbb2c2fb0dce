package models

import "time"

// Result records the grade points a student achieved in a subject.
type Result struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectID   uint      `gorm:"not null;index" json:"subject_id"`
	StudentID   uint      `gorm:"not null;index" json:"student_id"`
	Points      int       `gorm:"not null" json:"points"`
	CreatedByID uint      `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Subject Subject `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Student User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

const (
	// MinResultPoints is the lowest grade point that can be awarded.
	MinResultPoints = 0
	// MaxResultPoints is the highest grade point that can be awarded.
	MaxResultPoints = 10
)
