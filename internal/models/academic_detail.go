package models

import "time"

// AcademicDetail joins a student to the batch they study in. Exactly one
// record exists per student user.
type AcademicDetail struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	StudentID  uint          `gorm:"not null;uniqueIndex" json:"student_id"`
	BatchID    uint          `gorm:"not null;index" json:"batch_id"`
	Department Department    `gorm:"size:16;not null" json:"department"`
	Status     StudentStatus `gorm:"size:16;not null;default:ACTIVE" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Student User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Batch   Batch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
