package models

import "time"

// Routine is a single scheduled class slot for a batch.
type Routine struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BatchID     uint      `gorm:"not null;index" json:"batch_id"`
	SubjectID   uint      `gorm:"not null;index" json:"subject_id"`
	Day         Day       `gorm:"size:16;not null" json:"day"`
	Shift       Shift     `gorm:"size:16;not null" json:"shift"`
	Semester    Semester  `gorm:"not null" json:"semester"`
	CreatedByID uint      `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Batch   Batch   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Subject Subject `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
