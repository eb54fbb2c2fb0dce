package models

import "time"

// Material is study content published for a batch and subject.
type Material struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BatchID     uint      `gorm:"not null;index" json:"batch_id"`
	SubjectID   uint      `gorm:"not null;index" json:"subject_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	File        FileRef   `gorm:"embedded;embeddedPrefix:file_" json:"file"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Batch   Batch   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Subject Subject `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
