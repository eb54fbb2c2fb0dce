package models

import "time"

// Assignment is homework given to a batch for a subject.
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BatchID     uint      `gorm:"not null;index" json:"batch_id"`
	SubjectID   uint      `gorm:"not null;index" json:"subject_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	IsClosed    bool      `gorm:"not null;default:false" json:"is_closed"`
	Marks       int       `gorm:"not null" json:"marks"`
	GivenByID   uint      `gorm:"not null" json:"given_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Batch       Batch        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Subject     Subject      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Submissions []Submission `json:"submissions,omitempty"`
}

// IsPastDue reports whether the deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
