package models

import "time"

// Submission is a file a student handed in for an assignment. A student may
// submit at most once per assignment.
type Submission struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AssignmentID  uint      `gorm:"not null;uniqueIndex:idx_submissions_assignment_student" json:"assignment_id"`
	StudentID     uint      `gorm:"not null;uniqueIndex:idx_submissions_assignment_student" json:"student_id"`
	File          FileRef   `gorm:"embedded;embeddedPrefix:file_" json:"file"`
	Read          bool      `gorm:"not null;default:false" json:"read"`
	MarksObtained int       `gorm:"not null;default:0" json:"marks_obtained"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Assignment Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Student    User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
