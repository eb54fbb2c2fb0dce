package models

import "time"

// Batch is a cohort of students progressing together through the semesters
// of a department's curriculum. The promotion workflow advances
// CurrentSemester and unions in the subjects that become applicable; the
// completion workflow is only legal from the terminal semester.
type Batch struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Name               string     `gorm:"size:255;not null" json:"name"`
	Department         Department `gorm:"size:16;not null" json:"department"`
	StartingYear       time.Time  `gorm:"not null" json:"starting_year"`
	CurrentSemester    Semester   `gorm:"not null" json:"current_semester"`
	IsResultsPublished bool       `gorm:"not null;default:false" json:"is_results_published"`
	IsCompleted        bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedByID        uint       `gorm:"not null" json:"created_by_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Subjects []Subject `gorm:"many2many:batch_subjects" json:"subjects,omitempty"`
}
