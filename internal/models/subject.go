package models

import "time"

// Subject is a course taught in a specific department and semester.
type Subject struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	SubjectCode  string      `gorm:"size:32;uniqueIndex;not null" json:"subject_code"`
	SubjectName  string      `gorm:"size:255;not null" json:"subject_name"`
	Department   Department  `gorm:"size:16;not null;index:idx_subjects_dept_semester" json:"department"`
	Semester     Semester    `gorm:"not null;index:idx_subjects_dept_semester" json:"semester"`
	SubjectType  SubjectType `gorm:"size:16;not null" json:"subject_type"`
	Credits      int         `gorm:"not null" json:"credits"`
	IsDeprecated bool        `gorm:"not null;default:false" json:"is_deprecated"`

	AssignedTeacherID *uint `json:"assigned_teacher_id"`
	AssignedTeacher   *User `gorm:"foreignKey:AssignedTeacherID" json:"assigned_teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
