package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// AssignmentCreateRequest describes the payload for giving homework to a batch.
type AssignmentCreateRequest struct {
	BatchID     uint   `json:"batch_id" validate:"required"`
	SubjectID   uint   `json:"subject_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"omitempty,max=4096"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Marks       int    `json:"marks" validate:"required,min=1"`
}

// AssignmentUpdateRequest describes the payload for editing an assignment.
type AssignmentUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description" validate:"omitempty,max=4096"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Marks       *int    `json:"marks" validate:"omitempty,min=1"`
	IsClosed    *bool   `json:"is_closed"`
}

// AssignmentListQuery carries the filters accepted when listing assignments.
type AssignmentListQuery struct {
	BatchID   uint `query:"batch_id"`
	SubjectID uint `query:"subject_id"`
	Page      int  `query:"page" validate:"omitempty,min=1"`
	Limit     int  `query:"limit" validate:"omitempty,min=1,max=100"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID          uint      `json:"id"`
	BatchID     uint      `json:"batch_id"`
	SubjectID   uint      `json:"subject_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	IsClosed    bool      `json:"is_closed"`
	Marks       int       `json:"marks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          model.ID,
		BatchID:     model.BatchID,
		SubjectID:   model.SubjectID,
		Title:       model.Title,
		Description: model.Description,
		DueDate:     model.DueDate,
		IsClosed:    model.IsClosed,
		Marks:       model.Marks,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}

// SubmissionGradeRequest carries the marks awarded for a submission.
type SubmissionGradeRequest struct {
	MarksObtained int `json:"marks_obtained" validate:"min=0"`
}

// SubmissionResponse is the serialized view of a handed-in assignment.
type SubmissionResponse struct {
	ID            uint         `json:"id"`
	AssignmentID  uint         `json:"assignment_id"`
	StudentID     uint         `json:"student_id"`
	File          FileResponse `json:"file"`
	Read          bool         `json:"read"`
	MarksObtained int          `json:"marks_obtained"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:            model.ID,
		AssignmentID:  model.AssignmentID,
		StudentID:     model.StudentID,
		File:          FileResponse{URL: model.File.URL},
		Read:          model.Read,
		MarksObtained: model.MarksObtained,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
