package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// ResultCreateRequest describes the payload for recording a grade.
type ResultCreateRequest struct {
	SubjectID uint `json:"subject_id" validate:"required"`
	StudentID uint `json:"student_id" validate:"required"`
	Points    int  `json:"points" validate:"min=0,max=10"`
}

// ResultUpdateRequest describes the payload for correcting a grade.
type ResultUpdateRequest struct {
	Points *int `json:"points" validate:"required,min=0,max=10"`
}

// ResultListQuery carries the filters accepted when listing grades.
type ResultListQuery struct {
	SubjectID uint `query:"subject_id"`
	StudentID uint `query:"student_id"`
	Page      int  `query:"page" validate:"omitempty,min=1"`
	Limit     int  `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ResultResponse is the serialized representation returned to API clients.
type ResultResponse struct {
	ID          uint      `json:"id"`
	SubjectID   uint      `json:"subject_id"`
	StudentID   uint      `json:"student_id"`
	SubjectCode string    `json:"subject_code,omitempty"`
	SubjectName string    `json:"subject_name,omitempty"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewResultResponse converts a model into a DTO. Subject fields are filled
// only when the row carries a preloaded subject.
func NewResultResponse(model models.Result) ResultResponse {
	response := ResultResponse{
		ID:        model.ID,
		SubjectID: model.SubjectID,
		StudentID: model.StudentID,
		Points:    model.Points,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.Subject.ID != 0 {
		response.SubjectCode = model.Subject.SubjectCode
		response.SubjectName = model.Subject.SubjectName
	}

	return response
}

// NewResultResponseSlice converts a slice of models into DTOs.
func NewResultResponseSlice(results []models.Result) []ResultResponse {
	responses := make([]ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, NewResultResponse(result))
	}

	return responses
}
