package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// BatchCreateRequest describes the payload for opening a new cohort year.
// One batch is created per department from a single request.
type BatchCreateRequest struct {
	Name         string `json:"name" validate:"required,min=3"`
	StartingYear string `json:"starting_year" validate:"required,datetime=2006-01-02"`
}

// BatchUpdateRequest describes the payload for editing a batch.
type BatchUpdateRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=3"`
	IsResultsPublished *bool   `json:"is_results_published"`
}

// BatchListQuery carries the filters accepted when listing batches.
type BatchListQuery struct {
	Department       models.Department `query:"department" validate:"omitempty,oneof=CSE EEE ME CE"`
	IncludeCompleted bool              `query:"include_completed"`
	Page             int               `query:"page" validate:"omitempty,min=1"`
	Limit            int               `query:"limit" validate:"omitempty,min=1,max=100"`
}

// BatchResponse is the serialized representation returned to API clients.
type BatchResponse struct {
	ID                 uint              `json:"id"`
	Name               string            `json:"name"`
	Department         models.Department `json:"department"`
	StartingYear       time.Time         `json:"starting_year"`
	CurrentSemester    models.Semester   `json:"current_semester"`
	IsResultsPublished bool              `json:"is_results_published"`
	IsCompleted        bool              `json:"is_completed"`
	Subjects           []SubjectResponse `json:"subjects,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// NewBatchResponse converts a model into a DTO.
func NewBatchResponse(model models.Batch) BatchResponse {
	response := BatchResponse{
		ID:                 model.ID,
		Name:               model.Name,
		Department:         model.Department,
		StartingYear:       model.StartingYear,
		CurrentSemester:    model.CurrentSemester,
		IsResultsPublished: model.IsResultsPublished,
		IsCompleted:        model.IsCompleted,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	if len(model.Subjects) > 0 {
		response.Subjects = NewSubjectResponseSlice(model.Subjects)
	}

	return response
}

// NewBatchResponseSlice converts a slice of models into DTOs.
func NewBatchResponseSlice(batches []models.Batch) []BatchResponse {
	responses := make([]BatchResponse, 0, len(batches))
	for _, batch := range batches {
		responses = append(responses, NewBatchResponse(batch))
	}

	return responses
}
