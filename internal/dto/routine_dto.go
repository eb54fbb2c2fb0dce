package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// RoutineCreateRequest describes the payload for scheduling a class slot.
type RoutineCreateRequest struct {
	BatchID   uint            `json:"batch_id" validate:"required"`
	SubjectID uint            `json:"subject_id" validate:"required"`
	Day       models.Day      `json:"day" validate:"required,oneof=SATURDAY SUNDAY MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY"`
	Shift     models.Shift    `json:"shift" validate:"required,oneof=MORNING DAY EVENING"`
	Semester  models.Semester `json:"semester" validate:"required,min=1,max=8"`
}

// RoutineUpdateRequest describes the payload for moving a class slot.
type RoutineUpdateRequest struct {
	SubjectID *uint         `json:"subject_id"`
	Day       *models.Day   `json:"day" validate:"omitempty,oneof=SATURDAY SUNDAY MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY"`
	Shift     *models.Shift `json:"shift" validate:"omitempty,oneof=MORNING DAY EVENING"`
}

// RoutineListQuery carries the filters accepted when listing class slots.
type RoutineListQuery struct {
	BatchID   uint       `query:"batch_id"`
	SubjectID uint       `query:"subject_id"`
	Day       models.Day `query:"day" validate:"omitempty,oneof=SATURDAY SUNDAY MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY"`
	Page      int        `query:"page" validate:"omitempty,min=1"`
	Limit     int        `query:"limit" validate:"omitempty,min=1,max=100"`
}

// RoutineResponse is the serialized representation returned to API clients.
type RoutineResponse struct {
	ID          uint            `json:"id"`
	BatchID     uint            `json:"batch_id"`
	SubjectID   uint            `json:"subject_id"`
	SubjectCode string          `json:"subject_code,omitempty"`
	SubjectName string          `json:"subject_name,omitempty"`
	Day         models.Day      `json:"day"`
	Shift       models.Shift    `json:"shift"`
	Semester    models.Semester `json:"semester"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewRoutineResponse converts a model into a DTO. Subject fields are filled
// only when the row carries a preloaded subject.
func NewRoutineResponse(model models.Routine) RoutineResponse {
	response := RoutineResponse{
		ID:        model.ID,
		BatchID:   model.BatchID,
		SubjectID: model.SubjectID,
		Day:       model.Day,
		Shift:     model.Shift,
		Semester:  model.Semester,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.Subject.ID != 0 {
		response.SubjectCode = model.Subject.SubjectCode
		response.SubjectName = model.Subject.SubjectName
	}

	return response
}

// NewRoutineResponseSlice converts a slice of models into DTOs.
func NewRoutineResponseSlice(routines []models.Routine) []RoutineResponse {
	responses := make([]RoutineResponse, 0, len(routines))
	for _, routine := range routines {
		responses = append(responses, NewRoutineResponse(routine))
	}

	return responses
}
