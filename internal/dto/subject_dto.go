package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// SubjectCreateRequest describes the payload for adding a subject to the catalog.
type SubjectCreateRequest struct {
	SubjectCode string             `json:"subject_code" validate:"required,min=2,max=32"`
	SubjectName string             `json:"subject_name" validate:"required,min=3"`
	Department  models.Department  `json:"department" validate:"required,oneof=CSE EEE ME CE"`
	Semester    models.Semester    `json:"semester" validate:"required,min=1,max=8"`
	SubjectType models.SubjectType `json:"subject_type" validate:"required,oneof=THEORY LAB PROJECT"`
	Credits     int                `json:"credits" validate:"required,min=1,max=6"`
}

// SubjectUpdateRequest describes the payload for editing a subject.
type SubjectUpdateRequest struct {
	SubjectName       *string             `json:"subject_name" validate:"omitempty,min=3"`
	SubjectType       *models.SubjectType `json:"subject_type" validate:"omitempty,oneof=THEORY LAB PROJECT"`
	Credits           *int                `json:"credits" validate:"omitempty,min=1,max=6"`
	IsDeprecated      *bool               `json:"is_deprecated"`
	AssignedTeacherID *uint               `json:"assigned_teacher_id"`
}

// SubjectListQuery carries the filters accepted when listing subjects.
type SubjectListQuery struct {
	Department models.Department `query:"department" validate:"omitempty,oneof=CSE EEE ME CE"`
	Semester   models.Semester   `query:"semester" validate:"omitempty,min=1,max=8"`
	Page       int               `query:"page" validate:"omitempty,min=1"`
	Limit      int               `query:"limit" validate:"omitempty,min=1,max=100"`
}

// SubjectResponse is the serialized representation returned to API clients.
type SubjectResponse struct {
	ID              uint               `json:"id"`
	SubjectCode     string             `json:"subject_code"`
	SubjectName     string             `json:"subject_name"`
	Department      models.Department  `json:"department"`
	Semester        models.Semester    `json:"semester"`
	SubjectType     models.SubjectType `json:"subject_type"`
	Credits         int                `json:"credits"`
	IsDeprecated    bool               `json:"is_deprecated"`
	AssignedTeacher *UserResponse      `json:"assigned_teacher,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NewSubjectResponse converts a model into a DTO.
func NewSubjectResponse(model models.Subject) SubjectResponse {
	response := SubjectResponse{
		ID:           model.ID,
		SubjectCode:  model.SubjectCode,
		SubjectName:  model.SubjectName,
		Department:   model.Department,
		Semester:     model.Semester,
		SubjectType:  model.SubjectType,
		Credits:      model.Credits,
		IsDeprecated: model.IsDeprecated,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
	if model.AssignedTeacher != nil {
		teacher := NewUserResponse(*model.AssignedTeacher)
		response.AssignedTeacher = &teacher
	}

	return response
}

// NewSubjectResponseSlice converts a slice of models into DTOs.
func NewSubjectResponseSlice(subjects []models.Subject) []SubjectResponse {
	responses := make([]SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		responses = append(responses, NewSubjectResponse(subject))
	}

	return responses
}
