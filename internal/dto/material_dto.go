package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// MaterialCreateRequest describes the multipart fields accompanying a
// material upload. The file itself travels as the "file" form part.
type MaterialCreateRequest struct {
	BatchID     uint   `form:"batch_id" json:"batch_id" validate:"required"`
	SubjectID   uint   `form:"subject_id" json:"subject_id" validate:"required"`
	Title       string `form:"title" json:"title" validate:"required,min=3"`
	Description string `form:"description" json:"description" validate:"omitempty,max=2048"`
}

// MaterialUpdateRequest describes the payload for editing material metadata.
type MaterialUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description" validate:"omitempty,max=2048"`
}

// MaterialListQuery carries the filters accepted when listing materials.
type MaterialListQuery struct {
	BatchID   uint `query:"batch_id"`
	SubjectID uint `query:"subject_id"`
	Page      int  `query:"page" validate:"omitempty,min=1"`
	Limit     int  `query:"limit" validate:"omitempty,min=1,max=100"`
}

// MaterialResponse is the serialized representation returned to API clients.
type MaterialResponse struct {
	ID          uint         `json:"id"`
	BatchID     uint         `json:"batch_id"`
	SubjectID   uint         `json:"subject_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	File        FileResponse `json:"file"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewMaterialResponse converts a model into a DTO.
func NewMaterialResponse(model models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          model.ID,
		BatchID:     model.BatchID,
		SubjectID:   model.SubjectID,
		Title:       model.Title,
		Description: model.Description,
		File:        FileResponse{URL: model.File.URL},
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewMaterialResponseSlice converts a slice of models into DTOs.
func NewMaterialResponseSlice(materials []models.Material) []MaterialResponse {
	responses := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		responses = append(responses, NewMaterialResponse(material))
	}

	return responses
}
