package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// NoticeCreateRequest describes the multipart fields of a notice. Attachments
// travel as repeated "attachments" form parts.
type NoticeCreateRequest struct {
	Title       string            `form:"title" json:"title" validate:"required,min=3"`
	Description string            `form:"description" json:"description" validate:"required"`
	Date        string            `form:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Department  models.Department `form:"department" json:"department" validate:"omitempty,oneof=CSE EEE ME CE"`
	Semester    models.Semester   `form:"semester" json:"semester" validate:"omitempty,min=1,max=8"`
}

// NoticeUpdateRequest describes the payload for editing a notice.
type NoticeUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// NoticeListQuery carries the filters accepted when listing notices.
type NoticeListQuery struct {
	Department models.Department `query:"department" validate:"omitempty,oneof=CSE EEE ME CE"`
	Semester   models.Semester   `query:"semester" validate:"omitempty,min=1,max=8"`
	Page       int               `query:"page" validate:"omitempty,min=1"`
	Limit      int               `query:"limit" validate:"omitempty,min=1,max=100"`
}

// NoticeResponse is the serialized representation returned to API clients.
type NoticeResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        time.Time         `json:"date"`
	Department  models.Department `json:"department,omitempty"`
	Semester    models.Semester   `json:"semester,omitempty"`
	Attachments []FileResponse    `json:"attachments"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewNoticeResponse converts a model into a DTO.
func NewNoticeResponse(model models.Notice) NoticeResponse {
	attachments := make([]FileResponse, 0, len(model.Attachments))
	for _, attachment := range model.Attachments {
		attachments = append(attachments, FileResponse{URL: attachment.URL})
	}

	return NoticeResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Date:        model.Date,
		Department:  model.Department,
		Semester:    model.Semester,
		Attachments: attachments,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewNoticeResponseSlice converts a slice of models into DTOs.
func NewNoticeResponseSlice(notices []models.Notice) []NoticeResponse {
	responses := make([]NoticeResponse, 0, len(notices))
	for _, notice := range notices {
		responses = append(responses, NewNoticeResponse(notice))
	}

	return responses
}
