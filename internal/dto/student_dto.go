package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// StudentCreateRequest describes the payload for enrolling a student.
type StudentCreateRequest struct {
	Name        string        `json:"name" validate:"required,min=3"`
	SecretID    string        `json:"secret_id" validate:"required,min=3"`
	Email       string        `json:"email" validate:"omitempty,email"`
	PhoneNumber string        `json:"phone_number" validate:"required,min=7,max=16"`
	DateOfBirth string        `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      models.Gender `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	BloodGroup  string        `json:"blood_group" validate:"omitempty,max=8"`
	Address     string        `json:"address" validate:"omitempty,max=512"`
	BatchID     uint          `json:"batch_id" validate:"required"`
}

// StudentUpdateRequest describes the payload for editing a student's profile.
type StudentUpdateRequest struct {
	Name        *string               `json:"name" validate:"omitempty,min=3"`
	Email       *string               `json:"email" validate:"omitempty,email"`
	PhoneNumber *string               `json:"phone_number" validate:"omitempty,min=7,max=16"`
	BloodGroup  *string               `json:"blood_group" validate:"omitempty,max=8"`
	Address     *string               `json:"address" validate:"omitempty,max=512"`
	Status      *models.StudentStatus `json:"status" validate:"omitempty,oneof=ACTIVE DROPPED GRADUATED"`
}

// ProfileUpdateRequest carries the fields a student may edit on their own
// account. Privileged fields stay admin-only.
type ProfileUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=7,max=16"`
	Address     *string `json:"address" validate:"omitempty,max=512"`
}

// StudentListQuery carries the filters accepted when listing students.
type StudentListQuery struct {
	Department models.Department `query:"department" validate:"omitempty,oneof=CSE EEE ME CE"`
	BatchID    uint              `query:"batch_id"`
	Page       int               `query:"page" validate:"omitempty,min=1"`
	Limit      int               `query:"limit" validate:"omitempty,min=1,max=100"`
}

// StudentResponse joins the account fields with the enrollment record.
type StudentResponse struct {
	UserResponse

	BatchID         uint                 `json:"batch_id"`
	BatchName       string               `json:"batch_name,omitempty"`
	Department      models.Department    `json:"department"`
	CurrentSemester models.Semester      `json:"current_semester,omitempty"`
	Status          models.StudentStatus `json:"status"`
	EnrolledAt      time.Time            `json:"enrolled_at"`
}

// NewStudentResponse converts an account plus its enrollment into a DTO.
// Batch fields are filled only when the detail row carries a preloaded batch.
func NewStudentResponse(user models.User, detail models.AcademicDetail) StudentResponse {
	response := StudentResponse{
		UserResponse: NewUserResponse(user),
		BatchID:      detail.BatchID,
		Department:   detail.Department,
		Status:       detail.Status,
		EnrolledAt:   detail.CreatedAt,
	}
	if detail.Batch.ID != 0 {
		response.BatchName = detail.Batch.Name
		response.CurrentSemester = detail.Batch.CurrentSemester
	}

	return response
}
