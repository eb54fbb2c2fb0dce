package dto

import "github.com/campuscore/campuscore-api/internal/models"

// TeacherCreateRequest describes the payload for provisioning a teacher.
type TeacherCreateRequest struct {
	Name        string        `json:"name" validate:"required,min=3"`
	SecretID    string        `json:"secret_id" validate:"required,min=3"`
	Email       string        `json:"email" validate:"required,email"`
	PhoneNumber string        `json:"phone_number" validate:"required,min=7,max=16"`
	DateOfBirth string        `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      models.Gender `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	BloodGroup  string        `json:"blood_group" validate:"omitempty,max=8"`
	Address     string        `json:"address" validate:"omitempty,max=512"`
}

// TeacherUpdateRequest describes the payload for editing a teacher's profile.
type TeacherUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=7,max=16"`
	BloodGroup  *string `json:"blood_group" validate:"omitempty,max=8"`
	Address     *string `json:"address" validate:"omitempty,max=512"`
}
