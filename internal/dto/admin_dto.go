package dto

import "github.com/campuscore/campuscore-api/internal/models"

// SuperAdminLoginRequest carries the credential triple exchanged for a
// super-admin token.
type SuperAdminLoginRequest struct {
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	SessionSecret string `json:"session_secret" validate:"required"`
}

// SuperAdminLoginResponse returns the issued super-admin token.
type SuperAdminLoginResponse struct {
	Token string `json:"token"`
}

// AdminCreateRequest describes the payload for provisioning an admin account.
type AdminCreateRequest struct {
	Name        string              `json:"name" validate:"required,min=3"`
	SecretID    string              `json:"secret_id" validate:"required,min=3"`
	Email       string              `json:"email" validate:"required,email"`
	PhoneNumber string              `json:"phone_number" validate:"required,min=7,max=16"`
	DateOfBirth string              `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      models.Gender       `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	BloodGroup  string              `json:"blood_group" validate:"omitempty,max=8"`
	Address     string              `json:"address" validate:"omitempty,max=512"`
	AdminAccess []models.Capability `json:"admin_access" validate:"required,min=1,dive,oneof=STUDENT_ACCESS TEACHER_ACCESS BATCH_ACCESS SUBJECT_ACCESS ASSIGNMENT_MONITOR_ACCESS ROUTINE_ACCESS RESULT_ACCESS NOTICE_ACCESS"`
}

// AdminUpdateRequest describes the payload for editing an admin's profile.
type AdminUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=7,max=16"`
	BloodGroup  *string `json:"blood_group" validate:"omitempty,max=8"`
	Address     *string `json:"address" validate:"omitempty,max=512"`
}

// AdminAccessUpdateRequest replaces an admin's capability set wholesale.
type AdminAccessUpdateRequest struct {
	AdminAccess []models.Capability `json:"admin_access" validate:"required,dive,oneof=STUDENT_ACCESS TEACHER_ACCESS BATCH_ACCESS SUBJECT_ACCESS ASSIGNMENT_MONITOR_ACCESS ROUTINE_ACCESS RESULT_ACCESS NOTICE_ACCESS"`
}

// ActivityUpdateRequest toggles the soft-disable flag on an account.
type ActivityUpdateRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
