package dto

import (
	"time"

	"github.com/campuscore/campuscore-api/internal/models"
)

// LoginRequest carries the credential pair presented at login.
type LoginRequest struct {
	SecretID string `json:"secret_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest carries a password rotation for the logged-in user.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// TokenPairResponse mirrors the cookie names the tokens are also set under,
// so header-only clients can pick them up from the body.
type TokenPairResponse struct {
	AccessToken  string `json:"access-token"`
	RefreshToken string `json:"refresh-token"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	User   UserResponse      `json:"user"`
	Tokens TokenPairResponse `json:"tokens"`
}

// UserResponse is the serialized account representation returned to clients.
// Credential material never appears here.
type UserResponse struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	SecretID     string              `json:"secret_id"`
	Email        string              `json:"email"`
	Role         models.Role         `json:"role"`
	DateOfBirth  time.Time           `json:"date_of_birth"`
	Gender       models.Gender       `json:"gender"`
	BloodGroup   string              `json:"blood_group"`
	PhoneNumber  string              `json:"phone_number"`
	Address      string              `json:"address"`
	ProfileImage FileResponse        `json:"profile_image"`
	AdminAccess  []models.Capability `json:"admin_access,omitempty"`
	IsActive     bool                `json:"is_active"`
	IsFirstLogin bool                `json:"is_first_login"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:           model.ID,
		Name:         model.Name,
		SecretID:     model.SecretID,
		Email:        model.Email,
		Role:         model.Role,
		DateOfBirth:  model.DateOfBirth,
		Gender:       model.Gender,
		BloodGroup:   model.BloodGroup,
		PhoneNumber:  model.PhoneNumber,
		Address:      model.Address,
		ProfileImage: FileResponse{URL: model.ProfileImage.URL},
		AdminAccess:  model.AdminAccess,
		IsActive:     model.IsActive,
		IsFirstLogin: model.IsFirstLogin,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewUserResponseSlice converts a slice of models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	return responses
}
