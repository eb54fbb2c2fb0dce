package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
	"github.com/campuscore/campuscore-api/internal/token"
)

var (
	// ErrAdminNotFound indicates the referenced admin account does not exist.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrSecretIDTaken indicates the requested secret id is already in use.
	ErrSecretIDTaken = errors.New("secret id already in use")
)

// SuperAdminService manages the lifecycle of admin accounts. Every operation
// here sits behind the super-admin gate.
type SuperAdminService interface {
	Login(ctx context.Context, payload dto.SuperAdminLoginRequest) (dto.SuperAdminLoginResponse, error)
	CreateAdmin(ctx context.Context, payload dto.AdminCreateRequest) (dto.UserResponse, error)
	ListAdmins(ctx context.Context, query dto.ListQuery) (dto.Page[dto.UserResponse], error)
	GetAdmin(ctx context.Context, id uint) (dto.UserResponse, error)
	UpdateAdmin(ctx context.Context, id uint, payload dto.AdminUpdateRequest) (dto.UserResponse, error)
	UpdateAdminAccess(ctx context.Context, id uint, payload dto.AdminAccessUpdateRequest) (dto.UserResponse, error)
	SetActivity(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.UserResponse, error)
	ResetPassword(ctx context.Context, id uint) error
}

type superAdminService struct {
	users     repository.UserRepository
	cfg       config.Config
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSuperAdminService constructs the super-admin service.
func NewSuperAdminService(users repository.UserRepository, cfg config.Config, validator *validator.Validate, logger zerolog.Logger) SuperAdminService {
	return &superAdminService{
		users:     users,
		cfg:       cfg,
		validator: validator,
		logger:    logger.With().Str("component", "super_admin_service").Logger(),
		now:       time.Now,
	}
}

// Login exchanges the statically configured credential triple for a
// super-admin token. The token embeds the triple; the gate checks both the
// signature and the embedded values on every request.
func (s *superAdminService) Login(ctx context.Context, payload dto.SuperAdminLoginRequest) (dto.SuperAdminLoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SuperAdminLoginResponse{}, err
	}

	// All three comparisons run in constant time, same as the gate that
	// checks the triple embedded in issued tokens.
	match := subtle.ConstantTimeCompare([]byte(payload.Username), []byte(s.cfg.SuperAdminUsername)) &
		subtle.ConstantTimeCompare([]byte(payload.Password), []byte(s.cfg.SuperAdminPassword)) &
		subtle.ConstantTimeCompare([]byte(payload.SessionSecret), []byte(s.cfg.SuperAdminSessionSecret))
	if match != 1 {
		return dto.SuperAdminLoginResponse{}, ErrWrongCredentials
	}

	signed, err := token.IssueSuperAdmin(token.SuperAdminClaims{
		Username:      payload.Username,
		Password:      payload.Password,
		SessionSecret: payload.SessionSecret,
	}, s.cfg.SuperAdminTokenSecret)
	if err != nil {
		return dto.SuperAdminLoginResponse{}, err
	}

	s.logger.Info().Msg("super admin token issued")

	return dto.SuperAdminLoginResponse{Token: signed}, nil
}

// CreateAdmin provisions an admin account with the date-of-birth derived
// default password. New accounts start inactive and cannot log in until the
// super admin flips the activity flag.
func (s *superAdminService) CreateAdmin(ctx context.Context, payload dto.AdminCreateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.users.GetBySecretID(ctx, payload.SecretID); err == nil {
		return dto.UserResponse{}, ErrSecretIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	dob, err := time.Parse(dto.DateLayout, payload.DateOfBirth)
	if err != nil {
		return dto.UserResponse{}, err
	}

	hashed, err := hashPassword(defaultPasswordFromDOB(dob))
	if err != nil {
		return dto.UserResponse{}, err
	}

	admin := models.User{
		Name:         strings.TrimSpace(payload.Name),
		SecretID:     strings.TrimSpace(payload.SecretID),
		Email:        strings.TrimSpace(payload.Email),
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		DateOfBirth:  dob,
		Gender:       payload.Gender,
		BloodGroup:   strings.TrimSpace(payload.BloodGroup),
		PhoneNumber:  strings.TrimSpace(payload.PhoneNumber),
		Address:      strings.TrimSpace(payload.Address),
		AdminAccess:  payload.AdminAccess,
		IsActive:     false,
		IsFirstLogin: true,
	}

	if err := s.users.Create(ctx, &admin); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("admin_id", admin.ID).Msg("admin account created")

	return dto.NewUserResponse(admin), nil
}

func (s *superAdminService) ListAdmins(ctx context.Context, query dto.ListQuery) (dto.Page[dto.UserResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.Page[dto.UserResponse]{}, err
	}

	admins, total, err := s.users.List(ctx, repository.UserFilter{
		Role:  models.RoleAdmin,
		Page:  query.Page,
		Limit: query.Limit,
	})
	if err != nil {
		return dto.Page[dto.UserResponse]{}, err
	}

	return dto.NewPage(dto.NewUserResponseSlice(admins), total, query.Page, query.Limit), nil
}

func (s *superAdminService) GetAdmin(ctx context.Context, id uint) (dto.UserResponse, error) {
	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(admin), nil
}

func (s *superAdminService) UpdateAdmin(ctx context.Context, id uint, payload dto.AdminUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if payload.Name != nil {
		admin.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		admin.Email = strings.TrimSpace(*payload.Email)
	}
	if payload.PhoneNumber != nil {
		admin.PhoneNumber = strings.TrimSpace(*payload.PhoneNumber)
	}
	if payload.BloodGroup != nil {
		admin.BloodGroup = strings.TrimSpace(*payload.BloodGroup)
	}
	if payload.Address != nil {
		admin.Address = strings.TrimSpace(*payload.Address)
	}

	if err := s.users.Update(ctx, &admin); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(admin), nil
}

// UpdateAdminAccess replaces the capability set wholesale; an empty list
// strips every capability.
func (s *superAdminService) UpdateAdminAccess(ctx context.Context, id uint, payload dto.AdminAccessUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	admin.AdminAccess = payload.AdminAccess

	if err := s.users.Update(ctx, &admin); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("admin_id", admin.ID).Int("capabilities", len(payload.AdminAccess)).Msg("admin access updated")

	return dto.NewUserResponse(admin), nil
}

func (s *superAdminService) SetActivity(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	admin.IsActive = *payload.IsActive

	if err := s.users.Update(ctx, &admin); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("admin_id", admin.ID).Bool("is_active", admin.IsActive).Msg("admin activity updated")

	return dto.NewUserResponse(admin), nil
}

// ResetPassword restores the date-of-birth derived default password and
// flags the account for a forced change on next login.
func (s *superAdminService) ResetPassword(ctx context.Context, id uint) error {
	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := hashPassword(defaultPasswordFromDOB(admin.DateOfBirth))
	if err != nil {
		return err
	}

	admin.PasswordHash = hashed
	admin.IsFirstLogin = true

	if err := s.users.Update(ctx, &admin); err != nil {
		return err
	}

	s.logger.Info().Uint("admin_id", admin.ID).Msg("admin password reset")

	return nil
}

func (s *superAdminService) getAdmin(ctx context.Context, id uint) (models.User, error) {
	admin, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAdminNotFound
		}
		return models.User{}, err
	}
	if admin.Role != models.RoleAdmin {
		return models.User{}, ErrAdminNotFound
	}

	return admin, nil
}
