package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/observability"
	"github.com/campuscore/campuscore-api/internal/repository"
	"github.com/campuscore/campuscore-api/internal/token"
)

// ErrWrongCredentials is returned for every login failure, whether the
// account is unknown or the password does not match. The message never
// reveals which of the two it was.
var ErrWrongCredentials = errors.New("wrong credentials")

// ErrUserNotFound indicates the referenced account does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrAccountInactive indicates the account exists but has not been
// activated, or was deactivated since.
var ErrAccountInactive = errors.New("account is not active")

// AuthService handles login, logout and self-service account operations.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, userID uint, refreshToken string) error
	Me(ctx context.Context, userID uint) (dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint, payload dto.ChangePasswordRequest) error
	UpdateProfileImage(ctx context.Context, userID uint, file *multipart.FileHeader) (dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	uploads   UploadService
	cfg       config.Config
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, uploads UploadService, cfg config.Config, validator *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		sessions:  sessions,
		uploads:   uploads,
		cfg:       cfg,
		validator: validator,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetBySecretID(ctx, payload.SecretID)
	if err != nil {
		observability.LoginAttempts().WithLabelValues("failure").Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrWrongCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !checkPassword(user.PasswordHash, payload.Password) {
		observability.LoginAttempts().WithLabelValues("failure").Inc()
		return dto.LoginResponse{}, ErrWrongCredentials
	}

	// Credentials are checked first so the inactive message never leaks
	// account state to a caller who does not hold the password.
	if !user.IsActive {
		observability.LoginAttempts().WithLabelValues("failure").Inc()
		return dto.LoginResponse{}, ErrAccountInactive
	}

	claims := token.UserClaims{UserID: user.ID, SecretID: user.SecretID}

	accessToken, err := token.IssueUser(claims, s.cfg.AccessTokenSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	refreshToken, err := token.IssueUser(claims, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	now := s.now()
	if removed, err := s.sessions.DeleteExpired(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to clear expired sessions")
	} else if removed > 0 {
		s.logger.Debug().Int64("removed", removed).Uint("user_id", user.ID).Msg("expired sessions cleared")
	}

	session := models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return dto.LoginResponse{}, err
	}

	observability.LoginAttempts().WithLabelValues("success").Inc()
	s.logger.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return dto.LoginResponse{
		User: dto.NewUserResponse(user),
		Tokens: dto.TokenPairResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

// Logout drops the session matching the presented refresh token. It is
// idempotent: a token that matches nothing is not an error.
func (s *authService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := s.sessions.DeleteByRefreshToken(ctx, userID, refreshToken); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info().Uint("user_id", userID).Msg("user logged out")

	return nil
}

func (s *authService) Me(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !checkPassword(user.PasswordHash, payload.OldPassword) {
		return ErrWrongCredentials
	}

	hashed, err := hashPassword(payload.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	user.IsFirstLogin = false

	if err := s.users.Update(ctx, &user); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("password changed")

	return nil
}

func (s *authService) UpdateProfileImage(ctx context.Context, userID uint, file *multipart.FileHeader) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	uploaded, err := s.uploads.Store(ctx, file)
	if err != nil {
		return dto.UserResponse{}, err
	}

	previous := user.ProfileImage
	user.ProfileImage = uploaded

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	if !previous.IsZero() {
		// Removal of the replaced image is best-effort.
		_ = s.uploads.Remove(ctx, previous)
	}

	return dto.NewUserResponse(user), nil
}
