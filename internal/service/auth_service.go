package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/observability"
	"github.com/campuslink/portal-api/internal/repository"
)

var (
	// ErrAccountNotFound indicates no account exists for the email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrRoleMismatch indicates the login requested a different role than
	// the one the account was registered with.
	ErrRoleMismatch = errors.New("account role mismatch")
	// ErrInvalidCredentials indicates the password check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken indicates the signup email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// AuthService handles account registration, login and profile management.
type AuthService interface {
	Signup(ctx context.Context, payload dto.SignupRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error)
}

type authService struct {
	users     repository.UserRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds the auth service.
func NewAuthService(users repository.UserRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &authService{
		users:     users,
		validator: validate,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, payload dto.SignupRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         payload.Role,
	}

	switch payload.Role {
	case models.RoleStudent:
		user.RollNumber = payload.RollNumber
		user.Class = payload.Class
	case models.RoleTeacher:
		user.Department = payload.Department
		user.Designation = payload.Designation
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("account created")

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.LoginAttempts().WithLabelValues("not_found").Inc()
			return dto.AuthResponse{}, ErrAccountNotFound
		}
		return dto.AuthResponse{}, err
	}

	if user.Role != payload.Role {
		observability.LoginAttempts().WithLabelValues("role_mismatch").Inc()
		return dto.AuthResponse{}, ErrRoleMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		observability.LoginAttempts().WithLabelValues("bad_password").Inc()
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	observability.LoginAttempts().WithLabelValues("success").Inc()
	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")

	return s.issueToken(user)
}

func (s *authService) Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrAccountNotFound
		}
		return dto.ProfileResponse{}, err
	}

	return dto.NewProfileResponse(user), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrAccountNotFound
		}
		return dto.ProfileResponse{}, err
	}

	if payload.Phone != nil {
		user.Phone = *payload.Phone
	}
	if payload.Address != nil {
		user.Address = *payload.Address
	}
	if user.IsTeacher() {
		if payload.Qualification != nil {
			user.Qualification = *payload.Qualification
		}
		if payload.Experience != nil {
			user.Experience = *payload.Experience
		}
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.ProfileResponse{}, err
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	return dto.NewProfileResponse(updated), nil
}

func (s *authService) issueToken(user models.User) (dto.AuthResponse, error) {
	expiresAt := s.now().Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"name": user.Name,
		"role": user.Role,
		"iat":  s.now().Unix(),
		"exp":  expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewProfileResponse(user),
	}, nil
}
