package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/interfaces"
	"github.com/sundaymarket/shop_service/internal/repository"
	"gorm.io/gorm"
)

type AuthService interface {
	SignUp(input dto.SignUpRequest) error
	VerifyOTP(input dto.VerifyOTPRequest) (string, error)
	SendNewOTP(email string) error
	SignIn(input dto.SignInRequest) (string, error)
	RequestPasswordReset(email string) error
	ResetPassword(input dto.ResetPasswordRequest) error
}

type authService struct {
	repo     repository.UserRepository
	producer interfaces.ProducerHandler
	auth     helper.Auth

	resetBaseURL string
}

func NewAuthService(
	repo repository.UserRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
	resetBaseURL string,
) AuthService {
	return &authService{
		repo:         repo,
		producer:     producer,
		auth:         auth,
		resetBaseURL: resetBaseURL,
	}
}

func (s *authService) SignUp(input dto.SignUpRequest) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	role := strings.TrimSpace(strings.ToUpper(input.Role))

	if name == "" || email == "" || strings.TrimSpace(input.Password) == "" {
		return helper.ErrValidation("name, email and password are required")
	}
	if len(input.Password) < 6 {
		return helper.ErrValidation("password must be at least 6 characters")
	}

	if role == "" {
		role = domain.RoleCustomer
	}
	// ADMIN is never self-assignable.
	if role != domain.RoleCustomer && role != domain.RoleSeller {
		return helper.ErrValidation("invalid role")
	}

	_, err := s.repo.FindByEmail(email)
	if err == nil {
		return helper.ErrConflict("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrInternal("failed to register user", err)
	}

	passwordHash, err := helper.HashPassword(input.Password)
	if err != nil {
		return helper.ErrInternal("failed to register user", err)
	}

	code, otpHash, expiresAt, err := helper.GenerateOTP()
	if err != nil {
		return helper.ErrInternal("failed to register user", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        input.Phone,
		Role:         role,
		OTPHash:      &otpHash,
		OTPExpiresAt: &expiresAt,
	}

	if err := s.repo.Create(user); err != nil {
		return helper.ErrInternal("failed to register user", err)
	}

	s.publishOTP(user, code, expiresAt)
	return nil
}

func (s *authService) VerifyOTP(input dto.VerifyOTPRequest) (string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	code := strings.TrimSpace(input.OTP)

	user, err := s.findByEmail(email)
	if err != nil {
		return "", err
	}
	if user.OTPHash == nil {
		return "", helper.ErrNotFound("user or verification code not found")
	}

	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return "", helper.ErrUnauthorized("verification code expired")
	}

	if !helper.VerifyOTP(code, *user.OTPHash) {
		return "", helper.ErrUnauthorized("invalid verification code")
	}

	now := time.Now()
	user.EmailVerified = true
	user.OTPHash = nil
	user.OTPExpiresAt = nil
	user.LastLogin = &now

	if err := s.repo.Save(user); err != nil {
		return "", helper.ErrInternal("failed to verify code", err)
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", helper.ErrInternal("failed to issue token", err)
	}
	return token, nil
}

func (s *authService) SendNewOTP(email string) error {
	user, err := s.findByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return err
	}

	code, otpHash, expiresAt, err := helper.GenerateOTP()
	if err != nil {
		return helper.ErrInternal("failed to generate code", err)
	}

	user.OTPHash = &otpHash
	user.OTPExpiresAt = &expiresAt
	if err := s.repo.Save(user); err != nil {
		return helper.ErrInternal("failed to generate code", err)
	}

	s.publishOTP(user, code, expiresAt)
	return nil
}

func (s *authService) SignIn(input dto.SignInRequest) (string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return "", helper.ErrValidation("email and password are required")
	}

	user, err := s.findByEmail(email)
	if err != nil {
		return "", err
	}

	if !user.EmailVerified {
		if user.OTPHash != nil {
			return "", helper.ErrUnauthorized("please verify your email before signing in")
		}

		// No code pending: issue a fresh one so the user can recover.
		code, otpHash, expiresAt, err := helper.GenerateOTP()
		if err != nil {
			return "", helper.ErrInternal("failed to sign in", err)
		}
		user.OTPHash = &otpHash
		user.OTPExpiresAt = &expiresAt
		if err := s.repo.Save(user); err != nil {
			return "", helper.ErrInternal("failed to sign in", err)
		}
		s.publishOTP(user, code, expiresAt)

		return "", helper.ErrUnauthorized("your email is not verified; a new verification code has been sent")
	}

	if err := s.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", helper.ErrUnauthorized("invalid email or password")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.repo.Save(user); err != nil {
		return "", helper.ErrInternal("failed to sign in", err)
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", helper.ErrInternal("failed to issue token", err)
	}
	return token, nil
}

func (s *authService) RequestPasswordReset(email string) error {
	user, err := s.findByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return err
	}

	token, err := s.auth.GenerateResetToken(user.ID, user.Email)
	if err != nil {
		return helper.ErrInternal("failed to create reset token", err)
	}

	link := fmt.Sprintf("%s?token=%s", s.resetBaseURL, url.QueryEscape(token))

	if s.producer != nil {
		payload, err := json.Marshal(dto.ResetPasswordEvent{
			UserID:    user.ID,
			Email:     user.Email,
			ResetLink: link,
		})
		if err == nil {
			_ = s.producer.PublishMessage([]byte(dto.EventResetPassword), payload)
		}
	}

	return nil
}

func (s *authService) ResetPassword(input dto.ResetPasswordRequest) error {
	claims, err := s.auth.VerifyResetToken(input.Token)
	if err != nil {
		return helper.ErrUnauthorized("invalid or expired reset token")
	}

	if len(strings.TrimSpace(input.Password)) < 6 {
		return helper.ErrValidation("password must be at least 6 characters")
	}

	user, err := s.findByEmail(claims.Email)
	if err != nil {
		return err
	}

	passwordHash, err := helper.HashPassword(input.Password)
	if err != nil {
		return helper.ErrInternal("failed to reset password", err)
	}

	user.PasswordHash = passwordHash
	if err := s.repo.Save(user); err != nil {
		return helper.ErrInternal("failed to reset password", err)
	}
	return nil
}

func (s *authService) findByEmail(email string) (*domain.User, error) {
	if email == "" {
		return nil, helper.ErrValidation("email is required")
	}
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("user not found")
		}
		return nil, helper.ErrInternal("failed to find user", err)
	}
	return user, nil
}

func (s *authService) publishOTP(user *domain.User, code string, expiresAt time.Time) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.VerifyEmailEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	_ = s.producer.PublishMessage([]byte(dto.EventVerifyEmail), payload)
}
