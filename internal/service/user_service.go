package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/Livia-1212/user-management-final/internal/config"
	"github.com/Livia-1212/user-management-final/internal/domain"
	"github.com/Livia-1212/user-management-final/internal/repository"
	"github.com/Livia-1212/user-management-final/pkg/blacklist"
	"github.com/Livia-1212/user-management-final/pkg/email"
	"github.com/Livia-1212/user-management-final/pkg/hash"
	"github.com/Livia-1212/user-management-final/pkg/nickname"
	"github.com/Livia-1212/user-management-final/pkg/token"
	"github.com/Livia-1212/user-management-final/pkg/validator"
)

// Custom errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("only admins may change roles")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)

type UserService struct {
	userRepo       repository.UserRepository
	emailService   email.EmailService
	validate       *validator.Validator
	tokenBlacklist *blacklist.TokenBlacklist
	cfg            *config.Config
}

type RegisterRequest struct {
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=8"`
	FirstName          *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName           *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Bio                *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
	LinkedinProfileURL *string `json:"linkedin_profile_url,omitempty" validate:"omitempty,url"`
	GithubProfileURL   *string `json:"github_profile_url,omitempty" validate:"omitempty,url"`
}

type UpdateUserRequest struct {
	Email              *string          `json:"email,omitempty" validate:"omitempty,email"`
	FirstName          *string          `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName           *string          `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Bio                *string          `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePictureURL  *string          `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
	LinkedinProfileURL *string          `json:"linkedin_profile_url,omitempty" validate:"omitempty,url"`
	GithubProfileURL   *string          `json:"github_profile_url,omitempty" validate:"omitempty,url"`
	Role               *domain.UserRole `json:"role,omitempty" validate:"omitempty,oneof=ANONYMOUS AUTHENTICATED MANAGER ADMIN"`
	IsProfessional     *bool            `json:"is_professional,omitempty"`
}

// ToPatch converts the request into a field patch for the store.
func (r *UpdateUserRequest) ToPatch() *domain.UserPatch {
	return &domain.UserPatch{
		Email:              r.Email,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Bio:                r.Bio,
		ProfilePictureURL:  r.ProfilePictureURL,
		LinkedinProfileURL: r.LinkedinProfileURL,
		GithubProfileURL:   r.GithubProfileURL,
		Role:               r.Role,
		IsProfessional:     r.IsProfessional,
	}
}

func NewUserService(userRepo repository.UserRepository, emailService email.EmailService, validate *validator.Validator, cfg *config.Config) *UserService {
	return &UserService{
		userRepo:     userRepo,
		emailService: emailService,
		validate:     validate,
		cfg:          cfg,
	}
}

// SetTokenBlacklist wires the blacklist used to revoke outstanding
// sessions after a password reset (optional).
func (s *UserService) SetTokenBlacklist(tb *blacklist.TokenBlacklist) {
	s.tokenBlacklist = tb
}

// Register creates a new user. The first user ever created becomes an
// auto-verified ADMIN; everyone else starts as ANONYMOUS with a pending
// verification token.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("[USER_SERVICE] Failed to check existing email: %v", err)
		return nil, err
	}
	if existing != nil {
		return nil, repository.ErrDuplicateEmail
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	nick, err := s.uniqueNickname(ctx)
	if err != nil {
		return nil, err
	}

	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:                 uuid.New(),
		Nickname:           nick,
		Email:              req.Email,
		PasswordHash:       passwordHash,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Bio:                req.Bio,
		ProfilePictureURL:  req.ProfilePictureURL,
		LinkedinProfileURL: req.LinkedinProfileURL,
		GithubProfileURL:   req.GithubProfileURL,
		Role:               domain.RoleAnonymous,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	// The very first account becomes the auto-verified admin
	if userCount == 0 {
		user.Role = domain.RoleAdmin
		user.EmailVerified = true
	} else {
		verificationToken, err := token.Generate()
		if err != nil {
			return nil, err
		}
		user.VerificationToken = &verificationToken
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Printf("[USER_SERVICE] Failed to create user: %v", err)
		return nil, err
	}

	if user.VerificationToken != nil && s.emailService != nil {
		verificationURL := fmt.Sprintf("%s/api/v1/auth/verify-email?user_id=%s&token=%s",
			s.cfg.Server.BaseURL, user.ID, *user.VerificationToken)
		go func() {
			if err := s.emailService.SendVerificationEmail(context.Background(), user.Email, user.Nickname, verificationURL); err != nil {
				log.Printf("[USER_SERVICE] Failed to send verification email to %s: %v", user.Email, err)
			}
		}()
	}

	return user, nil
}

// Update applies a partial update. Role changes require an ADMIN actor;
// a rejected role change rejects the whole patch.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req UpdateUserRequest, actor *domain.User) (*domain.User, error) {
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	if patch.Role != nil && (actor == nil || actor.Role != domain.RoleAdmin) {
		log.Printf("[USER_SERVICE] Unauthorized role update attempt on user %s", userID)
		return nil, ErrUnauthorized
	}

	rows, err := s.userRepo.ApplyPatch(ctx, userID, patch)
	if err != nil {
		log.Printf("[USER_SERVICE] Failed to update user %s: %v", userID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUserNotFound
	}

	return s.userRepo.GetByID(ctx, userID)
}

// Delete removes the user row and reports whether one existed.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) (bool, error) {
	rows, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// List returns a page of users in insertion order.
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// Count returns the total number of users.
func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.userRepo.Count(ctx)
}

// GetByID retrieves a single user.
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByEmail retrieves a single user by email.
func (s *UserService) GetByEmail(ctx context.Context, emailAddr string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Login authenticates by email and password. Absent, unverified, and
// locked accounts all fail with the same ErrInvalidCredentials so the
// caller learns nothing about which branch fired. A wrong password
// increments the failure counter and locks the account at the
// configured maximum.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		log.Printf("[USER_SERVICE] Login lookup failed: %v", err)
		return nil, err
	}
	if user == nil || !user.EmailVerified || user.IsLocked {
		return nil, ErrInvalidCredentials
	}

	ok, err := hash.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		log.Printf("[USER_SERVICE] Password verification failed: %v", err)
		return nil, ErrInvalidCredentials
	}

	if !ok {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= s.cfg.Auth.MaxLoginAttempts {
			user.IsLocked = true
			log.Printf("[USER_SERVICE] Account locked after %d failed attempts: %s", user.FailedLoginAttempts, user.ID)
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			log.Printf("[USER_SERVICE] Failed to persist failed login: %v", err)
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.FailedLoginAttempts = 0
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("[USER_SERVICE] Failed to persist successful login: %v", err)
		return nil, err
	}

	return user, nil
}

// Invite creates a stub account for the invitee and mails them an
// invitation link carrying a fresh verification token. An email already
// registered or invited is rejected by the store's unique constraint.
func (s *UserService) Invite(ctx context.Context, emailAddr string, inviterID uuid.UUID) (bool, error) {
	invitationToken, err := token.Generate()
	if err != nil {
		return false, err
	}

	nick, err := s.uniqueNickname(ctx)
	if err != nil {
		return false, err
	}

	now := time.Now()
	user := &domain.User{
		ID:                uuid.New(),
		Nickname:          nick,
		Email:             emailAddr,
		Role:              domain.RoleAnonymous,
		VerificationToken: &invitationToken,
		InvitedByUserID:   &inviterID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Printf("[USER_SERVICE] Failed to invite %s: %v", emailAddr, err)
		return false, err
	}

	if s.emailService != nil {
		inviteLink := fmt.Sprintf("%s/register?token=%s", s.cfg.Server.BaseURL, invitationToken)
		if err := s.emailService.SendInvitationEmail(ctx, emailAddr, inviteLink); err != nil {
			log.Printf("[USER_SERVICE] Failed to send invitation email to %s: %v", emailAddr, err)
			return false, err
		}
	}

	return true, nil
}

// ResetPassword stores a new password digest, clears the failure
// counter, and unlocks the account. Reports whether the user existed.
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	passwordHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.FailedLoginAttempts = 0
	user.IsLocked = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("[USER_SERVICE] Failed to reset password for %s: %v", userID, err)
		return false, err
	}

	// Force re-login with the new password
	if s.tokenBlacklist != nil {
		if err := s.tokenBlacklist.BlacklistUser(ctx, userID.String(), s.cfg.JWT.RefreshTokenExpiry); err != nil {
			log.Printf("[USER_SERVICE] Failed to revoke tokens for %s: %v", userID, err)
		}
	}

	return true, nil
}

// VerifyEmailWithToken marks the email verified when the token matches,
// clears the token, and promotes ANONYMOUS accounts to AUTHENTICATED.
func (s *UserService) VerifyEmailWithToken(ctx context.Context, userID uuid.UUID, verificationToken string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	if user.VerificationToken == nil || *user.VerificationToken != verificationToken {
		return false, nil
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	if user.Role == domain.RoleAnonymous {
		user.Role = domain.RoleAuthenticated
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("[USER_SERVICE] Failed to verify email for %s: %v", userID, err)
		return false, err
	}

	return true, nil
}

// UnlockAccount clears the lock and failure counter, only when the
// account was actually locked.
func (s *UserService) UnlockAccount(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil || !user.IsLocked {
		return false, nil
	}

	user.IsLocked = false
	user.FailedLoginAttempts = 0
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("[USER_SERVICE] Failed to unlock account %s: %v", userID, err)
		return false, err
	}

	return true, nil
}

// uniqueNickname generates candidate nicknames until one is free.
func (s *UserService) uniqueNickname(ctx context.Context) (string, error) {
	for {
		candidate, err := nickname.Generate()
		if err != nil {
			return "", err
		}
		existing, err := s.userRepo.GetByNickname(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
}
