package service

import (
	"context"
	"errors"
	"log"

	"github.com/Livia-1212/user-management-final/internal/config"
	"github.com/Livia-1212/user-management-final/internal/domain"
	"github.com/Livia-1212/user-management-final/pkg/blacklist"
	"github.com/Livia-1212/user-management-final/pkg/jwt"
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// AuthService turns authenticated users into JWT sessions and handles
// refresh and logout.
type AuthService struct {
	userService    *UserService
	tokenService   *jwt.TokenService
	tokenBlacklist *blacklist.TokenBlacklist
	cfg            *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Tokens *domain.TokenPair `json:"tokens"`
	User   *domain.User      `json:"user"`
}

func NewAuthService(userService *UserService, tokenService *jwt.TokenService, tokenBlacklist *blacklist.TokenBlacklist, cfg *config.Config) *AuthService {
	return &AuthService{
		userService:    userService,
		tokenService:   tokenService,
		tokenBlacklist: tokenBlacklist,
		cfg:            cfg,
	}
}

// Login authenticates the credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokens, err := s.tokenService.GenerateTokenPair(user)
	if err != nil {
		log.Printf("[AUTH_SERVICE] Failed to generate tokens for %s: %v", user.ID, err)
		return nil, err
	}

	return &LoginResponse{Tokens: tokens, User: user}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The
// user is re-read so role changes take effect on the next access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokenService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidRefreshToken
	}

	if claims.IssuedAt != nil {
		revoked, err := s.tokenBlacklist.IsUserBlacklisted(ctx, claims.UserID.String(), claims.IssuedAt.Time)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidRefreshToken
		}
	}

	user, err := s.userService.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	return s.tokenService.GenerateTokenPair(user)
}

// Logout revokes the presented access token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken string, claims *domain.Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	return s.tokenBlacklist.AddWithExpiry(ctx, accessToken, claims.ExpiresAt.Time)
}
