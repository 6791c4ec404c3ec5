package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/Livia-1212/user-management-final/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByNickname(ctx context.Context, nickname string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ApplyPatch(ctx context.Context, id uuid.UUID, patch *domain.UserPatch) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role domain.UserRole) (int, error)
	CountInactiveBefore(ctx context.Context, cutoff time.Time) (int, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
}
