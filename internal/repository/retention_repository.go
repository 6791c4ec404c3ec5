package repository

import (
	"context"

	"github.com/Livia-1212/user-management-final/internal/domain"
)

// RetentionRepository persists retention snapshots. The store is
// append-only; snapshots are never updated or deleted.
type RetentionRepository interface {
	Create(ctx context.Context, snapshot *domain.RetentionSnapshot) error
	ListAll(ctx context.Context) ([]*domain.RetentionSnapshot, error)
}
