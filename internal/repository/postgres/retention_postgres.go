package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/Livia-1212/user-management-final/internal/domain"
	"github.com/Livia-1212/user-management-final/internal/repository"
)

type retentionRepository struct {
	db *sqlx.DB
}

// NewRetentionRepository creates a new PostgreSQL retention snapshot repository
func NewRetentionRepository(db *sqlx.DB) repository.RetentionRepository {
	return &retentionRepository{db: db}
}

// Create appends a new retention snapshot
func (r *retentionRepository) Create(ctx context.Context, snapshot *domain.RetentionSnapshot) error {
	query := `
		INSERT INTO retention_analytics (
			id, timestamp, total_anonymous_users, total_authenticated_users,
			conversion_rate, inactive_users_24hr, inactive_users_48hr,
			inactive_users_1wk, inactive_users_1yr
		) VALUES (
			:id, :timestamp, :total_anonymous_users, :total_authenticated_users,
			:conversion_rate, :inactive_users_24hr, :inactive_users_48hr,
			:inactive_users_1wk, :inactive_users_1yr
		)`

	_, err := r.db.NamedExecContext(ctx, query, snapshot)
	if err != nil {
		return fmt.Errorf("failed to create retention snapshot: %w", err)
	}

	return nil
}

// ListAll retrieves every snapshot, most recent first
func (r *retentionRepository) ListAll(ctx context.Context) ([]*domain.RetentionSnapshot, error) {
	query := `
		SELECT id, timestamp, total_anonymous_users, total_authenticated_users,
			   conversion_rate, inactive_users_24hr, inactive_users_48hr,
			   inactive_users_1wk, inactive_users_1yr
		FROM retention_analytics
		ORDER BY timestamp DESC`

	var snapshots []*domain.RetentionSnapshot
	err := r.db.SelectContext(ctx, &snapshots, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list retention snapshots: %w", err)
	}

	return snapshots, nil
}
