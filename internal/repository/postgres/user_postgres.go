package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/Livia-1212/user-management-final/internal/domain"
	"github.com/Livia-1212/user-management-final/internal/repository"
)

const userColumns = `id, nickname, email, password_hash, first_name, last_name,
	   bio, profile_picture_url, linkedin_profile_url, github_profile_url,
	   role, email_verified, verification_token,
	   is_locked, failed_login_attempts, last_login_at,
	   is_professional, professional_status_updated_at, is_converted,
	   invited_by_user_id, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, nickname, email, password_hash, first_name, last_name,
			bio, profile_picture_url, linkedin_profile_url, github_profile_url,
			role, email_verified, verification_token,
			is_locked, failed_login_attempts, last_login_at,
			is_professional, professional_status_updated_at, is_converted,
			invited_by_user_id, created_at, updated_at
		) VALUES (
			:id, :nickname, :email, :password_hash, :first_name, :last_name,
			:bio, :profile_picture_url, :linkedin_profile_url, :github_profile_url,
			:role, :email_verified, :verification_token,
			:is_locked, :failed_login_attempts, :last_login_at,
			:is_professional, :professional_status_updated_at, :is_converted,
			:invited_by_user_id, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID. Returns nil without error when
// no row matches.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by their email address. Returns nil
// without error when no row matches.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetByNickname retrieves a user by their nickname. Returns nil without
// error when no row matches.
func (r *userRepository) GetByNickname(ctx context.Context, nickname string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE nickname = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, nickname)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by nickname: %w", err)
	}

	return &user, nil
}

// Update writes the full user row back to the database
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET nickname = :nickname,
			email = :email,
			password_hash = :password_hash,
			first_name = :first_name,
			last_name = :last_name,
			bio = :bio,
			profile_picture_url = :profile_picture_url,
			linkedin_profile_url = :linkedin_profile_url,
			github_profile_url = :github_profile_url,
			role = :role,
			email_verified = :email_verified,
			verification_token = :verification_token,
			is_locked = :is_locked,
			failed_login_attempts = :failed_login_attempts,
			last_login_at = :last_login_at,
			is_professional = :is_professional,
			professional_status_updated_at = :professional_status_updated_at,
			is_converted = :is_converted,
			invited_by_user_id = :invited_by_user_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// ApplyPatch updates only the fields set on the patch in a single
// statement and reports how many rows were touched.
func (r *userRepository) ApplyPatch(ctx context.Context, id uuid.UUID, patch *domain.UserPatch) (int64, error) {
	sets := make([]string, 0, 10)
	args := make([]interface{}, 0, 11)

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.Bio != nil {
		add("bio", *patch.Bio)
	}
	if patch.ProfilePictureURL != nil {
		add("profile_picture_url", *patch.ProfilePictureURL)
	}
	if patch.LinkedinProfileURL != nil {
		add("linkedin_profile_url", *patch.LinkedinProfileURL)
	}
	if patch.GithubProfileURL != nil {
		add("github_profile_url", *patch.GithubProfileURL)
	}
	if patch.Role != nil {
		add("role", *patch.Role)
	}
	if patch.IsProfessional != nil {
		add("is_professional", *patch.IsProfessional)
		add("professional_status_updated_at", time.Now())
	}

	if len(sets) == 0 {
		return 0, nil
	}

	add("updated_at", time.Now())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return 0, mapped
		}
		return 0, fmt.Errorf("failed to patch user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// Delete removes a user row and reports how many rows were removed
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// List retrieves a page of users in insertion order
func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at LIMIT $1 OFFSET $2`

	var users []*domain.User
	err := r.db.SelectContext(ctx, &users, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Count returns the total number of user rows
func (r *userRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users`

	var count int
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// CountByRole returns the number of users holding the given role
func (r *userRepository) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE role = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, role)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}

	return count, nil
}

// CountInactiveBefore counts users whose last login predates the cutoff.
// A NULL last_login_at means the user never logged in and counts as
// inactive under every cutoff.
func (r *userRepository) CountInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE last_login_at IS NULL OR last_login_at < $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to count inactive users: %w", err)
	}

	return count, nil
}

// UpdateLastLogin stamps the last login timestamp for a user and
// reports how many rows were touched (zero when the user is gone).
func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	query := `
		UPDATE users
		SET last_login_at = $1,
			updated_at = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, at, time.Now(), id)
	if err != nil {
		return 0, fmt.Errorf("failed to update last login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// mapUniqueViolation translates a pq unique-constraint violation into
// the repository sentinel for the offending column, or nil for any
// other error.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return repository.ErrDuplicateEmail
	case strings.Contains(pqErr.Constraint, "nickname"):
		return repository.ErrDuplicateNickname
	}
	return fmt.Errorf("unique constraint violation: %w", err)
}
