package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/Livia-1212/user-management-final/internal/domain"
	"github.com/Livia-1212/user-management-final/internal/repository"
)

// AnalyticsService computes retention metrics over the user store and
// records them as immutable snapshots.
type AnalyticsService struct {
	userRepo      repository.UserRepository
	retentionRepo repository.RetentionRepository
}

func NewAnalyticsService(userRepo repository.UserRepository, retentionRepo repository.RetentionRepository) *AnalyticsService {
	return &AnalyticsService{
		userRepo:      userRepo,
		retentionRepo: retentionRepo,
	}
}

// CalculateRetentionMetrics computes aggregate counts against the
// store at a single instant and appends one snapshot, even when every
// count is zero. Users who never logged in count as inactive under
// every window.
func (s *AnalyticsService) CalculateRetentionMetrics(ctx context.Context) (*domain.RetentionSnapshot, error) {
	now := time.Now().UTC()

	totalAnonymous, err := s.userRepo.CountByRole(ctx, domain.RoleAnonymous)
	if err != nil {
		return nil, fmt.Errorf("failed to count anonymous users: %w", err)
	}

	totalAuthenticated, err := s.userRepo.CountByRole(ctx, domain.RoleAuthenticated)
	if err != nil {
		return nil, fmt.Errorf("failed to count authenticated users: %w", err)
	}

	inactive24hr, err := s.userRepo.CountInactiveBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count 24hr-inactive users: %w", err)
	}

	inactive48hr, err := s.userRepo.CountInactiveBefore(ctx, now.Add(-48*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count 48hr-inactive users: %w", err)
	}

	inactive1wk, err := s.userRepo.CountInactiveBefore(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count 1wk-inactive users: %w", err)
	}

	inactive1yr, err := s.userRepo.CountInactiveBefore(ctx, now.Add(-365*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count 1yr-inactive users: %w", err)
	}

	snapshot := &domain.RetentionSnapshot{
		ID:                      uuid.New(),
		Timestamp:               now,
		TotalAnonymousUsers:     totalAnonymous,
		TotalAuthenticatedUsers: totalAuthenticated,
		ConversionRate:          conversionRate(totalAnonymous, totalAuthenticated),
		InactiveUsers24hr:       inactive24hr,
		InactiveUsers48hr:       inactive48hr,
		InactiveUsers1wk:        inactive1wk,
		InactiveUsers1yr:        inactive1yr,
	}

	if err := s.retentionRepo.Create(ctx, snapshot); err != nil {
		log.Printf("[ANALYTICS] Failed to save retention snapshot: %v", err)
		return nil, err
	}

	log.Printf("[ANALYTICS] Retention snapshot recorded: anonymous=%d authenticated=%d conversion=%s",
		snapshot.TotalAnonymousUsers, snapshot.TotalAuthenticatedUsers, snapshot.ConversionRate)

	return snapshot, nil
}

// GetRetentionData returns every snapshot, most recent first.
func (s *AnalyticsService) GetRetentionData(ctx context.Context) ([]*domain.RetentionSnapshot, error) {
	return s.retentionRepo.ListAll(ctx)
}

// LogUserActivity stamps the user's last login time. A missing user is
// a silent no-op.
func (s *AnalyticsService) LogUserActivity(ctx context.Context, userID uuid.UUID) error {
	rows, err := s.userRepo.UpdateLastLogin(ctx, userID, time.Now().UTC())
	if err != nil {
		log.Printf("[ANALYTICS] Failed to log activity for %s: %v", userID, err)
		return err
	}
	if rows == 0 {
		log.Printf("[ANALYTICS] Activity ignored for unknown user %s", userID)
	}
	return nil
}

// conversionRate formats authenticated users as a percentage of
// anonymous plus authenticated, "0%" when there are neither.
func conversionRate(anonymous, authenticated int) string {
	total := anonymous + authenticated
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(authenticated)/float64(total)*100)
}
