package domain

import (
	"time"

	"github.com/google/uuid"
)

// RetentionSnapshot is one immutable row of aggregate user metrics,
// written by the analytics service on each scheduled run.
type RetentionSnapshot struct {
	ID                      uuid.UUID `json:"id" db:"id"`
	Timestamp               time.Time `json:"timestamp" db:"timestamp"`
	TotalAnonymousUsers     int       `json:"total_anonymous_users" db:"total_anonymous_users"`
	TotalAuthenticatedUsers int       `json:"total_authenticated_users" db:"total_authenticated_users"`
	ConversionRate          string    `json:"conversion_rate" db:"conversion_rate"`
	InactiveUsers24hr       int       `json:"inactive_users_24hr" db:"inactive_users_24hr"`
	InactiveUsers48hr       int       `json:"inactive_users_48hr" db:"inactive_users_48hr"`
	InactiveUsers1wk        int       `json:"inactive_users_1wk" db:"inactive_users_1wk"`
	InactiveUsers1yr        int       `json:"inactive_users_1yr" db:"inactive_users_1yr"`
}
