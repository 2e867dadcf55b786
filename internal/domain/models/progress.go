// internal/domain/models/progress.go
package models

import "time"

// UserProgress is the aggregate computed on demand by the progress store.
// It is never persisted.
type UserProgress struct {
	UserEmail     string     `json:"user_email"`
	TotalSessions int64      `json:"total_sessions"`
	TotalSolved   int64      `json:"total_solved"`
	LastSessionAt *time.Time `json:"last_session_at,omitempty"`
}
