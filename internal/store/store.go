package store

import (
	"context"
	"errors"

	"github.com/seantiz/abacus/internal/model"
)

// ErrNotFound is returned when a session is not found.
var ErrNotFound = errors.New("session not found")

// ErrInvalidTransition is returned when a session status transition is not
// allowed, or when a closed session would be modified.
var ErrInvalidTransition = errors.New("invalid status transition")

// SessionStats holds aggregate usage statistics.
type SessionStats struct {
	Total         int            `json:"total"`
	CountByStatus map[string]int `json:"count_by_status"`
	TotalPresses  int            `json:"total_presses"`
	TotalFailures int            `json:"total_failures"`
	AvgPresses    float64        `json:"avg_presses"`
}

// Store defines the persistence operations for calculator sessions.
type Store interface {
	CreateSession(ctx context.Context, s *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context, limit, offset int) ([]*model.Session, int, error)
	UpdateSession(ctx context.Context, s *model.Session) error
	UpdateSessionStatus(ctx context.Context, id, status string) error
	GetSessionStats(ctx context.Context) (*SessionStats, error)
	Close() error
}
