package storage

import (
	"context"

	"trading-journal/internal/domain"
)

// ScheduleStore provides access to schedules storage.
type ScheduleStore interface {
	// GetByDate retrieves the schedule for a date. Returns ErrNotFound if none exists.
	GetByDate(ctx context.Context, date string) (*domain.Schedule, error)

	// Upsert stores the schedule keyed by its date, replacing any existing
	// row wholesale. Fields absent from sch are lost, not preserved.
	Upsert(ctx context.Context, sch *domain.Schedule) error
}

// SessionStore provides access to sessions storage.
type SessionStore interface {
	// GetByDateHour retrieves the session for (date, hour). Returns ErrNotFound if none exists.
	GetByDateHour(ctx context.Context, date string, hour int) (*domain.Session, error)

	// ListByDate retrieves all sessions for a date, ordered by hour ASC.
	ListByDate(ctx context.Context, date string) ([]*domain.Session, error)

	// ListByDatePrefix retrieves all sessions whose date starts with prefix
	// (YYYY-MM or YYYY window queries), ordered by date ASC then hour ASC.
	ListByDatePrefix(ctx context.Context, prefix string) ([]*domain.Session, error)

	// ListRecent retrieves at most limit sessions ordered by date DESC then hour DESC.
	ListRecent(ctx context.Context, limit int) ([]*domain.Session, error)

	// Upsert stores the session keyed by (date, hour), replacing any existing
	// row wholesale. The id of an existing row is preserved; otherwise the id
	// of s is used. Returns the stored session with its resolved id.
	Upsert(ctx context.Context, s *domain.Session) (*domain.Session, error)

	// UpdateByID overwrites the fields of the session with id s.ID, keeping
	// its original created_at. Returns ErrNotFound if no such session exists,
	// and ErrConflict if the update would move the session onto a (date, hour)
	// slot held by a different session.
	UpdateByID(ctx context.Context, s *domain.Session) error
}
