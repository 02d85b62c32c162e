package postgres

import (
	"context"
	"fmt"

	"trading-journal/internal/domain"
	"trading-journal/internal/storage"
)

// ScheduleStore implements storage.ScheduleStore using PostgreSQL.
type ScheduleStore struct {
	pool *Pool
}

// NewScheduleStore creates a new ScheduleStore.
func NewScheduleStore(pool *Pool) *ScheduleStore {
	return &ScheduleStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ScheduleStore = (*ScheduleStore)(nil)

// GetByDate retrieves the schedule for a date. Returns ErrNotFound if none exists.
func (s *ScheduleStore) GetByDate(ctx context.Context, date string) (*domain.Schedule, error) {
	query := `
		SELECT date, trading_hours, kpi_per_hour, min_hours, created_at
		FROM schedules
		WHERE date = $1
	`

	var sch domain.Schedule
	err := s.pool.QueryRow(ctx, query, date).Scan(
		&sch.Date, &sch.TradingHours, &sch.KPIPerHour, &sch.MinHours, &sch.CreatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule by date: %w", err)
	}
	return &sch, nil
}

// Upsert stores the schedule keyed by its date. Every column is overwritten,
// including created_at: replace semantics, not a partial patch.
func (s *ScheduleStore) Upsert(ctx context.Context, sch *domain.Schedule) error {
	if sch == nil || sch.Date == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO schedules (date, trading_hours, kpi_per_hour, min_hours, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO UPDATE SET
			trading_hours = EXCLUDED.trading_hours,
			kpi_per_hour  = EXCLUDED.kpi_per_hour,
			min_hours     = EXCLUDED.min_hours,
			created_at    = EXCLUDED.created_at
	`

	_, err := s.pool.Exec(ctx, query,
		sch.Date, sch.TradingHours, sch.KPIPerHour, sch.MinHours, sch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert schedule: %w", err)
	}
	return nil
}
