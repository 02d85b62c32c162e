package memory

import (
	"context"
	"sync"

	"trading-journal/internal/domain"
	"trading-journal/internal/storage"
)

// ScheduleStore is an in-memory implementation of storage.ScheduleStore.
type ScheduleStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Schedule // keyed by date
}

// NewScheduleStore creates a new in-memory schedule store.
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{
		data: make(map[string]*domain.Schedule),
	}
}

// GetByDate retrieves the schedule for a date. Returns ErrNotFound if none exists.
func (s *ScheduleStore) GetByDate(_ context.Context, date string) (*domain.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sch, exists := s.data[date]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return copySchedule(sch), nil
}

// Upsert stores the schedule keyed by its date, replacing any existing entry wholesale.
func (s *ScheduleStore) Upsert(_ context.Context, sch *domain.Schedule) error {
	if sch == nil || sch.Date == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sch.Date] = copySchedule(sch)
	return nil
}

// copySchedule returns a deep copy so callers cannot mutate stored state.
func copySchedule(sch *domain.Schedule) *domain.Schedule {
	cp := *sch
	cp.TradingHours = append([]int(nil), sch.TradingHours...)
	return &cp
}

var _ storage.ScheduleStore = (*ScheduleStore)(nil)
