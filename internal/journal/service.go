package journal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"trading-journal/internal/domain"
	"trading-journal/internal/storage"
)

// recentSessionLimit caps the global "recent activity" listing.
const recentSessionLimit = 100

// Service implements the journal write and read flows on top of the stores.
//
// The penalty lookup and the session write are two independent store calls
// with no transaction between them. Two near-simultaneous writes to the same
// date can both read a stale previous hour: last writer wins on penalty, with
// no cross-hour consistency guarantee.
type Service struct {
	schedules storage.ScheduleStore
	sessions  storage.SessionStore
	now       func() time.Time
}

// NewService creates a journal service backed by the given stores.
func NewService(schedules storage.ScheduleStore, sessions storage.SessionStore) *Service {
	return &Service{
		schedules: schedules,
		sessions:  sessions,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ScheduleInput is the request payload for a schedule upsert.
type ScheduleInput struct {
	Date         string  `json:"date"`
	TradingHours []int   `json:"trading_hours"`
	KPIPerHour   float64 `json:"kpi_per_hour"`
	MinHours     int     `json:"min_hours"`
}

// SessionInput is the request payload for session create and update.
type SessionInput struct {
	Date    string  `json:"date"`
	Hour    int     `json:"hour"`
	Balance float64 `json:"balance"`
	Token   string  `json:"token"`
	KPI     float64 `json:"kpi"`
}

// GetSchedule retrieves the schedule for a date. A missing schedule is not an
// error: (nil, nil) means "no schedule for this date yet".
func (s *Service) GetSchedule(ctx context.Context, date string) (*domain.Schedule, error) {
	if date == "" {
		return nil, validationf("date parameter required")
	}

	sch, err := s.schedules.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return sch, nil
}

// UpsertSchedule validates the input, sorts the trading hours ascending and
// replaces any existing schedule for the date wholesale.
func (s *Service) UpsertSchedule(ctx context.Context, in ScheduleInput) (*domain.Schedule, error) {
	if in.Date == "" || len(in.TradingHours) == 0 || in.KPIPerHour == 0 || in.MinHours == 0 {
		return nil, validationf("missing required fields")
	}
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}
	if in.KPIPerHour < 0 {
		return nil, validationf("kpi_per_hour must be positive")
	}
	if in.MinHours < 0 {
		return nil, validationf("min_hours must be positive")
	}
	for _, h := range in.TradingHours {
		if h < 0 || h > 23 {
			return nil, validationf("trading hour %d out of range [0,23]", h)
		}
	}
	if len(in.TradingHours) < in.MinHours {
		return nil, validationf("minimum %d hours required", in.MinHours)
	}

	hours := append([]int(nil), in.TradingHours...)
	sort.Ints(hours)

	sch := &domain.Schedule{
		Date:         in.Date,
		TradingHours: hours,
		KPIPerHour:   in.KPIPerHour,
		MinHours:     in.MinHours,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.schedules.Upsert(ctx, sch); err != nil {
		return nil, fmt.Errorf("upsert schedule: %w", err)
	}
	return sch, nil
}

// ListSessions returns the sessions for a date ordered by hour ascending, or,
// when date is empty, the most recent sessions across all dates.
func (s *Service) ListSessions(ctx context.Context, date string) ([]*domain.Session, error) {
	if date == "" {
		return s.sessions.ListRecent(ctx, recentSessionLimit)
	}
	return s.sessions.ListByDate(ctx, date)
}

// RecordSession upserts the session for (date, hour), computing the penalty
// from the previous hour of the same date. Both timestamps are restamped:
// an upsert replaces the slot wholesale.
func (s *Service) RecordSession(ctx context.Context, in SessionInput) (*domain.Session, error) {
	if err := validateSessionInput(in); err != nil {
		return nil, err
	}

	penalty, err := s.penaltyFor(ctx, in.Date, in.Hour, in.KPI)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Date:      in.Date,
		Hour:      in.Hour,
		Balance:   in.Balance,
		Token:     in.Token,
		KPI:       in.KPI,
		Penalty:   penalty,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, err := s.sessions.Upsert(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	return stored, nil
}

// UpdateSession rewrites an existing session addressed by id, recomputing the
// penalty the same way as RecordSession. created_at is preserved; updated_at
// is restamped. Returns storage.ErrNotFound when the id does not exist and
// storage.ErrConflict when the new (date, hour) slot is already taken by a
// different session.
func (s *Service) UpdateSession(ctx context.Context, id string, in SessionInput) (*domain.Session, error) {
	if id == "" {
		return nil, validationf("session id required")
	}
	if err := validateSessionInput(in); err != nil {
		return nil, err
	}

	penalty, err := s.penaltyFor(ctx, in.Date, in.Hour, in.KPI)
	if err != nil {
		return nil, err
	}

	sess := &domain.Session{
		ID:        id,
		Date:      in.Date,
		Hour:      in.Hour,
		Balance:   in.Balance,
		Token:     in.Token,
		KPI:       in.KPI,
		Penalty:   penalty,
		UpdatedAt: s.now().UTC(),
	}

	if err := s.sessions.UpdateByID(ctx, sess); err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update session: %w", err)
	}
	return sess, nil
}

// SuggestedMinimum returns the profit floor the UI shows for an upcoming
// hour, based on the recorded outcome of the preceding hour.
func (s *Service) SuggestedMinimum(ctx context.Context, date string, hour int, kpi float64) (float64, error) {
	if hour <= 0 {
		return RequiredMinimum(nil, kpi), nil
	}

	prev, err := s.sessions.GetByDateHour(ctx, date, hour-1)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return RequiredMinimum(nil, kpi), nil
		}
		return 0, fmt.Errorf("lookup previous session: %w", err)
	}
	return RequiredMinimum(&prev.Balance, kpi), nil
}

// penaltyFor derives the stored penalty for (date, hour) from the previous
// hour's session. Hour 0 has no predecessor within the date.
func (s *Service) penaltyFor(ctx context.Context, date string, hour int, kpi float64) (float64, error) {
	if hour == 0 {
		return 0, nil
	}

	prev, err := s.sessions.GetByDateHour(ctx, date, hour-1)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("lookup previous session: %w", err)
	}
	return Penalty(prev.Balance, kpi), nil
}

func validateSessionInput(in SessionInput) error {
	if in.Date == "" {
		return validationf("missing required fields")
	}
	if err := validateDate(in.Date); err != nil {
		return err
	}
	if in.Hour < 0 || in.Hour > 23 {
		return validationf("hour %d out of range [0,23]", in.Hour)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return validationf("date must be YYYY-MM-DD")
	}
	return nil
}
