package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trading-journal/internal/domain"
	"trading-journal/internal/storage"
)

func TestScheduleStore_UpsertAndGet(t *testing.T) {
	store := NewScheduleStore()
	ctx := context.Background()

	sch := &domain.Schedule{
		Date:         "2024-01-01",
		TradingHours: []int{9, 10, 11},
		KPIPerHour:   4,
		MinHours:     2,
		CreatedAt:    time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	if err := store.Upsert(ctx, sch); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.GetByDate(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("GetByDate failed: %v", err)
	}
	if got.KPIPerHour != 4 || len(got.TradingHours) != 3 {
		t.Errorf("got %+v, want stored schedule back", got)
	}
}

func TestScheduleStore_NotFound(t *testing.T) {
	store := NewScheduleStore()

	_, err := store.GetByDate(context.Background(), "2024-01-01")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestScheduleStore_UpsertReplaces(t *testing.T) {
	store := NewScheduleStore()
	ctx := context.Background()

	first := &domain.Schedule{Date: "2024-01-01", TradingHours: []int{9, 10, 11}, KPIPerHour: 4, MinHours: 3}
	second := &domain.Schedule{Date: "2024-01-01", TradingHours: []int{20}, KPIPerHour: 9, MinHours: 1}

	if err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := store.GetByDate(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("GetByDate failed: %v", err)
	}
	if len(got.TradingHours) != 1 || got.TradingHours[0] != 20 {
		t.Errorf("TradingHours = %v, want [20]: upsert must replace, not merge", got.TradingHours)
	}
	if got.MinHours != 1 {
		t.Errorf("MinHours = %d, want 1", got.MinHours)
	}
}

func TestScheduleStore_CopiesOnReadAndWrite(t *testing.T) {
	store := NewScheduleStore()
	ctx := context.Background()

	sch := &domain.Schedule{Date: "2024-01-01", TradingHours: []int{9, 10}, KPIPerHour: 4, MinHours: 2}
	if err := store.Upsert(ctx, sch); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// Mutating the caller's slice must not reach stored state.
	sch.TradingHours[0] = 23

	got, err := store.GetByDate(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("GetByDate failed: %v", err)
	}
	if got.TradingHours[0] != 9 {
		t.Errorf("stored hours mutated through caller slice: %v", got.TradingHours)
	}
}

func TestScheduleStore_InvalidInput(t *testing.T) {
	store := NewScheduleStore()

	if err := store.Upsert(context.Background(), &domain.Schedule{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
