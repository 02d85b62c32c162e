package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-journal/internal/domain"
	"trading-journal/internal/storage"
	"trading-journal/internal/storage/postgres"
)

func TestScheduleStore_UpsertAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewScheduleStore(pool)
	ctx := context.Background()

	sch := &domain.Schedule{
		Date:         "2024-01-01",
		TradingHours: []int{9, 10, 14},
		KPIPerHour:   4.5,
		MinHours:     3,
		CreatedAt:    time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Upsert(ctx, sch))

	got, err := store.GetByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, sch.Date, got.Date)
	assert.Equal(t, []int{9, 10, 14}, got.TradingHours)
	assert.Equal(t, 4.5, got.KPIPerHour)
	assert.Equal(t, 3, got.MinHours)
	assert.True(t, got.CreatedAt.Equal(sch.CreatedAt))
}

func TestScheduleStore_GetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewScheduleStore(pool)

	_, err := store.GetByDate(context.Background(), "2099-01-01")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestScheduleStore_UpsertReplacesWholesale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewScheduleStore(pool)
	ctx := context.Background()

	first := &domain.Schedule{
		Date: "2024-01-01", TradingHours: []int{9, 10, 11},
		KPIPerHour: 4, MinHours: 3,
		CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	second := &domain.Schedule{
		Date: "2024-01-01", TradingHours: []int{20, 21},
		KPIPerHour: 6, MinHours: 2,
		CreatedAt: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Upsert(ctx, first))
	require.NoError(t, store.Upsert(ctx, second))

	got, err := store.GetByDate(ctx, "2024-01-01")
	require.NoError(t, err)

	// Replace semantics: the first schedule's hours are gone, not merged.
	assert.Equal(t, []int{20, 21}, got.TradingHours)
	assert.Equal(t, 6.0, got.KPIPerHour)
	assert.True(t, got.CreatedAt.Equal(second.CreatedAt))
}
