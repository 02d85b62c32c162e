// Package stats derives journal statistics from the session store. Nothing
// is cached or maintained incrementally: every call re-reads the store, which
// holds at most one row per trading hour per day.
package stats

import (
	"context"
	"fmt"

	"trading-journal/internal/domain"
	"trading-journal/internal/storage"
)

// Aggregator computes balance statistics over session windows.
type Aggregator struct {
	sessions storage.SessionStore
}

// NewAggregator creates a new statistics aggregator.
func NewAggregator(sessions storage.SessionStore) *Aggregator {
	return &Aggregator{sessions: sessions}
}

// Compute derives the daily, monthly and yearly windows from today, given as
// YYYY-MM-DD. The windows are string prefixes of the date column: the exact
// date, YYYY-MM and YYYY. Session counts are taken over the yearly window;
// breakeven sessions count toward the total but neither profit nor loss.
func (a *Aggregator) Compute(ctx context.Context, today string) (*domain.Statistics, error) {
	if len(today) != len("2006-01-02") {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", today)
	}

	daily, err := a.sessions.ListByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("load daily sessions: %w", err)
	}

	monthly, err := a.sessions.ListByDatePrefix(ctx, today[:7])
	if err != nil {
		return nil, fmt.Errorf("load monthly sessions: %w", err)
	}

	yearly, err := a.sessions.ListByDatePrefix(ctx, today[:4])
	if err != nil {
		return nil, fmt.Errorf("load yearly sessions: %w", err)
	}

	stats := &domain.Statistics{
		DailyBalance:   sumBalances(daily),
		MonthlyBalance: sumBalances(monthly),
		YearlyBalance:  sumBalances(yearly),
		TotalSessions:  len(yearly),
	}

	for _, sess := range yearly {
		switch {
		case sess.Balance > 0:
			stats.ProfitSessions++
		case sess.Balance < 0:
			stats.LossSessions++
		}
	}

	return stats, nil
}

func sumBalances(sessions []*domain.Session) float64 {
	var sum float64
	for _, sess := range sessions {
		sum += sess.Balance
	}
	return sum
}
