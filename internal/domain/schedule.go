package domain

import "time"

// Schedule is the set of hours a user commits to trade on one calendar date.
// Corresponds to the schedules table; at most one row per date, replaced
// wholesale on every upsert.
type Schedule struct {
	Date         string    `json:"date"`          // YYYY-MM-DD
	TradingHours []int     `json:"trading_hours"` // ascending, each in [0,23]
	KPIPerHour   float64   `json:"kpi_per_hour"`  // profit target per hour
	MinHours     int       `json:"min_hours"`     // required slot count
	CreatedAt    time.Time `json:"created_at"`
}
