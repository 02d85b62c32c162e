package domain

import "time"

// Session is the recorded outcome for one hour of one calendar date.
// Corresponds to the sessions table; unique on (date, hour).
type Session struct {
	ID      string  `json:"id"` // UUID, stable across upserts of the same slot
	Date    string  `json:"date"`
	Hour    int     `json:"hour"`    // 0-23
	Balance float64 `json:"balance"` // positive = profit, negative = loss
	Token   string  `json:"token"`   // traded asset label, may be empty

	// KPI is the hourly target in effect when the session was recorded.
	// A snapshot, not a live reference to the schedule.
	KPI float64 `json:"kpi"`

	// Penalty is the surcharge owed because the previous hour closed at a
	// loss: abs(previous balance) + 2*KPI. Zero when the previous hour was
	// not a loss or does not exist.
	Penalty float64 `json:"penalty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
