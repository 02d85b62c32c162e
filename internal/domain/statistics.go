package domain

// Statistics are derived from sessions on demand, never persisted.
// The session counts cover the yearly window only.
type Statistics struct {
	DailyBalance   float64 `json:"daily_balance"`
	MonthlyBalance float64 `json:"monthly_balance"`
	YearlyBalance  float64 `json:"yearly_balance"`
	TotalSessions  int     `json:"total_sessions"`
	ProfitSessions int     `json:"profit_sessions"` // balance > 0
	LossSessions   int     `json:"loss_sessions"`   // balance < 0
}
