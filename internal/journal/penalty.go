package journal

import "math"

// Penalty returns the surcharge stored on a session whose predecessor closed
// at previousBalance: abs(previousBalance) + 2*kpi after a strict loss, zero
// otherwise. Breakeven (exactly zero) is not a loss.
func Penalty(previousBalance, kpi float64) float64 {
	if previousBalance >= 0 {
		return 0
	}
	return math.Abs(previousBalance) + 2*kpi
}

// RequiredMinimum returns the suggested profit floor for an hour. previous is
// nil when no prior session exists (hour 0, or the slot was never recorded).
//
// Without a prior loss the floor falls back to the plain KPI target. This is
// deliberately not the same value as Penalty, which defaults to zero: the
// floor is presentation guidance, the penalty is the stored surcharge.
func RequiredMinimum(previous *float64, kpi float64) float64 {
	if previous == nil || *previous >= 0 {
		return kpi
	}
	return math.Abs(*previous) + 2*kpi
}
