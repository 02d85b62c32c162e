package journal

import "testing"

func TestPenalty_AfterLoss(t *testing.T) {
	tests := []struct {
		name            string
		previousBalance float64
		kpi             float64
		want            float64
	}{
		{"loss of 10 with kpi 4", -10, 4, 18},
		{"loss of 0.5 with kpi 1", -0.5, 1, 2.5},
		{"large loss", -250, 20, 290},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Penalty(tt.previousBalance, tt.kpi)
			if got != tt.want {
				t.Errorf("Penalty(%v, %v) = %v, want %v", tt.previousBalance, tt.kpi, got, tt.want)
			}
		})
	}
}

func TestPenalty_NoLoss(t *testing.T) {
	// Breakeven is a strict non-loss.
	if got := Penalty(0, 5); got != 0 {
		t.Errorf("Penalty(0, 5) = %v, want 0", got)
	}
	if got := Penalty(12.5, 5); got != 0 {
		t.Errorf("Penalty(12.5, 5) = %v, want 0", got)
	}
}

func TestRequiredMinimum(t *testing.T) {
	loss := -10.0
	profit := 3.0
	breakeven := 0.0

	tests := []struct {
		name     string
		previous *float64
		kpi      float64
		want     float64
	}{
		{"no prior session falls back to kpi", nil, 4, 4},
		{"prior profit falls back to kpi", &profit, 4, 4},
		{"prior breakeven falls back to kpi", &breakeven, 4, 4},
		{"prior loss raises the floor", &loss, 4, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredMinimum(tt.previous, tt.kpi)
			if got != tt.want {
				t.Errorf("RequiredMinimum(%v, %v) = %v, want %v", tt.previous, tt.kpi, got, tt.want)
			}
		})
	}
}

// The stored penalty and the suggested floor diverge when there is no prior
// loss: the penalty defaults to 0, the floor to the KPI target.
func TestPenaltyAndFloorDivergeWithoutLoss(t *testing.T) {
	kpi := 7.0
	if p := Penalty(5, kpi); p != 0 {
		t.Errorf("stored penalty without loss = %v, want 0", p)
	}
	prev := 5.0
	if f := RequiredMinimum(&prev, kpi); f != kpi {
		t.Errorf("suggested floor without loss = %v, want %v", f, kpi)
	}
}
