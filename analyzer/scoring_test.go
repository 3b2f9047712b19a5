package analyzer

import (
	"math"
	"testing"
)

func TestNewCategoryScore(t *testing.T) {
	tests := []struct {
		name    string
		points  float64
		max     float64
		wantPct float64
	}{
		{"Full", 28, 28, 100},
		{"Half", 15, 30, 50},
		{"Zero", 0, 27, 0},
		{"ZeroMax", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := newCategoryScore(tt.points, tt.max)
			if math.Abs(score.Percentage-tt.wantPct) > 1e-9 {
				t.Errorf("Percentage = %v, want %v", score.Percentage, tt.wantPct)
			}
			if score.Percentage < 0 || score.Percentage > 100 {
				t.Errorf("Percentage %v out of [0, 100]", score.Percentage)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	if got := Aggregate(100, 100, 100, 100); math.Abs(got-100) > 1e-9 {
		t.Errorf("Aggregate(100,100,100,100) = %v, want 100", got)
	}
	if got := Aggregate(0, 0, 0, 0); got != 0 {
		t.Errorf("Aggregate(0,0,0,0) = %v, want 0", got)
	}

	// Linearity: doubling every input doubles the output.
	half := Aggregate(50, 50, 50, 50)
	full := Aggregate(100, 100, 100, 100)
	if math.Abs(full-2*half) > 1e-9 {
		t.Errorf("Aggregate not linear: f(100)=%v, 2*f(50)=%v", full, 2*half)
	}

	// Each weight contributes its share.
	if got := Aggregate(100, 0, 0, 0); math.Abs(got-20) > 1e-9 {
		t.Errorf("Meta weight contribution = %v, want 20", got)
	}
	if got := Aggregate(0, 100, 0, 0); math.Abs(got-35) > 1e-9 {
		t.Errorf("Content weight contribution = %v, want 35", got)
	}
	if got := Aggregate(0, 0, 100, 0); math.Abs(got-15) > 1e-9 {
		t.Errorf("Link weight contribution = %v, want 15", got)
	}
	if got := Aggregate(0, 0, 0, 100); math.Abs(got-30) > 1e-9 {
		t.Errorf("Technical weight contribution = %v, want 30", got)
	}
}
