package entity

import (
	"testing"
	"time"
)

func TestValidPlanStart(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"yesterday", today.AddDate(0, 0, -1), false},
		{"today", today, true},
		{"tomorrow", today.AddDate(0, 0, 1), true},
		{"six months out exactly", today.AddDate(0, 6, 0), true},
		{"one day past the window", today.AddDate(0, 6, 1), false},
		{"a year out", today.AddDate(1, 0, 0), false},
		{"same day with a time of day", today.Add(14 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPlanStart(tt.start, today); got != tt.want {
				t.Errorf("ValidPlanStart(%v) = %v, want %v", tt.start, got, tt.want)
			}
		})
	}
}

func TestValidTreatmentType(t *testing.T) {
	if !ValidTreatmentType(TreatmentTypeExternalBeam) {
		t.Error("external_beam should be valid")
	}
	if !ValidTreatmentType(TreatmentTypeBrachytherapy) {
		t.Error("brachytherapy should be valid")
	}
	if ValidTreatmentType(TreatmentType("proton")) {
		t.Error("unknown treatment type should be invalid")
	}
}

func TestPlanIsDecided(t *testing.T) {
	plan := &TreatmentPlan{}
	if plan.IsDecided() {
		t.Error("new plan should not be decided")
	}

	successful := true
	plan.IsSuccessful = &successful
	if !plan.IsDecided() {
		t.Error("plan with outcome should be decided")
	}
}
