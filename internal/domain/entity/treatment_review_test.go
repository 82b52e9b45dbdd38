package entity

import (
	"testing"
	"time"
)

func TestValidateReviewDates(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		dates []time.Time
		want  bool
	}{
		{"three increasing dates", []time.Time{day(1), day(8), day(15)}, true},
		{"consecutive days", []time.Time{day(1), day(2), day(3)}, true},
		{"out of order", []time.Time{day(8), day(1), day(15)}, false},
		{"decreasing", []time.Time{day(15), day(8), day(1)}, false},
		{"duplicate dates", []time.Time{day(1), day(1), day(8)}, false},
		{"too few", []time.Time{day(1), day(8)}, false},
		{"too many", []time.Time{day(1), day(8), day(15), day(22)}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateReviewDates(tt.dates); got != tt.want {
				t.Errorf("ValidateReviewDates() = %v, want %v", got, tt.want)
			}
		})
	}
}
