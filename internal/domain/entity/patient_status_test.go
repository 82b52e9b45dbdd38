package entity

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from PatientStatus
		to   PatientStatus
		want bool
	}{
		{"registered to intake", StatusRegistered, StatusIntakeCompleted, true},
		{"registered straight to scanned", StatusRegistered, StatusScanned, true},
		{"intake to consultation", StatusIntakeCompleted, StatusConsultationCompleted, true},
		{"consultation to scanned", StatusConsultationCompleted, StatusScanned, true},
		{"scanned to plan ready", StatusScanned, StatusPlanReady, true},
		{"scanned to planning", StatusScanned, StatusPlanning, true},
		{"planning to plan ready", StatusPlanning, StatusPlanReady, true},
		{"plan ready to treatment completed", StatusPlanReady, StatusTreatmentCompleted, true},
		{"treating to treatment completed", StatusTreating, StatusTreatmentCompleted, true},
		{"treatment completed to review 1", StatusTreatmentCompleted, StatusReview1Pending, true},
		{"review 1 to review 2", StatusReview1Pending, StatusReview2Pending, true},
		{"review 3 to reviews completed", StatusReview3Pending, StatusReviewsCompleted, true},
		{"reviews completed to journey complete", StatusReviewsCompleted, StatusJourneyComplete, true},
		{"restart edge", StatusReviewsCompleted, StatusScanned, true},

		{"no skipping intake", StatusRegistered, StatusConsultationCompleted, false},
		{"no skipping consultation", StatusIntakeCompleted, StatusScanned, false},
		{"no skipping reviews", StatusReview1Pending, StatusReview3Pending, false},
		{"no going backward", StatusScanned, StatusRegistered, false},
		{"no re-intake after scan", StatusScanned, StatusIntakeCompleted, false},
		{"restart only from reviews completed", StatusTreatmentCompleted, StatusScanned, false},
		{"no leaving terminal state", StatusJourneyComplete, StatusScanned, false},
		{"unknown from", PatientStatus("BOGUS"), StatusScanned, false},
		{"unknown to", StatusScanned, PatientStatus("BOGUS"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestEveryStatusReachesJourneyComplete(t *testing.T) {
	// Walk forward from every non-terminal status; the graph must always
	// lead to JOURNEY_COMPLETE without cycles on the forward path.
	for from := range legalTransitions {
		if from.IsTerminal() {
			continue
		}
		visited := map[PatientStatus]bool{}
		current := from
		for steps := 0; steps < len(legalTransitions)+1; steps++ {
			if current == StatusJourneyComplete {
				break
			}
			if visited[current] {
				t.Fatalf("cycle detected on forward path starting at %s", from)
			}
			visited[current] = true
			next := legalTransitions[current]
			if len(next) == 0 {
				t.Fatalf("dead end at %s walking from %s", current, from)
			}
			// Always take the first edge; the restart edge is never first.
			current = next[0]
		}
		if current != StatusJourneyComplete {
			t.Errorf("status %s cannot reach JOURNEY_COMPLETE", from)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !StatusJourneyComplete.IsTerminal() {
		t.Error("JOURNEY_COMPLETE should be terminal")
	}
	for s := range legalTransitions {
		if s != StatusJourneyComplete && s.IsTerminal() {
			t.Errorf("status %s should not be terminal", s)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !StatusRegistered.IsValid() {
		t.Error("REGISTERED should be valid")
	}
	if PatientStatus("NOT_A_STATUS").IsValid() {
		t.Error("unknown status should not be valid")
	}
}

func TestReviewPendingStatus(t *testing.T) {
	tests := []struct {
		number int
		want   PatientStatus
		ok     bool
	}{
		{1, StatusReview1Pending, true},
		{2, StatusReview2Pending, true},
		{3, StatusReview3Pending, true},
		{0, "", false},
		{4, "", false},
	}

	for _, tt := range tests {
		got, ok := ReviewPendingStatus(tt.number)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ReviewPendingStatus(%d) = (%s, %v), want (%s, %v)", tt.number, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGuidanceCoversEveryStatus(t *testing.T) {
	for s := range legalTransitions {
		if s.Guidance() == "" {
			t.Errorf("status %s has no guidance", s)
		}
	}
	if PatientStatus("BOGUS").Guidance() == "" {
		t.Error("unknown status should still produce fallback guidance")
	}
}

func TestNewGuardViolation(t *testing.T) {
	violation := NewGuardViolation("publish plan", StatusRegistered)

	if violation.Action != "publish plan" {
		t.Errorf("Action = %s, want publish plan", violation.Action)
	}
	if violation.CurrentStatus != StatusRegistered {
		t.Errorf("CurrentStatus = %s, want %s", violation.CurrentStatus, StatusRegistered)
	}
	if violation.Guidance != StatusRegistered.Guidance() {
		t.Errorf("Guidance = %s, want %s", violation.Guidance, StatusRegistered.Guidance())
	}
	if violation.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
