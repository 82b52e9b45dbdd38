package email

import (
	"context"
	"errors"
	"testing"

	"go-radiotherapy-navigator/config"
)

func TestBuildMessageValidation(t *testing.T) {
	valid := Message{
		To:      []string{"patient@clinic.test"},
		Subject: "Your treatment plan is ready",
		Body:    "Dear patient,\n\nYour plan has been published.\n",
	}

	tests := []struct {
		name    string
		from    string
		msg     Message
		wantErr bool
	}{
		{"valid message", "noreply@clinic.test", valid, false},
		{"missing from", "", valid, true},
		{"whitespace from", "   ", valid, true},
		{"no recipients", "noreply@clinic.test", Message{Subject: "s", Body: "b"}, true},
		{"blank recipients", "noreply@clinic.test", Message{To: []string{" ", ""}, Subject: "s", Body: "b"}, true},
		{"missing subject", "noreply@clinic.test", Message{To: []string{"x@y.test"}, Body: "b"}, true},
		{"missing body", "noreply@clinic.test", Message{To: []string{"x@y.test"}, Subject: "s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage(tt.from, tt.msg)
			if (err != nil) != tt.wantErr {
				t.Errorf("buildMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid ErrInvalidMessage
				if !errors.As(err, &invalid) {
					t.Errorf("expected ErrInvalidMessage, got %T", err)
				}
			}
		})
	}
}

func TestSendDisabled(t *testing.T) {
	client := New(config.SMTPConfig{Enabled: false})

	err := client.Send(context.Background(), Message{
		To:      []string{"patient@clinic.test"},
		Subject: "s",
		Body:    "b",
	})

	var disabled ErrDisabled
	if !errors.As(err, &disabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestCleanAddrs(t *testing.T) {
	got := cleanAddrs([]string{" a@b.test ", "", "  ", "c@d.test"})
	if len(got) != 2 || got[0] != "a@b.test" || got[1] != "c@d.test" {
		t.Errorf("cleanAddrs() = %v, want [a@b.test c@d.test]", got)
	}
}
