package models

import (
	"errors"
	"testing"
	"time"
)

func TestGoalToResponseFormatsDates(t *testing.T) {
	last := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	g := Goal{
		Title:         "Write every day",
		TargetDays:    30,
		CurrentStreak: 4,
		LongestStreak: 6,
		Active:        true,
		StartDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		LastCheckin:   &last,
		CheckinDates: []time.Time{
			time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	resp := g.ToResponse()

	if resp.StartDate != "2026-08-01" {
		t.Errorf("StartDate = %q, want %q", resp.StartDate, "2026-08-01")
	}
	if resp.LastCheckin == nil || *resp.LastCheckin != "2026-08-10" {
		t.Errorf("LastCheckin = %v, want 2026-08-10", resp.LastCheckin)
	}
	if len(resp.CheckinDates) != 2 || resp.CheckinDates[0] != "2026-08-09" {
		t.Errorf("CheckinDates = %v", resp.CheckinDates)
	}
	if resp.CompletionPct != 13.33 {
		t.Errorf("CompletionPct = %v, want 13.33", resp.CompletionPct)
	}
}

func TestCreateGoalRequestValidate(t *testing.T) {
	negative := -1

	tests := []struct {
		name    string
		req     CreateGoalRequest
		wantErr bool
	}{
		{"valid", CreateGoalRequest{Title: "Run daily", TargetDays: 30}, false},
		{"blank title", CreateGoalRequest{Title: "   ", TargetDays: 30}, true},
		{"zero target", CreateGoalRequest{Title: "Run daily", TargetDays: 0}, true},
		{"negative target", CreateGoalRequest{Title: "Run daily", TargetDays: -3}, true},
		{"negative streak", CreateGoalRequest{Title: "Run daily", TargetDays: 30, CurrentStreak: &negative}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("Validate() = %v, want ErrValidation", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestGoalToResponseNilLastCheckin(t *testing.T) {
	g := Goal{Title: "Read", TargetDays: 7, StartDate: time.Now()}

	resp := g.ToResponse()

	if resp.LastCheckin != nil {
		t.Errorf("LastCheckin = %v, want nil", resp.LastCheckin)
	}
	if resp.CheckinDates == nil {
		t.Error("CheckinDates should be an empty slice, not nil")
	}
}
