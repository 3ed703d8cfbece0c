package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validSong() Song {
	return Song{
		ID:           "1",
		Name:         "A Year Without Rain",
		Album:        "A Year Without Rain",
		Artist:       "Selena Gomez & The Scene",
		TotalStreams: 198951352,
		DailyStreams: 125000,
		Goal:         200000000,
		DailyGoal:    100000,
	}
}

func TestSongValidate(t *testing.T) {
	tc := []struct {
		name      string
		mutate    func(*Song)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*Song) {}},
		{name: "missing name", mutate: func(s *Song) { s.Name = "" }, wantField: "Name", wantMsg: "is required"},
		{name: "missing id", mutate: func(s *Song) { s.ID = "" }, wantField: "ID", wantMsg: "is required"},
		{name: "zero goal", mutate: func(s *Song) { s.Goal = 0; s.TotalStreams = 0 }, wantField: "Goal", wantMsg: "must be a positive number"},
		{name: "zero daily goal", mutate: func(s *Song) { s.DailyGoal = 0 }, wantField: "DailyGoal", wantMsg: "must be a positive number"},
		{name: "negative daily", mutate: func(s *Song) { s.DailyStreams = -1 }, wantField: "DailyStreams", wantMsg: "must not be negative"},
		{name: "total above goal", mutate: func(s *Song) { s.TotalStreams = s.Goal + 1 }, wantField: "TotalStreams", wantMsg: "must not exceed goal"},
		{name: "daily above daily goal is allowed", mutate: func(s *Song) { s.DailyStreams = s.DailyGoal * 3 }},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			song := validSong()
			tt.mutate(&song)

			err := song.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidSong) {
				t.Fatalf("Validate() error = %v, want ErrInvalidSong", err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error should be *ValidationError, got %T", err)
			}

			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.wantField && f.Message == tt.wantMsg {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() fields = %+v, want %s %s", verr.Fields, tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestValidateSongs(t *testing.T) {
	bad := validSong()
	bad.Name = ""
	bad.Goal = 0
	bad.TotalStreams = 0

	if err := ValidateSongs([]Song{validSong()}); err != nil {
		t.Errorf("ValidateSongs() unexpected error = %v", err)
	}

	err := ValidateSongs([]Song{validSong(), bad})
	if !errors.Is(err, ErrInvalidSong) {
		t.Fatalf("ValidateSongs() error = %v, want ErrInvalidSong", err)
	}
	if !strings.Contains(err.Error(), "<unnamed>") {
		t.Errorf("expected unnamed song in message, got %s", err.Error())
	}
}

func TestUser(t *testing.T) {
	joined := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
	user := NewUser("fan@example.com", "x", joined)

	if user.Points != 0 {
		t.Errorf("expected new user to have 0 points, got %d", user.Points)
	}
	if user.DailyMissions == nil || len(user.DailyMissions) != 0 {
		t.Errorf("expected empty mission history, got %v", user.DailyMissions)
	}
	if user.DisplayName() != "fan" {
		t.Errorf("DisplayName() = %s, want fan", user.DisplayName())
	}

	user.DailyMissions["vote"] = "Thu Oct 15 2026"
	if !user.CompletedOn("vote", "Thu Oct 15 2026") {
		t.Error("expected vote to be completed today")
	}
	if user.CompletedOn("vote", "Fri Oct 16 2026") {
		t.Error("expected vote not to be completed tomorrow")
	}

	var empty User
	if empty.CompletedOn("vote", "Thu Oct 15 2026") {
		t.Error("expected nil mission map to report not completed")
	}
}
