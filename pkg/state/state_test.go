package state

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mgiraldez/mansion-engine/pkg/mansion"
	"github.com/mgiraldez/mansion-engine/pkg/player"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"Normal", DifficultyNormal, false},
		{"HARD", DifficultyHard, false},
		{"  nightmare ", DifficultyNightmare, false},
		{"impossible", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDifficulty(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDifficulty(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDifficultyMultipliers(t *testing.T) {
	tests := []struct {
		d         Difficulty
		scareMult float64
		scoreMult float64
	}{
		{DifficultyEasy, 0.5, 0.8},
		{DifficultyNormal, 1.0, 1.0},
		{DifficultyHard, 1.5, 1.2},
		{DifficultyNightmare, 2.0, 1.5},
	}

	for _, tt := range tests {
		if got := tt.d.ScareMultiplier(); got != tt.scareMult {
			t.Errorf("%s scare multiplier = %v, want %v", tt.d, got, tt.scareMult)
		}
		if got := tt.d.ScoreMultiplier(); got != tt.scoreMult {
			t.Errorf("%s score multiplier = %v, want %v", tt.d, got, tt.scoreMult)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{20 * time.Minute, "00:20:00"},
		{time.Hour + 23*time.Minute + 45*time.Second, "01:23:45"},
		{-5 * time.Second, "00:00:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSaveRecord_JSONRoundTrip(t *testing.T) {
	p := player.New()
	p.CurrentRoomID = "foyer"
	p.Sanity = 70

	rooms := mansion.Generate()
	records := make(map[string]mansion.RoomRecord, len(rooms))
	for id, room := range rooms {
		records[id] = room.Record()
	}

	now := time.Now()
	rec := SaveRecord{
		Slot:        "slot1",
		Name:        "Arthur",
		ID:          uuid.New(),
		Player:      p,
		Rooms:       records,
		ElapsedTime: 123.4,
		LastMessage: "You enter the Library.",
		History:     []string{"You wake up.", "You enter the Library."},
		Difficulty:  DifficultyHard,
		Timestamp:   now.Unix(),
		DateString:  now.Format(DateFormat),
		Version:     Version,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Failed to marshal save record: %v", err)
	}

	var decoded SaveRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal save record: %v", err)
	}

	if decoded.ID != rec.ID || decoded.Slot != rec.Slot {
		t.Error("Round-tripped record lost identity")
	}
	if decoded.Player.Sanity != 70 {
		t.Errorf("Expected sanity 70, got %d", decoded.Player.Sanity)
	}
	if decoded.Difficulty != DifficultyHard {
		t.Errorf("Expected hard difficulty, got %q", decoded.Difficulty)
	}
	if len(decoded.Rooms) != len(records) {
		t.Errorf("Expected %d rooms, got %d", len(records), len(decoded.Rooms))
	}
	if len(decoded.History) != 2 {
		t.Errorf("Expected 2 history lines, got %d", len(decoded.History))
	}
}
