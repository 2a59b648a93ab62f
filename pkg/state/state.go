package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mgiraldez/mansion-engine/pkg/mansion"
	"github.com/mgiraldez/mansion-engine/pkg/player"
)

// Version is stamped into every save record so future schema changes can be
// detected at load time.
const Version = "1.0.0"

// HistoryLimit is the number of trailing messages persisted with a save.
const HistoryLimit = 20

// DateFormat is the human-readable timestamp used in save and score records.
const DateFormat = "02/01/2006 15:04:05"

// Difficulty selects the session's scare frequency and score multiplier.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyNormal    Difficulty = "normal"
	DifficultyHard      Difficulty = "hard"
	DifficultyNightmare Difficulty = "nightmare"
)

// ParseDifficulty converts a user-supplied string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyHard:
		return DifficultyHard, nil
	case DifficultyNightmare:
		return DifficultyNightmare, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// ScareMultiplier scales the ambient scare probability.
func (d Difficulty) ScareMultiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 1.5
	case DifficultyNightmare:
		return 2.0
	default:
		return 1.0
	}
}

// ScoreMultiplier scales the final score.
func (d Difficulty) ScoreMultiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.8
	case DifficultyHard:
		return 1.2
	case DifficultyNightmare:
		return 1.5
	default:
		return 1.0
	}
}

// SaveRecord is the whole-session snapshot written to a save slot.
// Scripted event closures are not serializable; each RoomRecord carries the
// fired flags instead, and the engine rebinds events from the generated
// world at load.
type SaveRecord struct {
	Slot        string                        `json:"slot"`
	Name        string                        `json:"name"`
	ID          uuid.UUID                     `json:"id"`
	Player      *player.Player                `json:"player"`
	Rooms       map[string]mansion.RoomRecord `json:"rooms"`
	ElapsedTime float64                       `json:"elapsed_time"` // seconds
	LastMessage string                        `json:"last_message,omitempty"`
	History     []string                      `json:"history,omitempty"`
	Difficulty  Difficulty                    `json:"difficulty"`
	Timestamp   int64                         `json:"timestamp"`
	DateString  string                        `json:"date_string"`
	Version     string                        `json:"version"`
}

// HighScore is one entry on the leaderboard.
type HighScore struct {
	Name           string     `json:"name"`
	Score          int        `json:"score"`
	Time           float64    `json:"time"` // seconds played
	ItemsFound     int        `json:"items_found"`
	LevelCompleted int        `json:"level_completed"`
	Difficulty     Difficulty `json:"difficulty"`
	DateString     string     `json:"date_string"`
}

// Result is delivered to the presentation layer when a session ends.
type Result struct {
	Victory  bool
	Headline string
	Summary  string
	Score    int
}

// FormatDuration renders a duration as hh:mm:ss.
func FormatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
