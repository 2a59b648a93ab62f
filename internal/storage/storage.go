package storage

import (
	"context"

	"github.com/mgiraldez/mansion-engine/pkg/state"
)

// MaxHighScores is the leaderboard size; lower scores beyond this are
// trimmed on write.
const MaxHighScores = 20

// Storage persists save slots and the high score table.
type Storage interface {
	// Ping checks storage connectivity.
	Ping(ctx context.Context) error

	// Close releases storage resources.
	Close() error

	// SaveGame writes a save record to its slot, overwriting any previous
	// save there.
	SaveGame(ctx context.Context, rec *state.SaveRecord) error

	// LoadGame reads the save record in a slot. Returns nil without error
	// when the slot is empty.
	LoadGame(ctx context.Context, slot string) (*state.SaveRecord, error)

	// ListGames returns all occupied save slots.
	ListGames(ctx context.Context) ([]*state.SaveRecord, error)

	// DeleteGame empties a slot. Returns false when the slot was already
	// empty.
	DeleteGame(ctx context.Context, slot string) (bool, error)

	// AddHighScore inserts a score into the leaderboard, trimming it to
	// MaxHighScores entries.
	AddHighScore(ctx context.Context, hs *state.HighScore) error

	// HighScores returns the leaderboard, best first.
	HighScores(ctx context.Context) ([]*state.HighScore, error)
}
