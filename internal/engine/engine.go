package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mgiraldez/mansion-engine/internal/config"
	"github.com/mgiraldez/mansion-engine/internal/storage"
	"github.com/mgiraldez/mansion-engine/pkg/mansion"
	"github.com/mgiraldez/mansion-engine/pkg/player"
	"github.com/mgiraldez/mansion-engine/pkg/state"
)

const introMessage = "You wake up on the cold floor of an old mansion's foyer. " +
	"You do not remember how you got here. The main door is sealed shut behind you. " +
	"You must find a way out... or face whatever dwells in this place."

const (
	victoryHeadline = "YOU HAVE ESCAPED"
	victorySummary  = "You read the banishing ritual aloud. The mansion shudders, the " +
		"presence lets out a final shriek and dissolves into the dark. The front door " +
		"swings open onto the dawn."
	defeatHealthSummary = "Your wounds are too deep. You collapse on the dusty floor and " +
		"the mansion claims another guest."
	defeatSanitySummary = "Your mind gives way under the weight of the horrors. You will " +
		"wander these halls forever, whispering to the walls."
	abandonSummary = "You force a boarded window and flee into the night, leaving the " +
		"mansion and its secrets behind."
)

// Hooks are the engine's outbound callbacks to a presentation layer. All
// hooks run on the engine's goroutine while it holds its own lock; they
// must return quickly and must not call back into the engine.
type Hooks struct {
	// OnMessage delivers narration and action feedback.
	OnMessage func(msg string)
	// OnTick fires after every clock tick with a status snapshot.
	OnTick func(st Status)
	// OnEnd fires exactly once when the session ends.
	OnEnd func(res state.Result)
}

// Status is a read-only snapshot of the session for display.
type Status struct {
	Health       int
	Sanity       int
	Battery      int
	FlashlightOn bool
	RoomName     string
	Elapsed      time.Duration
	Running      bool
	Paused       bool
	Ended        bool
	Difficulty   state.Difficulty
}

// Engine drives a single game session. One mutex serializes actions, ticks,
// and persistence; all exported methods are safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	cfg    *config.Config
	store  storage.Storage
	logger *slog.Logger
	clock  Clock
	rng    *rand.Rand
	hooks  Hooks

	sessionID  uuid.UUID
	playerName string
	player     *player.Player
	rooms      map[string]*mansion.Room
	difficulty state.Difficulty

	running bool
	paused  bool
	ended   bool
	victory bool

	// startTime is the virtual session start; elapsed = now - startTime
	// while running. pausedElapsed freezes the value across pauses and
	// after the end.
	startTime     time.Time
	pausedElapsed float64

	lastMessage string
	history     []string

	finalScore int

	tickerStop chan struct{}
}

// NewEngine creates an engine bound to its storage backend. No session
// exists until NewGame or Load.
func NewEngine(cfg *config.Config, store storage.Storage, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		store:      store,
		logger:     logger,
		clock:      systemClock{},
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		difficulty: cfg.Difficulty,
	}
}

// SetHooks installs the presentation callbacks. Call before NewGame.
func (e *Engine) SetHooks(h Hooks) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks = h
}

// NewGame starts a fresh session for the named player, replacing any
// session in progress.
func (e *Engine) NewGame(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTickerLocked()

	e.sessionID = uuid.New()
	e.playerName = name
	e.player = player.New()
	e.player.CurrentRoomID = mansion.EntryRoomID
	e.rooms = mansion.Generate()
	e.difficulty = e.cfg.Difficulty

	e.running = true
	e.paused = false
	e.ended = false
	e.victory = false
	e.startTime = e.clock.Now()
	e.pausedElapsed = 0
	e.history = nil
	e.finalScore = 0

	entry := e.rooms[mansion.EntryRoomID]
	entry.Visited = true
	e.player.VisitedHistory = []string{mansion.EntryRoomID}

	e.logger.Info("New game started",
		"session", e.sessionID, "player", name, "difficulty", e.difficulty)

	e.emitLocked(introMessage)
	e.emitLocked(entry.Describe(false))
	e.startTickerLocked()
}

// Pause freezes the session clock. Pausing an already paused session is a
// no-op.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running || e.ended {
		return ErrNotRunning
	}
	if e.paused {
		return nil
	}

	e.pausedElapsed = e.elapsedLocked()
	e.paused = true
	e.stopTickerLocked()
	e.logger.Debug("Game paused", "session", e.sessionID, "elapsed", e.pausedElapsed)
	return nil
}

// Resume unfreezes the session clock. Resuming a session that is not
// paused is a no-op.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running || e.ended {
		return ErrNotRunning
	}
	if !e.paused {
		return nil
	}

	e.startTime = e.clock.Now().Add(-time.Duration(e.pausedElapsed * float64(time.Second)))
	e.paused = false
	e.startTickerLocked()
	e.logger.Debug("Game resumed", "session", e.sessionID, "elapsed", e.pausedElapsed)
	return nil
}

// End abandons the session. The player survives but scores as a defeat.
func (e *Engine) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running || e.ended {
		return ErrNotRunning
	}

	e.emitLocked(abandonSummary)
	e.endLocked(false, abandonSummary)
	return nil
}

// Tick advances the session by one clock step: elapsed time, flashlight
// drain, ambient scares, and death checks. With a positive TickInterval the
// engine calls this itself from a background goroutine; with a zero or
// negative interval the owner drives it directly.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickLocked()
}

func (e *Engine) tickLocked() {
	if !e.running || e.paused || e.ended {
		return
	}

	e.player.TimePlayed = e.elapsedLocked()

	if msg := e.player.TickFlashlight(); msg != "" {
		e.emitLocked(msg)
	}

	// Unfired events in the occupied room re-roll every tick, not just on
	// entry; the fired flag keeps each one single-shot.
	if room := e.currentRoomLocked(); room != nil {
		e.evaluateScriptedEventsLocked(room)
		e.ambientScareLocked(room)
	}
	e.checkDeathLocked()

	if e.hooks.OnTick != nil && !e.ended {
		e.hooks.OnTick(e.statusLocked())
	}
}

// checkDeathLocked ends the session when health or sanity hits zero.
func (e *Engine) checkDeathLocked() {
	if e.ended {
		return
	}
	switch {
	case e.player.Health <= 0:
		e.emitLocked(defeatHealthSummary)
		e.endLocked(false, defeatHealthSummary)
	case e.player.Sanity <= 0:
		e.emitLocked(defeatSanitySummary)
		e.endLocked(false, defeatSanitySummary)
	}
}

// endLocked finalizes the session: freezes the clock, computes the score,
// and notifies the presentation layer.
func (e *Engine) endLocked(victory bool, summary string) {
	e.pausedElapsed = e.elapsedLocked()
	e.ended = true
	e.victory = victory
	e.stopTickerLocked()

	e.finalScore = computeScore(e.player, victory, e.pausedElapsed, e.difficulty)
	e.player.Score = e.finalScore

	headline := "GAME OVER"
	if victory {
		headline = victoryHeadline
	}

	e.logger.Info("Game ended",
		"session", e.sessionID, "victory", victory,
		"score", e.finalScore, "elapsed", e.pausedElapsed)

	if e.hooks.OnEnd != nil {
		e.hooks.OnEnd(state.Result{
			Victory:  victory,
			Headline: headline,
			Summary:  summary,
			Score:    e.finalScore,
		})
	}
}

// Result returns the session outcome after the game has ended.
func (e *Engine) Result() (state.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ended {
		return state.Result{}, ErrNotEnded
	}

	headline := "GAME OVER"
	if e.victory {
		headline = victoryHeadline
	}
	return state.Result{
		Victory:  e.victory,
		Headline: headline,
		Summary:  e.lastMessage,
		Score:    e.finalScore,
	}, nil
}

// Save writes the whole session to a save slot. The lock is held for the
// duration so the snapshot is consistent.
func (e *Engine) Save(ctx context.Context, slot string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return ErrNoSession
	}

	records := make(map[string]mansion.RoomRecord, len(e.rooms))
	for id, room := range e.rooms {
		records[id] = room.Record()
	}

	now := e.clock.Now()
	rec := &state.SaveRecord{
		Slot:        slot,
		Name:        e.playerName,
		ID:          e.sessionID,
		Player:      e.player,
		Rooms:       records,
		ElapsedTime: e.elapsedLocked(),
		LastMessage: e.lastMessage,
		History:     append([]string(nil), e.history...),
		Difficulty:  e.difficulty,
		Timestamp:   now.Unix(),
		DateString:  now.Format(state.DateFormat),
		Version:     state.Version,
	}

	if err := e.store.SaveGame(ctx, rec); err != nil {
		e.logger.Error("Failed to save game", "slot", slot, "error", err)
		return fmt.Errorf("failed to save game: %w", err)
	}

	e.logger.Info("Game saved", "session", e.sessionID, "slot", slot)
	return nil
}

// Load replaces the current session with the one in the given slot. The
// swap is atomic: on any error the running session is untouched.
func (e *Engine) Load(ctx context.Context, slot string) error {
	rec, err := e.store.LoadGame(ctx, slot)
	if err != nil {
		e.logger.Error("Failed to load game", "slot", slot, "error", err)
		return fmt.Errorf("failed to load game: %w", err)
	}
	if rec == nil {
		return ErrSlotNotFound
	}

	rooms := mansion.RestoreWorld(rec.Rooms)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTickerLocked()

	e.sessionID = rec.ID
	e.playerName = rec.Name
	e.player = rec.Player
	e.rooms = rooms
	e.difficulty = rec.Difficulty

	e.running = true
	e.paused = false
	e.ended = false
	e.victory = false
	e.startTime = e.clock.Now().Add(-time.Duration(rec.ElapsedTime * float64(time.Second)))
	e.pausedElapsed = rec.ElapsedTime
	e.history = append([]string(nil), rec.History...)
	e.finalScore = 0

	e.logger.Info("Game loaded",
		"session", e.sessionID, "slot", slot, "elapsed", rec.ElapsedTime)

	e.emitLocked("Game loaded. " + rec.LastMessage)
	e.startTickerLocked()
	return nil
}

// SubmitHighScore records the finished session on the leaderboard under
// the given name.
func (e *Engine) SubmitHighScore(ctx context.Context, name string) error {
	e.mu.Lock()
	if !e.ended {
		e.mu.Unlock()
		return ErrNotEnded
	}

	level := 0
	if e.victory {
		level = e.player.Level
	}
	hs := &state.HighScore{
		Name:           name,
		Score:          e.finalScore,
		Time:           e.pausedElapsed,
		ItemsFound:     e.player.ItemsFound,
		LevelCompleted: level,
		Difficulty:     e.difficulty,
		DateString:     e.clock.Now().Format(state.DateFormat),
	}
	e.mu.Unlock()

	if err := e.store.AddHighScore(ctx, hs); err != nil {
		e.logger.Error("Failed to submit high score", "name", name, "error", err)
		return fmt.Errorf("failed to submit high score: %w", err)
	}

	e.logger.Info("High score submitted", "name", name, "score", hs.Score)
	return nil
}

// HighScores returns the leaderboard, best first.
func (e *Engine) HighScores(ctx context.Context) ([]*state.HighScore, error) {
	scores, err := e.store.HighScores(ctx)
	if err != nil {
		e.logger.Error("Failed to fetch high scores", "error", err)
		return nil, fmt.Errorf("failed to fetch high scores: %w", err)
	}
	return scores, nil
}

// SavedGames returns every occupied save slot.
func (e *Engine) SavedGames(ctx context.Context) ([]*state.SaveRecord, error) {
	records, err := e.store.ListGames(ctx)
	if err != nil {
		e.logger.Error("Failed to list saved games", "error", err)
		return nil, fmt.Errorf("failed to list saved games: %w", err)
	}
	return records, nil
}

// DeleteSave empties a save slot, reporting whether it was occupied.
func (e *Engine) DeleteSave(ctx context.Context, slot string) (bool, error) {
	deleted, err := e.store.DeleteGame(ctx, slot)
	if err != nil {
		e.logger.Error("Failed to delete save", "slot", slot, "error", err)
		return false, fmt.Errorf("failed to delete save: %w", err)
	}
	return deleted, nil
}

// Status returns a display snapshot of the session.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

func (e *Engine) statusLocked() Status {
	st := Status{
		Running:    e.running,
		Paused:     e.paused,
		Ended:      e.ended,
		Difficulty: e.difficulty,
	}
	if e.player != nil {
		st.Health = e.player.Health
		st.Sanity = e.player.Sanity
		st.Battery = e.player.FlashlightBattery
		st.FlashlightOn = e.player.FlashlightOn
		st.Elapsed = time.Duration(e.elapsedLocked() * float64(time.Second))
	}
	if room := e.currentRoomLocked(); room != nil {
		st.RoomName = room.Name
	}
	return st
}

// History returns the trailing narration, most recent last.
func (e *Engine) History() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.history...)
}

// elapsedLocked returns seconds played. While paused or after the end the
// frozen value is returned.
func (e *Engine) elapsedLocked() float64 {
	if e.paused || e.ended || e.player == nil {
		return e.pausedElapsed
	}
	return e.clock.Now().Sub(e.startTime).Seconds()
}

func (e *Engine) currentRoomLocked() *mansion.Room {
	if e.player == nil {
		return nil
	}
	return e.rooms[e.player.CurrentRoomID]
}

// recordLocked stores a narration line in the trailing history. Action
// methods use it directly and return the message to the caller themselves.
func (e *Engine) recordLocked(msg string) {
	if msg == "" {
		return
	}
	e.lastMessage = msg
	e.history = append(e.history, msg)
	if len(e.history) > state.HistoryLimit {
		e.history = e.history[len(e.history)-state.HistoryLimit:]
	}
}

// emitLocked records a narration line and pushes it to the message hook.
// Used for engine-initiated messages the caller has no return path for.
func (e *Engine) emitLocked(msg string) {
	if msg == "" {
		return
	}
	e.recordLocked(msg)
	if e.hooks.OnMessage != nil {
		e.hooks.OnMessage(msg)
	}
}

// startTickerLocked launches the background tick goroutine. A non-positive
// TickInterval disables it; the owner drives Tick directly instead.
func (e *Engine) startTickerLocked() {
	if e.cfg.TickInterval <= 0 || e.tickerStop != nil {
		return
	}

	stop := make(chan struct{})
	e.tickerStop = stop

	go func() {
		t := time.NewTicker(e.cfg.TickInterval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				e.Tick()
			}
		}
	}()
}

func (e *Engine) stopTickerLocked() {
	if e.tickerStop != nil {
		close(e.tickerStop)
		e.tickerStop = nil
	}
}
