package engine

import "errors"

// Action errors. Player-facing text travels separately in the returned
// message; these sentinels classify the failure for callers and tests.
var (
	ErrInvalidDirection = errors.New("no exit in that direction")
	ErrLocked           = errors.New("door is locked")
	ErrItemNotFound     = errors.New("item not in room")
	ErrItemNotHeld      = errors.New("item not in inventory")
	ErrDepletedBattery  = errors.New("flashlight battery depleted")
	ErrTooDark          = errors.New("too dark to see")
	ErrCannotUse        = errors.New("item cannot be used here")
)

// Session errors.
var (
	ErrNotRunning   = errors.New("no game running")
	ErrNoSession    = errors.New("no game session")
	ErrNotEnded     = errors.New("game has not ended")
	ErrSlotNotFound = errors.New("save slot not found")
)
