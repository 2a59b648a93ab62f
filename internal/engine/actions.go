package engine

import (
	"slices"
	"strconv"
	"strings"

	"github.com/mgiraldez/mansion-engine/pkg/mansion"
)

// Player-facing action feedback.
const (
	msgNoExit          = "You cannot go that way."
	msgDoorLocked      = "The door is locked. You need a specific key."
	msgDoorUnlocked    = "You use the key to open the door."
	msgTakeDark        = "It is too dark to see what you are trying to pick up."
	msgTakeNotFound    = "You do not find that object in the room."
	msgNotHeld         = "You do not have that object in your inventory."
	msgNoBattery       = "The flashlight has no battery."
	msgCannotUse       = "You cannot use that here."
	msgExamineDark     = "It is too dark to examine that closely."
	msgNothingHere     = "You do not see that here."
	msgEmptyInventory  = "Your inventory is empty."
	msgRitualElsewhere = "You read a few lines aloud, but nothing happens. This is not the place."
)

// Move walks the player through an exit. The required key acts as a
// permission: a locked door opens for the key holder on every pass but
// stays locked.
func (e *Engine) Move(direction string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.actionableLocked(); err != nil {
		return "", err
	}
	room := e.currentRoomLocked()
	if room == nil {
		return "", nil
	}

	direction = strings.ToLower(strings.TrimSpace(direction))
	destID, ok := room.Exits[direction]
	if !ok {
		e.recordLocked(msgNoExit)
		return msgNoExit, ErrInvalidDirection
	}

	dest := e.rooms[destID]
	if dest == nil {
		e.recordLocked(msgNoExit)
		return msgNoExit, ErrInvalidDirection
	}

	var unlocked string
	if dest.Locked {
		if !e.player.HasItem(dest.RequiredKey) {
			e.recordLocked(msgDoorLocked)
			return msgDoorLocked, ErrLocked
		}
		unlocked = msgDoorUnlocked + "\n"
	}

	e.player.MoveTo(destID)

	var msg string
	if dest.Visited {
		msg = unlocked + "You return to the " + dest.Name + "."
	} else {
		dest.Visited = true
		msg = unlocked + "You enter the " + dest.Name + ".\n\n" + dest.Describe(e.roomDarkLocked(dest))
	}
	e.recordLocked(msg)

	e.evaluateScriptedEventsLocked(dest)
	e.checkDeathLocked()
	return msg, nil
}

// Take picks up a room item by ID or name.
func (e *Engine) Take(target string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.actionableLocked(); err != nil {
		return "", err
	}
	room := e.currentRoomLocked()
	if room == nil {
		return "", nil
	}

	if e.roomDarkLocked(room) {
		e.recordLocked(msgTakeDark)
		return msgTakeDark, ErrTooDark
	}

	it := findItem(room.Items, target)
	if it == nil {
		e.recordLocked(msgTakeNotFound)
		return msgTakeNotFound, ErrItemNotFound
	}

	room.RemoveItem(it.ID)
	e.player.AddItem(it)

	msg := "You picked up: " + it.Name + " - " + it.Description
	e.recordLocked(msg)
	e.logger.Debug("Item taken", "item", it.ID, "room", room.ID)
	return msg, nil
}

// Use applies a held item. The flashlight, battery, candle, and ritual
// book have engine-level behavior; everything else falls through to the
// item's own effect.
func (e *Engine) Use(target string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.actionableLocked(); err != nil {
		return "", err
	}
	room := e.currentRoomLocked()
	if room == nil {
		return "", nil
	}

	it := findItem(e.player.Inventory, target)
	if it == nil {
		e.recordLocked(msgNotHeld)
		return msgNotHeld, ErrItemNotHeld
	}

	switch {
	case it.ID == mansion.ItemRitualBook:
		return e.useRitualBookLocked(room)

	case it.IsFlashlight():
		return e.useFlashlightLocked(room)

	case it.ID == mansion.ItemBattery:
		return e.useBatteryLocked()

	case it.ID == mansion.ItemCandle:
		room.Illuminated = true
		msg := "You light the candle. A warm glow pushes back the darkness."
		e.recordLocked(msg)
		return msg, nil
	}

	if e.player.UseItem(it.ID) {
		msg := "You use the " + it.Name + "."
		if it.Kind == mansion.ItemHealing {
			msg = "You use the " + it.Name + " and feel somewhat restored."
		}
		e.recordLocked(msg)
		return msg, nil
	}

	e.recordLocked(msgCannotUse)
	return msgCannotUse, ErrCannotUse
}

func (e *Engine) useRitualBookLocked(room *mansion.Room) (string, error) {
	if room.ID != mansion.FinalRoomID {
		e.recordLocked(msgRitualElsewhere)
		return msgRitualElsewhere, ErrCannotUse
	}

	msg := "You open the Book of Rituals inside the circle and begin to chant. " +
		"The words burn your throat as the mansion groans around you.\n\n" + victorySummary
	e.recordLocked(msg)
	e.endLocked(true, victorySummary)
	return msg, nil
}

func (e *Engine) useFlashlightLocked(room *mansion.Room) (string, error) {
	if e.player.FlashlightBattery <= 0 {
		e.recordLocked(msgNoBattery)
		return msgNoBattery, ErrDepletedBattery
	}

	e.player.ToggleFlashlight()
	msg := "You turn off the flashlight."
	if e.player.FlashlightOn {
		// A room once swept by the beam stays readable afterwards.
		room.Illuminated = true
		msg = "You turn on the flashlight. The beam cuts through the gloom."
	}
	e.recordLocked(msg)
	return msg, nil
}

func (e *Engine) useBatteryLocked() (string, error) {
	var flashlight *mansion.Item
	for _, held := range e.player.Inventory {
		if held.IsFlashlight() {
			flashlight = held
			break
		}
	}
	if flashlight == nil {
		e.recordLocked(msgCannotUse)
		return msgCannotUse, ErrCannotUse
	}

	battery := e.player.Item(mansion.ItemBattery)
	if combined := battery.Combine(flashlight); combined != nil {
		// Crafted, not found; the items-found tally stays put.
		e.player.ReplaceItem(flashlight.ID, combined)
	}
	e.player.RemoveItem(mansion.ItemBattery)
	e.player.FlashlightBattery = 100

	msg := "You slot the battery into the flashlight. It hums back to life."
	e.recordLocked(msg)
	return msg, nil
}

// Examine inspects the room, a room item, or a held item. An empty target
// examines the room.
func (e *Engine) Examine(target string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.actionableLocked(); err != nil {
		return "", err
	}
	room := e.currentRoomLocked()
	if room == nil {
		return "", nil
	}

	switch strings.ToLower(strings.TrimSpace(target)) {
	case "", "room", "around":
		msg := room.Describe(e.roomDarkLocked(room))
		e.recordLocked(msg)
		return msg, nil
	}

	if it := findItem(room.Items, target); it != nil {
		if e.roomDarkLocked(room) {
			e.recordLocked(msgExamineDark)
			return msgExamineDark, ErrTooDark
		}
		e.recordLocked(it.Description)
		return it.Description, nil
	}

	if it := findItem(e.player.Inventory, target); it != nil {
		msg := describeHeldItem(it)
		e.recordLocked(msg)
		return msg, nil
	}

	e.recordLocked(msgNothingHere)
	return msgNothingHere, ErrItemNotFound
}

// ListInventory renders the player's inventory.
func (e *Engine) ListInventory() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.actionableLocked(); err != nil {
		return "", err
	}

	if len(e.player.Inventory) == 0 {
		e.recordLocked(msgEmptyInventory)
		return msgEmptyInventory, nil
	}

	var sb strings.Builder
	sb.WriteString("You are carrying:")
	for _, it := range e.player.Inventory {
		sb.WriteString("\n- " + it.Name)
		if it.Quantity > 1 {
			sb.WriteString(" (x" + strconv.Itoa(it.Quantity) + ")")
		}
	}
	msg := sb.String()
	e.recordLocked(msg)
	return msg, nil
}

// actionableLocked gates player actions on session state.
func (e *Engine) actionableLocked() error {
	if !e.running || e.paused || e.ended || e.player == nil {
		return ErrNotRunning
	}
	return nil
}

// roomDarkLocked reports whether the room is unreadable: darkness mode on,
// no room light, and no flashlight.
func (e *Engine) roomDarkLocked(room *mansion.Room) bool {
	return e.cfg.DarknessMode && !room.Illuminated && !e.player.FlashlightOn
}

func findItem(items []*mansion.Item, target string) *mansion.Item {
	target = strings.TrimSpace(target)
	for _, it := range items {
		if it.ID == strings.ToLower(target) || strings.EqualFold(it.Name, target) {
			return it
		}
	}
	return nil
}

func describeHeldItem(it *mansion.Item) string {
	var sb strings.Builder
	sb.WriteString(it.Description)

	props := it.VisibleProperties()
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		label := strings.ReplaceAll(k, "_", " ")
		label = strings.ToUpper(label[:1]) + label[1:]
		sb.WriteString("\n" + label + ": " + strconv.Itoa(props[k]))
	}
	return sb.String()
}
