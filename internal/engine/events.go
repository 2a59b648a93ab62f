package engine

import (
	"github.com/mgiraldez/mansion-engine/pkg/mansion"
)

// scareSuppressionWindow keeps ambient scares from piling up; no ambient
// scare fires within this window after any scare.
const scareSuppressionWindow = 60.0 // seconds

var ambientScares = []string{
	"You hear footsteps on the floor above.",
	"A whisper brushes past your ear, too faint to make out.",
	"The temperature drops suddenly and your breath fogs.",
	"A shadow slides across the edge of your vision.",
	"Somewhere in the mansion, a door slams shut.",
	"A muffled sob seeps out of the walls.",
	"The floorboards creak behind you, but no one is there.",
	"A child's laughter echoes from a distant room.",
	"You feel a cold breath on the back of your neck.",
	"Something scratches slowly on the other side of the wall.",
}

// snapshot builds the immutable view of session state that event conditions
// are evaluated against.
func (e *Engine) snapshotLocked() mansion.EventState {
	held := make([]string, 0, len(e.player.Inventory))
	for _, it := range e.player.Inventory {
		held = append(held, it.ID)
	}

	st := mansion.EventState{
		Health:    e.player.Health,
		Sanity:    e.player.Sanity,
		Inventory: held,
	}
	if room := e.currentRoomLocked(); room != nil {
		st.RoomVisited = room.Visited
		st.SecretFound = room.SecretFound
	}
	return st
}

// evaluateScriptedEventsLocked rolls every unfired event in the room. Scare
// events wound the player at the room's danger level; discovery events
// reveal the room's secret.
func (e *Engine) evaluateScriptedEventsLocked(room *mansion.Room) {
	for _, ev := range room.Events {
		st := e.snapshotLocked()
		roll := e.rng.IntN(100) + 1
		if !ev.Eligible(roll, st) {
			continue
		}

		msg := ev.Fire()
		e.emitLocked(msg)

		switch ev.Kind {
		case mansion.EventScare:
			damage := e.player.ReceiveScare(room.DangerLevel)
			e.logger.Debug("Scripted scare fired",
				"room", room.ID, "damage", damage,
				"health", e.player.Health, "sanity", e.player.Sanity)
		case mansion.EventDiscovery:
			if !room.SecretFound {
				room.SecretFound = true
				e.player.SecretsFound++
			}
			e.logger.Debug("Discovery fired", "room", room.ID)
		}
	}
}

// ambientScareChanceLocked computes the per-tick ambient scare probability
// in percent. It grows with the room's danger level, shrinks with the
// player's remaining sanity, and scales with difficulty.
func (e *Engine) ambientScareChanceLocked(room *mansion.Room) float64 {
	danger := float64(room.DangerLevel) * 0.5
	sanityFactor := 1 + float64(100-e.player.Sanity)/100
	return danger * sanityFactor * e.difficulty.ScareMultiplier()
}

// ambientScareLocked maybe fires a random atmospheric scare. Suppressed
// entirely within the cooldown window after the last scare of any kind.
func (e *Engine) ambientScareLocked(room *mansion.Room) {
	if room == nil || room.DangerLevel <= 0 {
		return
	}
	if e.clock.Now().Sub(e.player.LastScare).Seconds() < scareSuppressionWindow {
		return
	}

	chance := e.ambientScareChanceLocked(room)
	if e.rng.Float64()*100 >= chance {
		return
	}

	msg := ambientScares[e.rng.IntN(len(ambientScares))]
	e.emitLocked(msg)
	damage := e.player.ReceiveScare(room.DangerLevel / 2)
	e.logger.Debug("Ambient scare fired",
		"room", room.ID, "damage", damage,
		"health", e.player.Health, "sanity", e.player.Sanity)
}
