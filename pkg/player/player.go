package player

import (
	"math/rand/v2"
	"time"

	"github.com/mgiraldez/mansion-engine/pkg/mansion"
)

const (
	maxHealth = 100
	maxSanity = 100
)

// Player is the explorer's full state. All fields are exported for
// serialization; mutation goes through the methods below.
type Player struct {
	Health            int             `json:"health"`
	Sanity            int             `json:"sanity"`
	Inventory         []*mansion.Item `json:"inventory"`
	CurrentRoomID     string          `json:"current_room_id"`
	TimePlayed        float64         `json:"time_played"` // seconds
	FlashlightOn      bool            `json:"flashlight_on"`
	FlashlightBattery int             `json:"flashlight_battery"`
	Score             int             `json:"score"`
	Level             int             `json:"level"`
	VisitedHistory    []string        `json:"visited_history,omitempty"`
	LastScare         time.Time       `json:"last_scare"`
	ItemsFound        int             `json:"items_found"`
	SecretsFound      int             `json:"secrets_found"`
	ScaresReceived    int             `json:"scares_received"`
}

// New returns a fresh player at full health and sanity, carrying nothing.
// The flashlight battery starts empty; a battery item must be found and
// used before the light works.
func New() *Player {
	return &Player{
		Health: maxHealth,
		Sanity: maxSanity,
		Level:  1,
	}
}

// AddItem puts an item in the inventory. An item with the same ID and kind
// as one already held stacks onto it instead of occupying a new slot.
func (p *Player) AddItem(it *mansion.Item) {
	for _, held := range p.Inventory {
		if held.ID == it.ID && held.Kind == it.Kind {
			held.Quantity += it.Quantity
			return
		}
	}
	p.Inventory = append(p.Inventory, it)
	p.ItemsFound++
}

// Item returns the held item with the given ID, or nil.
func (p *Player) Item(id string) *mansion.Item {
	for _, it := range p.Inventory {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// HasItem reports whether the player holds the item.
func (p *Player) HasItem(id string) bool {
	return p.Item(id) != nil
}

// RemoveItem drops one unit of the item from the inventory. The slot is
// freed when the stack empties. Returns false if the item is not held.
func (p *Player) RemoveItem(id string) bool {
	for i, it := range p.Inventory {
		if it.ID == id {
			it.Quantity--
			if it.Quantity <= 0 {
				p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			}
			return true
		}
	}
	return false
}

// ReplaceItem swaps a held item for another in place, keeping the slot
// order. Crafting results go through here so they do not count toward the
// items-found tally.
func (p *Player) ReplaceItem(oldID string, it *mansion.Item) bool {
	for i, held := range p.Inventory {
		if held.ID == oldID {
			p.Inventory[i] = it
			return true
		}
	}
	return false
}

// UseItem applies a held item's generic effect. Items consumed by use are
// removed from the inventory. Returns false when the item is not held or
// has no effect.
func (p *Player) UseItem(id string) bool {
	it := p.Item(id)
	if it == nil {
		return false
	}
	if !it.Use(p) {
		return false
	}
	if it.Used {
		p.RemoveItem(id)
	}
	return true
}

// MoveTo places the player in a room unconditionally. Exit validation and
// lock checks belong to the caller.
func (p *Player) MoveTo(roomID string) {
	p.CurrentRoomID = roomID
	p.VisitedHistory = append(p.VisitedHistory, roomID)
}

// ReceiveScare damages the player from a scare of the given intensity and
// returns the damage dealt. Sanity takes the full damage, health half of
// it; both floor at zero.
func (p *Player) ReceiveScare(intensity int) int {
	if intensity < 0 {
		intensity = 0
	}
	low := intensity / 2
	damage := low + rand.IntN(intensity-low+1)

	p.Health -= damage / 2
	p.Sanity -= damage
	if p.Health < 0 {
		p.Health = 0
	}
	if p.Sanity < 0 {
		p.Sanity = 0
	}

	p.ScaresReceived++
	p.LastScare = time.Now()
	return damage
}

// TickFlashlight drains one unit of battery while the flashlight is on.
// When the battery empties, the light goes out and the depletion message is
// returned exactly once.
func (p *Player) TickFlashlight() string {
	if !p.FlashlightOn {
		return ""
	}
	if p.FlashlightBattery > 0 {
		p.FlashlightBattery--
	}
	if p.FlashlightBattery <= 0 {
		p.FlashlightOn = false
		return "Your flashlight has run out of battery."
	}
	return ""
}

// Heal restores health, capped at the maximum.
func (p *Player) Heal(amount int) {
	p.Health += amount
	if p.Health > maxHealth {
		p.Health = maxHealth
	}
}

// ToggleFlashlight flips the flashlight on or off.
func (p *Player) ToggleFlashlight() {
	p.FlashlightOn = !p.FlashlightOn
}

var _ mansion.ItemTarget = (*Player)(nil)
