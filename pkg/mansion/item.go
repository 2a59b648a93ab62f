package mansion

// ItemKind classifies what an item is for.
type ItemKind string

const (
	ItemKey         ItemKind = "key"
	ItemWeapon      ItemKind = "weapon"
	ItemTool        ItemKind = "tool"
	ItemHealing     ItemKind = "healing"
	ItemCollectible ItemKind = "collectible"
)

// Item IDs the engine special-cases.
const (
	ItemFlashlight        = "flashlight"
	ItemChargedFlashlight = "charged_flashlight"
	ItemBattery           = "battery"
	ItemCandle            = "candle"
	ItemRitualBook        = "ritual_book"
)

// Property keys used in item property bags.
const (
	PropRestoredHealth = "restored_health"
	PropDamage         = "damage"
	PropProtection     = "protection"
	PropDuration       = "duration"
	PropCombined       = "combined"
	PropPower          = "power"
)

// hiddenProperties are never shown when an item is examined.
var hiddenProperties = map[string]bool{
	PropCombined: true,
	PropPower:    true,
}

// Item is an object the player can carry and use. Identical items stack in
// inventory via Quantity.
type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Kind        ItemKind       `json:"kind"`
	Properties  map[string]int `json:"properties,omitempty"`
	Used        bool           `json:"used,omitempty"`
	Quantity    int            `json:"quantity"`
}

// NewItem creates an item with quantity 1 and no properties.
func NewItem(id, name, description string, kind ItemKind) *Item {
	return &Item{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        kind,
		Quantity:    1,
	}
}

// ItemTarget is the narrow view of the player an item may act on when used.
type ItemTarget interface {
	Heal(amount int)
	ToggleFlashlight()
}

// Use applies the item's kind-specific effect and reports whether the use
// succeeded. Healing items restore health and are consumed (Used becomes
// true); flashlight items toggle the target's flashlight. Any other item
// has no generic effect.
func (i *Item) Use(target ItemTarget) bool {
	switch {
	case i.Kind == ItemHealing:
		restored := 20
		if v, ok := i.Properties[PropRestoredHealth]; ok {
			restored = v
		}
		target.Heal(restored)
		i.Used = true
		return true
	case i.IsFlashlight():
		target.ToggleFlashlight()
		return true
	}
	return false
}

// IsFlashlight reports whether this item acts as a flashlight.
func (i *Item) IsFlashlight() bool {
	return i.ID == ItemFlashlight || i.ID == ItemChargedFlashlight
}

// Combine produces a new item for known pairs, or nil when the two items
// cannot be combined. It never mutates its operands.
func (i *Item) Combine(other *Item) *Item {
	if other == nil {
		return nil
	}
	if i.ID == ItemBattery && other.ID == ItemFlashlight {
		return &Item{
			ID:          ItemChargedFlashlight,
			Name:        "Charged Flashlight",
			Description: "A flashlight that now has a battery and can light up dark areas.",
			Kind:        ItemTool,
			Properties: map[string]int{
				PropDuration: 100,
				PropCombined: 1,
			},
			Quantity: 1,
		}
	}
	return nil
}

// VisibleProperties returns the property bag minus hidden entries, for
// display when the item is examined.
func (i *Item) VisibleProperties() map[string]int {
	if len(i.Properties) == 0 {
		return nil
	}
	visible := make(map[string]int, len(i.Properties))
	for k, v := range i.Properties {
		if !hiddenProperties[k] {
			visible[k] = v
		}
	}
	return visible
}
