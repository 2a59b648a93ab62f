package mansion

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DarknessMessage replaces a room description when the player cannot see.
const DarknessMessage = "It is too dark to see clearly. You need a source of light."

var titleCaser = cases.Title(language.English)

// Room is a node in the mansion graph. Rooms are created once at world
// generation and mutated during play; they are never destroyed.
type Room struct {
	ID          string
	Name        string
	Description string
	Items       []*Item
	Exits       map[string]string // direction label -> destination room ID
	Events      []*Event
	Visited     bool
	Illuminated bool
	Locked      bool
	RequiredKey string
	DangerLevel int // 0-10, drives scare probability
	SecretFound bool
}

// Describe renders the room. When dark is true the room is unreadable and
// only the darkness message is returned.
func (r *Room) Describe(dark bool) string {
	if dark {
		return DarknessMessage
	}

	var sb strings.Builder
	sb.WriteString(r.Description)

	if len(r.Items) > 0 {
		sb.WriteString("\n\nIn the room you can see:")
		for _, it := range r.Items {
			sb.WriteString("\n- " + it.Name)
		}
	}

	if len(r.Exits) > 0 {
		sb.WriteString("\n\nExits:")
		for _, dir := range sortedKeys(r.Exits) {
			sb.WriteString("\n- " + titleCaser.String(dir))
		}
	}

	return sb.String()
}

// AddItem places an item in the room.
func (r *Room) AddItem(it *Item) {
	r.Items = append(r.Items, it)
}

// FindItem returns the room item with the given ID, or nil.
func (r *Room) FindItem(id string) *Item {
	for _, it := range r.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// RemoveItem takes an item out of the room by ID and returns it, or nil if
// the room does not contain it.
func (r *Room) RemoveItem(id string) *Item {
	for i, it := range r.Items {
		if it.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return it
		}
	}
	return nil
}

// AddEvent binds a scripted event to the room.
func (r *Room) AddEvent(ev *Event) {
	r.Events = append(r.Events, ev)
}

// RoomRecord is the serializable form of a Room. Event closures cannot be
// persisted; EventsFired carries the fired flags by index into the
// generated event list.
type RoomRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Items       []*Item           `json:"items,omitempty"`
	Exits       map[string]string `json:"exits,omitempty"`
	Visited     bool              `json:"visited,omitempty"`
	Illuminated bool              `json:"illuminated,omitempty"`
	Locked      bool              `json:"locked,omitempty"`
	RequiredKey string            `json:"required_key,omitempty"`
	DangerLevel int               `json:"danger_level,omitempty"`
	SecretFound bool              `json:"secret_found,omitempty"`
	EventsFired []bool            `json:"events_fired,omitempty"`
}

// Record converts the room to its serializable form.
func (r *Room) Record() RoomRecord {
	rec := RoomRecord{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Items:       r.Items,
		Exits:       r.Exits,
		Visited:     r.Visited,
		Illuminated: r.Illuminated,
		Locked:      r.Locked,
		RequiredKey: r.RequiredKey,
		DangerLevel: r.DangerLevel,
		SecretFound: r.SecretFound,
	}
	if len(r.Events) > 0 {
		rec.EventsFired = make([]bool, len(r.Events))
		for i, ev := range r.Events {
			rec.EventsFired[i] = ev.Fired
		}
	}
	return rec
}

// RoomFromRecord rebuilds a room from its serializable form. The returned
// room carries no events; use RestoreWorld to rebind scripted events from
// the generated world.
func RoomFromRecord(rec RoomRecord) *Room {
	return &Room{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Items:       rec.Items,
		Exits:       rec.Exits,
		Visited:     rec.Visited,
		Illuminated: rec.Illuminated,
		Locked:      rec.Locked,
		RequiredKey: rec.RequiredKey,
		DangerLevel: rec.DangerLevel,
		SecretFound: rec.SecretFound,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
