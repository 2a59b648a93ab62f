package mansion

import (
	"strings"
	"testing"
)

func testRoom() *Room {
	r := &Room{
		ID:          "cellar",
		Name:        "Cellar",
		Description: "A damp cellar with a dirt floor.",
		Exits:       map[string]string{"up": "kitchen", "north": "crypt"},
		DangerLevel: 6,
	}
	r.AddItem(NewItem("rusty_key", "Rusty Key", "A corroded old key.", ItemKey))
	return r
}

func TestRoom_DescribeDark(t *testing.T) {
	r := testRoom()
	if got := r.Describe(true); got != DarknessMessage {
		t.Errorf("Expected darkness message, got %q", got)
	}
}

func TestRoom_DescribeListsItemsAndExits(t *testing.T) {
	r := testRoom()
	got := r.Describe(false)

	if !strings.Contains(got, r.Description) {
		t.Error("Description missing from room text")
	}
	if !strings.Contains(got, "Rusty Key") {
		t.Error("Item missing from room text")
	}
	// Directions are title-cased and sorted.
	north := strings.Index(got, "North")
	up := strings.Index(got, "Up")
	if north == -1 || up == -1 {
		t.Fatalf("Exits missing from room text: %q", got)
	}
	if north > up {
		t.Error("Exits should be listed in sorted order")
	}
}

func TestRoom_RemoveItem(t *testing.T) {
	r := testRoom()

	it := r.RemoveItem("rusty_key")
	if it == nil || it.ID != "rusty_key" {
		t.Fatal("Expected to remove the rusty key")
	}
	if r.FindItem("rusty_key") != nil {
		t.Error("Item still present after removal")
	}
	if r.RemoveItem("rusty_key") != nil {
		t.Error("Second removal should return nil")
	}
}

func TestRoom_RecordRoundTrip(t *testing.T) {
	r := testRoom()
	r.Visited = true
	r.Locked = true
	r.RequiredKey = "rusty_key"
	r.AddEvent(&Event{Kind: EventScare, Message: "A rat screeches.", Probability: 50})
	r.Events[0].Fired = true

	rec := r.Record()
	if len(rec.EventsFired) != 1 || !rec.EventsFired[0] {
		t.Error("Record should carry fired flags")
	}

	restored := RoomFromRecord(rec)
	if restored.ID != r.ID || restored.Name != r.Name {
		t.Error("Restored room lost identity")
	}
	if !restored.Visited || !restored.Locked || restored.RequiredKey != "rusty_key" {
		t.Error("Restored room lost flags")
	}
	if restored.DangerLevel != 6 {
		t.Errorf("Expected danger level 6, got %d", restored.DangerLevel)
	}
	if len(restored.Events) != 0 {
		t.Error("RoomFromRecord must not invent events")
	}
}
