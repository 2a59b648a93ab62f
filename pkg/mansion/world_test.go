package mansion

import "testing"

func TestGenerate_WorldInvariants(t *testing.T) {
	rooms := Generate()

	if len(rooms) != 17 {
		t.Fatalf("Expected 17 rooms, got %d", len(rooms))
	}
	if _, ok := rooms[EntryRoomID]; !ok {
		t.Fatal("Entry room missing")
	}
	if _, ok := rooms[FinalRoomID]; !ok {
		t.Fatal("Final room missing")
	}
	if !rooms[EntryRoomID].Illuminated {
		t.Error("Entry room must be lit")
	}

	for id, room := range rooms {
		if room.ID != id {
			t.Errorf("Room %q keyed under %q", room.ID, id)
		}
		if room.DangerLevel < 0 || room.DangerLevel > 10 {
			t.Errorf("Room %q has danger level %d outside 0-10", id, room.DangerLevel)
		}
		for dir, destID := range room.Exits {
			if _, ok := rooms[destID]; !ok {
				t.Errorf("Room %q exit %q points at unknown room %q", id, dir, destID)
			}
		}
		if room.Locked && room.RequiredKey == "" {
			t.Errorf("Locked room %q has no required key", id)
		}
		for _, ev := range room.Events {
			if ev.Probability < 1 || ev.Probability > 100 {
				t.Errorf("Room %q event probability %d outside 1-100", id, ev.Probability)
			}
			if ev.Fired {
				t.Errorf("Room %q event generated pre-fired", id)
			}
		}
	}
}

func TestGenerate_EveryRequiredKeyIsPlaced(t *testing.T) {
	rooms := Generate()

	placed := make(map[string]bool)
	for _, room := range rooms {
		for _, it := range room.Items {
			placed[it.ID] = true
		}
	}

	for id, room := range rooms {
		if room.Locked && !placed[room.RequiredKey] {
			t.Errorf("Room %q requires key %q which is nowhere in the world", id, room.RequiredKey)
		}
	}
}

func TestGenerate_ExitsAreBidirectional(t *testing.T) {
	rooms := Generate()

	opposite := map[string]string{
		"north": "south", "south": "north",
		"east": "west", "west": "east",
		"up": "down", "down": "up",
	}

	for id, room := range rooms {
		for dir, destID := range room.Exits {
			back, ok := opposite[dir]
			if !ok {
				t.Errorf("Room %q uses unknown direction %q", id, dir)
				continue
			}
			dest := rooms[destID]
			if dest.Exits[back] != id {
				t.Errorf("Exit %s from %q to %q has no return path", dir, id, destID)
			}
		}
	}
}

// The flashlight starts without a battery and darkness blocks picking
// things up, so at least one light source must sit in a lit room.
func TestGenerate_LightSourcesAreReachable(t *testing.T) {
	rooms := Generate()

	flashlightRoom := findItemRoom(rooms, ItemFlashlight)
	if flashlightRoom == nil || !flashlightRoom.Illuminated {
		t.Error("Flashlight must be placed in a lit room")
	}
	candleRoom := findItemRoom(rooms, ItemCandle)
	if candleRoom == nil || !candleRoom.Illuminated {
		t.Error("Candle must be placed in a lit room")
	}
}

func findItemRoom(rooms map[string]*Room, itemID string) *Room {
	for _, room := range rooms {
		if room.FindItem(itemID) != nil {
			return room
		}
	}
	return nil
}

func TestGenerate_RitualBookInFinalRoom(t *testing.T) {
	rooms := Generate()
	if rooms[FinalRoomID].FindItem(ItemRitualBook) == nil {
		t.Error("Final room must hold the ritual book")
	}
}

func TestRestoreWorld_RebindsEvents(t *testing.T) {
	rooms := Generate()
	attic := rooms[FinalRoomID]
	if len(attic.Events) == 0 {
		t.Fatal("Attic should carry a scripted event")
	}
	attic.Events[0].Fired = true
	attic.Visited = true
	attic.RemoveItem(ItemRitualBook)

	records := make(map[string]RoomRecord, len(rooms))
	for id, room := range rooms {
		records[id] = room.Record()
	}

	restored := RestoreWorld(records)
	if len(restored) != len(rooms) {
		t.Fatalf("Expected %d restored rooms, got %d", len(rooms), len(restored))
	}

	restoredAttic := restored[FinalRoomID]
	if len(restoredAttic.Events) == 0 {
		t.Fatal("Restored attic lost its events")
	}
	if !restoredAttic.Events[0].Fired {
		t.Error("Fired flag lost across restore")
	}
	if !restoredAttic.Visited {
		t.Error("Visited flag lost across restore")
	}
	if restoredAttic.FindItem(ItemRitualBook) != nil {
		t.Error("Removed item reappeared after restore")
	}

	// Rooms untouched in play restore with unfired events.
	if restored["kitchen"].Events[0].Fired {
		t.Error("Unfired event restored as fired")
	}
}
