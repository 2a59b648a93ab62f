package mansion

// EntryRoomID is where every new game starts.
const EntryRoomID = "foyer"

// FinalRoomID is where the ritual book ends the game in victory.
const FinalRoomID = "attic"

// Generate builds the mansion: a fixed room graph with pre-placed items and
// scripted events. Topology and IDs are deterministic across runs; the only
// randomness in the game lives in event firing and scare rolls.
func Generate() map[string]*Room {
	rooms := make(map[string]*Room)

	foyer := &Room{
		ID:   "foyer",
		Name: "Mansion Foyer",
		Description: "You stand in the mansion's wide foyer. The place is covered in dust " +
			"and cobwebs. A great chandelier hangs precariously from the ceiling. The " +
			"atmosphere is oppressive and a chill runs down your spine.",
		Exits: map[string]string{
			"north": "main_hall",
			"east":  "library",
			"west":  "living_room",
		},
		Illuminated: true,
		DangerLevel: 2,
	}

	livingRoom := &Room{
		ID:   "living_room",
		Name: "Living Room",
		Description: "A spacious room with antique furniture draped in dusty sheets. " +
			"Moonlight spills through the tall windows. Portraits on the walls seem " +
			"to follow you with their eyes and a cold fireplace dominates the north wall.",
		Exits: map[string]string{
			"east":  "foyer",
			"north": "dining_room",
		},
		Illuminated: true,
		DangerLevel: 3,
	}
	livingRoom.AddItem(NewItem(ItemFlashlight, "Flashlight",
		"An old flashlight. It looks functional but needs batteries.", ItemTool))

	library := &Room{
		ID:   "library",
		Name: "Library",
		Description: "Shelves packed with ancient books rise to the ceiling. Some books " +
			"seem to move on their own. A wooden desk sits in the center, strange marks " +
			"carved into it.",
		Exits: map[string]string{
			"west":  "foyer",
			"north": "secret_study",
		},
		DangerLevel: 4,
		Locked:      true,
		RequiredKey: "library_key",
	}
	library.AddItem(NewItem("old_diary", "Old Diary",
		"A worn, weathered diary. Its pages hold notes on paranormal experiments conducted in the mansion.",
		ItemCollectible))

	mainHall := &Room{
		ID:   "main_hall",
		Name: "Main Hall",
		Description: "A long hallway with doors on both sides. The floorboards creak " +
			"under your feet. You can hear whispers coming from inside the walls.",
		Exits: map[string]string{
			"south": "foyer",
			"north": "staircase",
			"east":  "study",
			"west":  "dining_room",
		},
		DangerLevel: 5,
	}

	diningRoom := &Room{
		ID:   "dining_room",
		Name: "Dining Room",
		Description: "A broad oak table dominates this room. The tableware is laid out " +
			"as if awaiting guests, though covered in dust. A chandelier hangs from the " +
			"ceiling, a few of its candles still guttering.",
		Exits: map[string]string{
			"east":  "main_hall",
			"south": "living_room",
			"north": "kitchen",
		},
		// The guttering chandelier keeps the room readable; without it the
		// candle could never be picked up and no light source would be
		// reachable at all.
		Illuminated: true,
		DangerLevel: 4,
	}
	diningRoom.AddItem(NewItem(ItemCandle, "Candle",
		"A partially burnt white candle. It could be useful in the dark.", ItemTool))

	kitchen := &Room{
		ID:   "kitchen",
		Name: "Kitchen",
		Description: "An old kitchen with rusted utensils hanging from the walls. There " +
			"are dark stains on the floor and walls you would rather not examine too " +
			"closely. A sickening smell hangs in the air.",
		Exits: map[string]string{
			"south": "dining_room",
			"east":  "pantry",
		},
		DangerLevel: 6,
	}
	knife := NewItem("kitchen_knife", "Kitchen Knife",
		"A rusty but sharp kitchen knife. It could be useful to defend yourself.", ItemWeapon)
	knife.Properties = map[string]int{PropDamage: 15}
	kitchen.AddItem(knife)

	pantry := &Room{
		ID:   "pantry",
		Name: "Pantry",
		Description: "A small room with empty shelves. Cobwebs cover everything and you " +
			"hear rats scurrying in the dark.",
		Exits: map[string]string{
			"west": "kitchen",
		},
		DangerLevel: 5,
	}
	pantry.AddItem(NewItem(ItemBattery, "Battery",
		"A battery that seems to hold some charge. It could be useful for the flashlight.", ItemTool))

	study := &Room{
		ID:   "study",
		Name: "Study",
		Description: "An elegant room with bookshelves and an antique desk. Papers lie " +
			"scattered everywhere, strange symbols drawn across them.",
		Exits: map[string]string{
			"west": "main_hall",
		},
		DangerLevel: 4,
	}
	study.AddItem(NewItem("library_key", "Library Key",
		"An ancient key with the symbol of a book engraved on it.", ItemKey))

	secretStudy := &Room{
		ID:   "secret_study",
		Name: "Secret Study",
		Description: "A hidden study behind the library. Dark rituals seem to have been " +
			"performed here. Strange symbols are drawn on the floor and the walls are " +
			"covered in inscriptions.",
		Exits: map[string]string{
			"south": "library",
		},
		DangerLevel: 7,
	}
	amulet := NewItem("amulet", "Protective Amulet",
		"An ancient amulet etched with strange symbols. It seems to ward off the supernatural.", ItemTool)
	amulet.Properties = map[string]int{PropProtection: 25}
	secretStudy.AddItem(amulet)

	staircase := &Room{
		ID:   "staircase",
		Name: "Staircase",
		Description: "An imposing staircase leading to the second floor. Several steps " +
			"are broken and there are dark stains on the banister. You hear footsteps " +
			"above.",
		Exits: map[string]string{
			"south": "main_hall",
			"up":    "upper_hall",
		},
		DangerLevel: 6,
	}

	upperHall := &Room{
		ID:   "upper_hall",
		Name: "Upper Hall",
		Description: "A long corridor with doors on both sides. Portraits line the " +
			"walls, their painted eyes tracking your every step.",
		Exits: map[string]string{
			"down":  "staircase",
			"east":  "master_bedroom",
			"west":  "childs_room",
			"north": "guest_room",
		},
		DangerLevel: 7,
	}

	masterBedroom := &Room{
		ID:   "master_bedroom",
		Name: "Master Bedroom",
		Description: "A spacious bedroom with a canopy bed. The curtains stir although " +
			"there is no breeze. A tall mirror reflects a figure that is not you.",
		Exits: map[string]string{
			"west":  "upper_hall",
			"north": "bathroom",
		},
		DangerLevel: 8,
	}
	masterBedroom.AddItem(NewItem("attic_key", "Attic Key",
		"An ancient key with the symbol of a house engraved on it.", ItemKey))

	bathroom := &Room{
		ID:   "bathroom",
		Name: "Bathroom",
		Description: "An old bathroom with a cast-iron tub. The water in the sink runs " +
			"reddish and the mirror is cracked. There are fingernail marks on the walls.",
		Exits: map[string]string{
			"south": "master_bedroom",
		},
		DangerLevel: 7,
	}
	firstAid := NewItem("first_aid_kit", "First Aid Kit",
		"A small kit with some bandages and antiseptic.", ItemHealing)
	firstAid.Properties = map[string]int{PropRestoredHealth: 30}
	bathroom.AddItem(firstAid)

	childsRoom := &Room{
		ID:   "childs_room",
		Name: "Child's Room",
		Description: "A child's bedroom full of antique toys covered in dust. A music " +
			"box plays by itself and a wooden rocking horse sways with no one pushing it.",
		Exits: map[string]string{
			"east": "upper_hall",
		},
		DangerLevel: 9,
	}
	childsRoom.AddItem(NewItem("creepy_doll", "Creepy Doll",
		"A porcelain doll with black eyes. Its lips are stained red and it seems to whisper something.",
		ItemCollectible))
	childsRoom.AddItem(NewItem("guest_key", "Guest Room Key",
		"A small tarnished key on a frayed ribbon, the kind kept for visitors.", ItemKey))

	guestRoom := &Room{
		ID:   "guest_room",
		Name: "Guest Room",
		Description: "A plain room with a bed and a wardrobe. The window is boarded up " +
			"and there are scratch marks on the door, as if someone tried desperately " +
			"to get out.",
		Exits: map[string]string{
			"south": "upper_hall",
			"east":  "attic_stairs",
		},
		DangerLevel: 6,
		Locked:      true,
		RequiredKey: "guest_key",
	}

	atticStairs := &Room{
		ID:   "attic_stairs",
		Name: "Attic Stairs",
		Description: "A narrow staircase leading to the attic. Whispers and wails drift " +
			"down from above.",
		Exits: map[string]string{
			"west": "guest_room",
			"up":   "attic",
		},
		DangerLevel: 8,
		Locked:      true,
		RequiredKey: "attic_key",
	}

	attic := &Room{
		ID:   "attic",
		Name: "Attic",
		Description: "A wide attic packed with old furniture and crates. A strong smell " +
			"of sulfur fills the air and you feel a malevolent presence watching you. A " +
			"ritual circle is drawn on the floor at the center.",
		Exits: map[string]string{
			"down": "attic_stairs",
		},
		DangerLevel: 10,
	}
	ritual := NewItem(ItemRitualBook, "Book of Rituals",
		"An ancient tome bound in pale leather. It holds rituals to summon and banish entities from beyond.",
		ItemCollectible)
	ritual.Properties = map[string]int{PropPower: 100}
	attic.AddItem(ritual)

	for _, r := range []*Room{
		foyer, livingRoom, library, mainHall, diningRoom, kitchen, pantry,
		study, secretStudy, staircase, upperHall, masterBedroom, bathroom,
		childsRoom, guestRoom, atticStairs, attic,
	} {
		rooms[r.ID] = r
	}

	bindEvents(rooms)
	return rooms
}

// bindEvents attaches the scripted one-shot events to their rooms.
func bindEvents(rooms map[string]*Room) {
	rooms["childs_room"].AddEvent(&Event{
		Kind:        EventScare,
		Message:     "You hear a child's voice whispering: 'Have you seen my nanny? She is here... she is always here...'",
		Probability: 80,
	})

	rooms["bathroom"].AddEvent(&Event{
		Kind:        EventScare,
		Message:     "For an instant the cracked mirror shows the reflection of a woman with a disfigured face.",
		Probability: 70,
	})

	rooms["library"].AddEvent(&Event{
		Kind:        EventDiscovery,
		Message:     "One of the books falls from the shelf. Opening it, you find an underlined passage describing a ritual to seal malevolent entities.",
		Probability: 60,
	})

	rooms["dining_room"].AddEvent(&Event{
		Kind:        EventScare,
		Message:     "The chairs slide around the table on their own, as if invisible guests were sitting down to dinner.",
		Probability: 65,
	})

	rooms["attic"].AddEvent(&Event{
		Kind:        EventScare,
		Message:     "A dark figure materializes within the ritual circle. Its red eyes fix on you before it vanishes with a harrowing scream.",
		Probability: 90,
	})

	rooms["master_bedroom"].AddEvent(&Event{
		Kind:        EventScare,
		Message:     "The bed sinks as if someone invisible were lying down on it. The sheets shift slowly.",
		Probability: 75,
	})

	rooms["staircase"].AddEvent(&Event{
		Kind:        EventScare,
		Message:     "You hear heavy footsteps coming down the stairs, but no one is there.",
		Probability: 70,
	})

	rooms["kitchen"].AddEvent(&Event{
		Kind:        EventScare,
		Message:     "The knives on the wall tremble and one of them clatters to the floor.",
		Probability: 65,
	})
}

// RestoreWorld rebuilds a playable room map from save records. Scripted
// events are rebound from the generated world, with fired flags applied
// from each record.
func RestoreWorld(records map[string]RoomRecord) map[string]*Room {
	fresh := Generate()
	rooms := make(map[string]*Room, len(records))
	for id, rec := range records {
		room := RoomFromRecord(rec)
		if generated, ok := fresh[id]; ok {
			room.Events = generated.Events
			for i, fired := range rec.EventsFired {
				if i < len(room.Events) {
					room.Events[i].Fired = fired
				}
			}
		}
		rooms[id] = room
	}
	return rooms
}
