package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mgiraldez/mansion-engine/pkg/mansion"
)

// Validates the generated world: exit targets, key reachability, event
// probabilities, and ID formats. Run after editing the world definition.
func main() {
	validator := &WorldValidator{}

	if err := validator.validate(mansion.Generate()); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("World definition is valid!")
}

type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validate(rooms map[string]*mansion.Room) error {
	fmt.Printf("Validating %d rooms...\n", len(rooms))
	v.errors = nil

	if _, ok := rooms[mansion.EntryRoomID]; !ok {
		v.addError(fmt.Sprintf("entry room '%s' does not exist", mansion.EntryRoomID))
	}
	if _, ok := rooms[mansion.FinalRoomID]; !ok {
		v.addError(fmt.Sprintf("final room '%s' does not exist", mansion.FinalRoomID))
	}

	placed := make(map[string]bool)
	for _, room := range rooms {
		for _, it := range room.Items {
			placed[it.ID] = true
		}
	}

	for id, room := range rooms {
		v.validateRoom(room, id, rooms, placed)
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *WorldValidator) validateRoom(room *mansion.Room, id string, rooms map[string]*mansion.Room, placed map[string]bool) {
	v.validateIDFormat("room ID", id)

	if room.ID != id {
		v.addError(fmt.Sprintf("room '%s' is keyed under '%s'", room.ID, id))
	}
	if room.DangerLevel < 0 || room.DangerLevel > 10 {
		v.addError(fmt.Sprintf("room '%s' has danger level %d outside 0-10", id, room.DangerLevel))
	}

	for dir, destID := range room.Exits {
		v.validateIDFormat("exit direction", dir)
		if _, ok := rooms[destID]; !ok {
			v.addError(fmt.Sprintf("room '%s' exit '%s' points at unknown room '%s'", id, dir, destID))
		}
	}

	if room.Locked {
		if room.RequiredKey == "" {
			v.addError(fmt.Sprintf("locked room '%s' has no required key", id))
		} else if !placed[room.RequiredKey] {
			v.addError(fmt.Sprintf("room '%s' requires key '%s' which is placed nowhere", id, room.RequiredKey))
		}
	}

	for _, it := range room.Items {
		v.validateIDFormat("item ID", it.ID)
		if it.Name == "" || it.Description == "" {
			v.addError(fmt.Sprintf("item '%s' in room '%s' is missing a name or description", it.ID, id))
		}
	}

	for i, ev := range room.Events {
		if ev.Probability < 1 || ev.Probability > 100 {
			v.addError(fmt.Sprintf("room '%s' event %d has probability %d outside 1-100", id, i, ev.Probability))
		}
		if ev.Message == "" {
			v.addError(fmt.Sprintf("room '%s' event %d has no message", id, i))
		}
	}
}

func (v *WorldValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
