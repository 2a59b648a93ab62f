package mansion

import (
	"encoding/json"
	"testing"
)

type fakeTarget struct {
	healed  int
	toggled int
}

func (f *fakeTarget) Heal(amount int)   { f.healed += amount }
func (f *fakeTarget) ToggleFlashlight() { f.toggled++ }

func TestItem_UseHealing(t *testing.T) {
	kit := NewItem("first_aid_kit", "First Aid Kit", "Bandages and antiseptic.", ItemHealing)
	kit.Properties = map[string]int{PropRestoredHealth: 30}

	target := &fakeTarget{}
	if !kit.Use(target) {
		t.Fatal("Expected healing item use to succeed")
	}
	if target.healed != 30 {
		t.Errorf("Expected 30 health restored, got %d", target.healed)
	}
	if !kit.Used {
		t.Error("Expected healing item to be consumed")
	}
}

func TestItem_UseHealingDefault(t *testing.T) {
	kit := NewItem("bandage", "Bandage", "A clean bandage.", ItemHealing)

	target := &fakeTarget{}
	kit.Use(target)
	if target.healed != 20 {
		t.Errorf("Expected default 20 health restored, got %d", target.healed)
	}
}

func TestItem_UseFlashlight(t *testing.T) {
	fl := NewItem(ItemFlashlight, "Flashlight", "An old flashlight.", ItemTool)

	target := &fakeTarget{}
	if !fl.Use(target) {
		t.Fatal("Expected flashlight use to succeed")
	}
	if target.toggled != 1 {
		t.Errorf("Expected one toggle, got %d", target.toggled)
	}
	if fl.Used {
		t.Error("Flashlight must not be consumed by use")
	}
}

func TestItem_UseInert(t *testing.T) {
	doll := NewItem("creepy_doll", "Creepy Doll", "A porcelain doll.", ItemCollectible)

	target := &fakeTarget{}
	if doll.Use(target) {
		t.Error("Expected collectible use to fail")
	}
}

func TestItem_CombineBatteryAndFlashlight(t *testing.T) {
	battery := NewItem(ItemBattery, "Battery", "A charged battery.", ItemTool)
	flashlight := NewItem(ItemFlashlight, "Flashlight", "An old flashlight.", ItemTool)

	combined := battery.Combine(flashlight)
	if combined == nil {
		t.Fatal("Expected battery + flashlight to combine")
	}
	if combined.ID != ItemChargedFlashlight {
		t.Errorf("Expected %q, got %q", ItemChargedFlashlight, combined.ID)
	}
	if combined.Properties[PropDuration] != 100 {
		t.Errorf("Expected duration 100, got %d", combined.Properties[PropDuration])
	}
	if !combined.IsFlashlight() {
		t.Error("Combined item should act as a flashlight")
	}

	// Operands untouched.
	if battery.Used || flashlight.Used {
		t.Error("Combine must not mutate its operands")
	}
}

func TestItem_CombineUnknownPair(t *testing.T) {
	candle := NewItem(ItemCandle, "Candle", "A white candle.", ItemTool)
	doll := NewItem("creepy_doll", "Creepy Doll", "A porcelain doll.", ItemCollectible)

	if candle.Combine(doll) != nil {
		t.Error("Expected unknown pair not to combine")
	}
	if candle.Combine(nil) != nil {
		t.Error("Expected nil operand not to combine")
	}
}

func TestItem_VisiblePropertiesHidesInternals(t *testing.T) {
	book := NewItem(ItemRitualBook, "Book of Rituals", "An ancient tome.", ItemCollectible)
	book.Properties = map[string]int{PropPower: 100, PropProtection: 5}

	visible := book.VisibleProperties()
	if _, ok := visible[PropPower]; ok {
		t.Error("Power must stay hidden")
	}
	if visible[PropProtection] != 5 {
		t.Error("Protection should be visible")
	}
}

func TestItem_JSONRoundTrip(t *testing.T) {
	knife := NewItem("kitchen_knife", "Kitchen Knife", "A rusty knife.", ItemWeapon)
	knife.Properties = map[string]int{PropDamage: 15}
	knife.Quantity = 2

	data, err := json.Marshal(knife)
	if err != nil {
		t.Fatalf("Failed to marshal item: %v", err)
	}

	var decoded Item
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal item: %v", err)
	}

	if decoded.ID != knife.ID || decoded.Kind != knife.Kind {
		t.Error("Round-tripped item lost identity")
	}
	if decoded.Properties[PropDamage] != 15 {
		t.Error("Round-tripped item lost properties")
	}
	if decoded.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", decoded.Quantity)
	}
}
