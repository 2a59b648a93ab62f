package player

import (
	"testing"
	"time"

	"github.com/mgiraldez/mansion-engine/pkg/mansion"
)

func TestNew_Defaults(t *testing.T) {
	p := New()

	if p.Health != 100 || p.Sanity != 100 {
		t.Errorf("Expected full health and sanity, got %d/%d", p.Health, p.Sanity)
	}
	if p.FlashlightBattery != 0 {
		t.Errorf("Expected an empty battery, got %d", p.FlashlightBattery)
	}
	if p.Level != 1 {
		t.Errorf("Expected level 1, got %d", p.Level)
	}
	if len(p.Inventory) != 0 {
		t.Error("Expected empty inventory")
	}
}

func TestAddItem_StacksDuplicates(t *testing.T) {
	p := New()

	p.AddItem(mansion.NewItem("candle", "Candle", "A white candle.", mansion.ItemTool))
	p.AddItem(mansion.NewItem("candle", "Candle", "A white candle.", mansion.ItemTool))

	if len(p.Inventory) != 1 {
		t.Fatalf("Expected 1 inventory slot, got %d", len(p.Inventory))
	}
	if p.Inventory[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", p.Inventory[0].Quantity)
	}
	if p.ItemsFound != 1 {
		t.Errorf("Expected 1 distinct item found, got %d", p.ItemsFound)
	}
}

func TestRemoveItem_DecrementsStack(t *testing.T) {
	p := New()
	it := mansion.NewItem("candle", "Candle", "A white candle.", mansion.ItemTool)
	it.Quantity = 2
	p.AddItem(it)

	if !p.RemoveItem("candle") {
		t.Fatal("Expected removal to succeed")
	}
	if !p.HasItem("candle") {
		t.Error("Stack of 2 should survive one removal")
	}
	if !p.RemoveItem("candle") {
		t.Fatal("Expected second removal to succeed")
	}
	if p.HasItem("candle") {
		t.Error("Empty stack should free the slot")
	}
	if p.RemoveItem("candle") {
		t.Error("Removing a missing item should fail")
	}
}

func TestUseItem_ConsumesHealing(t *testing.T) {
	p := New()
	p.Health = 50

	kit := mansion.NewItem("first_aid_kit", "First Aid Kit", "Bandages.", mansion.ItemHealing)
	kit.Properties = map[string]int{mansion.PropRestoredHealth: 30}
	p.AddItem(kit)

	if !p.UseItem("first_aid_kit") {
		t.Fatal("Expected healing item use to succeed")
	}
	if p.Health != 80 {
		t.Errorf("Expected health 80, got %d", p.Health)
	}
	if p.HasItem("first_aid_kit") {
		t.Error("Consumed item should leave the inventory")
	}
}

func TestUseItem_MissingOrInert(t *testing.T) {
	p := New()

	if p.UseItem("ghost_item") {
		t.Error("Using a missing item should fail")
	}

	p.AddItem(mansion.NewItem("creepy_doll", "Creepy Doll", "A doll.", mansion.ItemCollectible))
	if p.UseItem("creepy_doll") {
		t.Error("Using an inert item should fail")
	}
	if !p.HasItem("creepy_doll") {
		t.Error("Failed use must not consume the item")
	}
}

func TestHeal_CapsAtMax(t *testing.T) {
	p := New()
	p.Health = 95
	p.Heal(30)
	if p.Health != 100 {
		t.Errorf("Expected health capped at 100, got %d", p.Health)
	}
}

func TestReceiveScare_DamageWithinBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := New()
		damage := p.ReceiveScare(10)

		if damage < 5 || damage > 10 {
			t.Fatalf("Damage %d outside [5,10] for intensity 10", damage)
		}
		if p.Sanity != 100-damage {
			t.Fatalf("Expected sanity %d, got %d", 100-damage, p.Sanity)
		}
		if p.Health != 100-damage/2 {
			t.Fatalf("Expected health %d, got %d", 100-damage/2, p.Health)
		}
		if p.ScaresReceived != 1 {
			t.Fatalf("Expected 1 scare received, got %d", p.ScaresReceived)
		}
	}
}

func TestReceiveScare_ZeroIntensityDealsNoDamage(t *testing.T) {
	p := New()

	for i := 0; i < 50; i++ {
		if damage := p.ReceiveScare(0); damage != 0 {
			t.Fatalf("Expected 0 damage for intensity 0, got %d", damage)
		}
	}
	if p.Health != 100 || p.Sanity != 100 {
		t.Errorf("Health/sanity changed: %d/%d", p.Health, p.Sanity)
	}
}

func TestReplaceItem_SwapsInPlace(t *testing.T) {
	p := New()
	p.AddItem(mansion.NewItem("flashlight", "Flashlight", "An old flashlight.", mansion.ItemTool))
	found := p.ItemsFound

	charged := mansion.NewItem("charged_flashlight", "Charged Flashlight", "Good as new.", mansion.ItemTool)
	if !p.ReplaceItem("flashlight", charged) {
		t.Fatal("Expected replacement to succeed")
	}
	if p.HasItem("flashlight") || !p.HasItem("charged_flashlight") {
		t.Error("Old item should be gone, replacement held")
	}
	if p.ItemsFound != found {
		t.Errorf("ItemsFound changed on replace: %d -> %d", found, p.ItemsFound)
	}

	if p.ReplaceItem("ghost_item", charged) {
		t.Error("Replacing a missing item should fail")
	}
}

func TestReceiveScare_ClampsAtZero(t *testing.T) {
	p := New()
	p.Health = 1
	p.Sanity = 1

	p.ReceiveScare(10)
	if p.Health < 0 || p.Sanity < 0 {
		t.Errorf("Health/sanity went negative: %d/%d", p.Health, p.Sanity)
	}
}

func TestReceiveScare_TouchesLastScare(t *testing.T) {
	p := New()
	before := time.Now()
	p.ReceiveScare(5)
	if p.LastScare.Before(before) {
		t.Error("LastScare not updated")
	}
}

func TestTickFlashlight_DepletionMessageOnce(t *testing.T) {
	p := New()
	p.FlashlightOn = true
	p.FlashlightBattery = 2

	if msg := p.TickFlashlight(); msg != "" {
		t.Errorf("Unexpected message at battery 1: %q", msg)
	}
	msg := p.TickFlashlight()
	if msg == "" {
		t.Fatal("Expected depletion message when battery empties")
	}
	if p.FlashlightOn {
		t.Error("Flashlight should switch off when depleted")
	}
	if again := p.TickFlashlight(); again != "" {
		t.Errorf("Depletion message repeated: %q", again)
	}
}

func TestTickFlashlight_OffDrainsNothing(t *testing.T) {
	p := New()
	p.FlashlightBattery = 50

	if msg := p.TickFlashlight(); msg != "" {
		t.Errorf("Unexpected message: %q", msg)
	}
	if p.FlashlightBattery != 50 {
		t.Errorf("Battery drained while off: %d", p.FlashlightBattery)
	}
}

func TestMoveTo_RecordsHistory(t *testing.T) {
	p := New()
	p.MoveTo("foyer")
	p.MoveTo("main_hall")

	if p.CurrentRoomID != "main_hall" {
		t.Errorf("Expected current room main_hall, got %q", p.CurrentRoomID)
	}
	if len(p.VisitedHistory) != 2 {
		t.Errorf("Expected 2 history entries, got %d", len(p.VisitedHistory))
	}
}
