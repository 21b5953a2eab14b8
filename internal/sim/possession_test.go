package sim

import (
	"testing"

	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/physics"
)

func TestPossessionPickupAndDrop(t *testing.T) {
	world := physics.NewWorld(800, 600, nil)
	p := NewPossessionTracker([]core.Vec{core.V(100, 100), core.V(110, 100)}, core.ToFixed(24), world)
	body := core.RectAround(core.V(100, 100), core.ToFixed(32), core.ToFixed(32))

	i, tr := p.Interact(PlayerID, body, core.V(100, 100))
	if tr != TransferPickup || i != 0 {
		t.Fatalf("Interact() = %d, %v, expected pickup of item 0", i, tr)
	}
	if p.CarriedBy(PlayerID) != 0 {
		t.Errorf("CarriedBy() = %d, expected 0", p.CarriedBy(PlayerID))
	}

	// Already carrying: the next press drops, never picks up item 1.
	i, tr = p.Interact(PlayerID, body, core.V(300, 200))
	if tr != TransferDrop || i != 0 {
		t.Fatalf("Interact() = %d, %v, expected drop of item 0", i, tr)
	}
	items := p.Items()
	if items[0].IsCollected() || items[0].Pos() != core.V(300, 200) {
		t.Errorf("dropped item = %+v, expected uncarried at (300, 200)", items[0])
	}

	// Stable order: item 1 is now the first overlapping uncollected item.
	i, tr = p.Interact(CloneID(0), body, core.V(100, 100))
	if tr != TransferPickup || i != 1 {
		t.Errorf("Interact() = %d, %v, expected pickup of item 1", i, tr)
	}
}

func TestPossessionOneCarrierPerItem(t *testing.T) {
	world := physics.NewWorld(800, 600, nil)
	p := NewPossessionTracker([]core.Vec{core.V(100, 100)}, core.ToFixed(24), world)
	body := core.RectAround(core.V(100, 100), core.ToFixed(32), core.ToFixed(32))

	p.Interact(PlayerID, body, core.V(100, 100))
	if _, tr := p.Interact(CloneID(0), body, core.V(100, 100)); tr != TransferNone {
		t.Errorf("second actor got %v on a carried item", tr)
	}
	if p.Items()[0].Carrier() != PlayerID {
		t.Errorf("Carrier() = %q, expected player", p.Items()[0].Carrier())
	}
	if !p.AllCollected() {
		t.Error("AllCollected() should be true")
	}

	p.Reset()
	if p.AllCollected() || p.Items()[0].Pos() != core.V(100, 100) {
		t.Error("Reset() should return the item home, uncarried")
	}
}

func TestPossessionNothingInReach(t *testing.T) {
	world := physics.NewWorld(800, 600, nil)
	p := NewPossessionTracker([]core.Vec{core.V(500, 500)}, core.ToFixed(24), world)
	body := core.RectAround(core.V(100, 100), core.ToFixed(32), core.ToFixed(32))

	if i, tr := p.Interact(PlayerID, body, core.V(100, 100)); tr != TransferNone || i != -1 {
		t.Errorf("Interact() = %d, %v, expected nothing", i, tr)
	}
}
