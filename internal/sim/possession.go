package sim

import "github.com/vovakirdan/loop-heist/internal/core"

// Loot is a portable item. While carried it has no presence in the world.
type Loot struct {
	pos     core.Vec
	size    core.Fixed
	carrier ActorID
}

// Pos returns where the item lies, or where it was picked up if carried.
func (l Loot) Pos() core.Vec { return l.pos }

// Bounds returns the item's body.
func (l Loot) Bounds() core.Rect { return core.RectAround(l.pos, l.size, l.size) }

// Carrier returns who holds the item, or "" if nobody does.
func (l Loot) Carrier() ActorID { return l.carrier }

// IsCollected reports whether someone is carrying the item.
func (l Loot) IsCollected() bool { return l.carrier != "" }

// Reset puts the item back in the world, uncarried, at pos.
func (l *Loot) Reset(pos core.Vec) {
	l.pos = pos
	l.carrier = ""
}

// Transfer describes what an interaction did.
type Transfer int

const (
	TransferNone Transfer = iota
	TransferPickup
	TransferDrop
)

// PossessionTracker decides who carries which loot item.
// Items are scanned in level order so pickups are deterministic.
type PossessionTracker struct {
	items  []Loot
	homes  []core.Vec
	oracle Physics
}

// NewPossessionTracker places one item at each home position.
func NewPossessionTracker(homes []core.Vec, size core.Fixed, oracle Physics) *PossessionTracker {
	p := &PossessionTracker{
		items:  make([]Loot, len(homes)),
		homes:  append([]core.Vec(nil), homes...),
		oracle: oracle,
	}
	for i, h := range homes {
		p.items[i] = Loot{pos: h, size: size}
	}
	return p
}

// Interact handles one interact press by an actor. An actor already
// carrying something drops it at at; otherwise it picks up the first
// uncollected item overlapping its body. It returns the item index
// involved, or -1.
func (p *PossessionTracker) Interact(id ActorID, body core.Rect, at core.Vec) (int, Transfer) {
	if i := p.CarriedBy(id); i >= 0 {
		p.items[i].pos = at
		p.items[i].carrier = ""
		return i, TransferDrop
	}
	for i := range p.items {
		item := &p.items[i]
		if item.IsCollected() {
			continue
		}
		if p.oracle.Overlaps(body, item.Bounds()) {
			item.carrier = id
			return i, TransferPickup
		}
	}
	return -1, TransferNone
}

// CarriedBy returns the index of the item id carries, or -1.
func (p *PossessionTracker) CarriedBy(id ActorID) int {
	for i := range p.items {
		if p.items[i].carrier == id {
			return i
		}
	}
	return -1
}

// AllCollected reports whether every item is being carried.
func (p *PossessionTracker) AllCollected() bool {
	for _, it := range p.items {
		if !it.IsCollected() {
			return false
		}
	}
	return true
}

// Items returns a copy of the item states.
func (p *PossessionTracker) Items() []Loot {
	out := make([]Loot, len(p.items))
	copy(out, p.items)
	return out
}

// Reset returns every item to its home position.
func (p *PossessionTracker) Reset() {
	for i := range p.items {
		p.items[i].Reset(p.homes[i])
	}
}
