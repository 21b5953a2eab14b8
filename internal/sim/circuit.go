package sim

import (
	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
)

// PlateState is a pressure plate and whether it is held down this tick.
type PlateState struct {
	ID      string
	Bounds  core.Rect
	Pressed bool
}

// DoorState is a door and its resolved state for this tick.
type DoorState struct {
	Requires   level.Requirement
	Bounds     core.Rect
	Open       bool
	JustOpened bool
	Countdown  int // ticks left on a released timed door
}

// resolve decides whether the door is open given the pressed plates.
// Timed doors carry their countdown from tick to tick.
func (d *DoorState) resolve(pressed map[string]bool, tps int) bool {
	switch r := d.Requires.(type) {
	case level.PlateRequirement:
		return pressed[r.PlateID]
	case level.AllRequirement:
		for _, id := range r.PlateIDs {
			if !pressed[id] {
				return false
			}
		}
		return len(r.PlateIDs) > 0
	case level.AnyRequirement:
		for _, id := range r.PlateIDs {
			if pressed[id] {
				return true
			}
		}
		return false
	case level.TimedRequirement:
		if pressed[r.PlateID] {
			d.Countdown = r.Seconds * tps
			return true
		}
		if d.Countdown > 0 {
			d.Countdown--
			return true
		}
		return false
	}
	return false
}

// CircuitEvaluator maps what rests on the plates to which doors are open.
type CircuitEvaluator struct {
	plates  []PlateState
	doors   []DoorState
	pressed map[string]bool
	tps     int
	oracle  Physics
}

// NewCircuitEvaluator builds the circuit of a level with every door closed.
func NewCircuitEvaluator(lvl *level.Level, plateSize core.Fixed, tps int, oracle Physics) *CircuitEvaluator {
	c := &CircuitEvaluator{
		plates:  make([]PlateState, len(lvl.Plates)),
		doors:   make([]DoorState, len(lvl.Doors)),
		pressed: make(map[string]bool, len(lvl.Plates)),
		tps:     tps,
		oracle:  oracle,
	}
	for i, p := range lvl.Plates {
		c.plates[i] = PlateState{ID: p.ID, Bounds: core.RectAround(p.Pos, plateSize, plateSize)}
	}
	for i, d := range lvl.Doors {
		c.doors[i] = DoorState{Requires: d.Requires, Bounds: d.Bounds}
	}
	return c
}

// Evaluate recomputes plates from the actor bodies and loot, then doors
// from the plates. It returns the indices of doors that opened this tick.
func (c *CircuitEvaluator) Evaluate(bodies []core.Rect, loot []Loot) []int {
	clear(c.pressed)
	for i := range c.plates {
		p := &c.plates[i]
		p.Pressed = c.weighted(p.Bounds, bodies, loot)
		if p.Pressed {
			c.pressed[p.ID] = true
		}
	}

	var opened []int
	for i := range c.doors {
		d := &c.doors[i]
		was := d.Open
		d.Open = d.resolve(c.pressed, c.tps)
		d.JustOpened = d.Open && !was
		if d.JustOpened {
			opened = append(opened, i)
		}
	}
	return opened
}

func (c *CircuitEvaluator) weighted(plate core.Rect, bodies []core.Rect, loot []Loot) bool {
	for _, b := range bodies {
		if c.oracle.Overlaps(plate, b) {
			return true
		}
	}
	for _, l := range loot {
		if !l.IsCollected() && c.oracle.Overlaps(plate, l.Bounds()) {
			return true
		}
	}
	return false
}

// Pressed reports whether the plate with the given id is pressed.
func (c *CircuitEvaluator) Pressed(id string) bool {
	return c.pressed[id]
}

// Plates returns a copy of the plate states.
func (c *CircuitEvaluator) Plates() []PlateState {
	return append([]PlateState(nil), c.plates...)
}

// Doors returns a copy of the door states.
func (c *CircuitEvaluator) Doors() []DoorState {
	return append([]DoorState(nil), c.doors...)
}

// ClosedDoorBounds returns the bodies of closed doors, which block motion.
func (c *CircuitEvaluator) ClosedDoorBounds() []core.Rect {
	var out []core.Rect
	for _, d := range c.doors {
		if !d.Open {
			out = append(out, d.Bounds)
		}
	}
	return out
}

// Reset releases every plate and closes every door.
func (c *CircuitEvaluator) Reset() {
	clear(c.pressed)
	for i := range c.plates {
		c.plates[i].Pressed = false
	}
	for i := range c.doors {
		c.doors[i].Open = false
		c.doors[i].JustOpened = false
		c.doors[i].Countdown = 0
	}
}
