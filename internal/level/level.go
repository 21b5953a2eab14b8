// Package level describes heist levels: the static geometry and the puzzle
// pieces placed in it. Level files are YAML, validated against an embedded
// JSON schema and converted once at load time into the types below.
package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/loop-heist/internal/core"
)

var (
	// ErrInvalidLevel is returned when a level descriptor is malformed.
	ErrInvalidLevel = errors.New("level: invalid level")
	// ErrUnknownPlate is returned when a door requires a plate that does not exist.
	ErrUnknownPlate = errors.New("level: unknown plate")
)

// Plate is a pressure plate, centred on Pos.
type Plate struct {
	ID  string
	Pos core.Vec
}

// Door is a barrier that opens when its requirement is satisfied.
type Door struct {
	Requires Requirement
	Bounds   core.Rect
}

// Camera is a fixed sensor that may sweep between two angles.
// Angles are in degrees, 0 pointing along +X and growing clockwise (Y down).
type Camera struct {
	Pos           core.Vec
	Angle         float64
	FOV           float64
	Range         float64
	RotationSpeed float64 // degrees per tick; 0 means static
	RotationMin   float64
	RotationMax   float64
}

// Sweeps reports whether the camera rotates.
func (c Camera) Sweeps() bool {
	return c.RotationSpeed != 0 && c.RotationMax > c.RotationMin
}

// Guard is a patrolling sensor.
type Guard struct {
	Pos   core.Vec
	Path  []core.Vec
	Speed float64 // world units per second
	Angle float64
	FOV   float64
	Range float64
}

// Level is a fully validated level descriptor.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Spawn    core.Vec
	Walls    []core.Rect
	Plates   []Plate
	Doors    []Door
	Loot     []core.Vec
	Extract  core.Rect
	Cameras  []Camera
	Guards   []Guard
	FilePath string
}

// Plate returns the plate with the given id.
func (l *Level) Plate(id string) (Plate, bool) {
	for _, p := range l.Plates {
		if p.ID == id {
			return p, true
		}
	}
	return Plate{}, false
}

// Validate checks cross references that the schema cannot express.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}

	seen := make(map[string]bool, len(l.Plates))
	for _, p := range l.Plates {
		if p.ID == "" {
			return fmt.Errorf("%w: plate without id", ErrInvalidLevel)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate plate %q", ErrInvalidLevel, p.ID)
		}
		seen[p.ID] = true
	}

	for i, d := range l.Doors {
		if d.Requires == nil {
			return fmt.Errorf("%w: door %d has no requirement", ErrInvalidLevel, i)
		}
		for _, id := range d.Requires.Plates() {
			if !seen[id] {
				return fmt.Errorf("%w: door %d requires %q", ErrUnknownPlate, i, id)
			}
		}
	}

	for i, g := range l.Guards {
		if g.Speed < 0 {
			return fmt.Errorf("%w: guard %d has negative speed", ErrInvalidLevel, i)
		}
	}

	bounds := core.NewRect(0, 0, l.Width, l.Height)
	if !bounds.Contains(l.Spawn) {
		return fmt.Errorf("%w: spawn outside the level", ErrInvalidLevel)
	}
	return nil
}
