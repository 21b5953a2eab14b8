package level

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/loop-heist/internal/core"
)

//go:embed schema/level.schema.json
var schemaJSON string

const schemaURL = "heist://level.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaURL, schemaJSON)
})

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Size    YAMLSize     `yaml:"size"`
	Spawn   YAMLPoint    `yaml:"spawn"`
	Walls   []YAMLRect   `yaml:"walls"`
	Plates  []YAMLPlate  `yaml:"plates,omitempty"`
	Doors   []YAMLDoor   `yaml:"doors,omitempty"`
	Loot    []YAMLPoint  `yaml:"loot"`
	Extract YAMLRect     `yaml:"extract"`
	Cameras []YAMLCamera `yaml:"cameras,omitempty"`
	Guards  []YAMLGuard  `yaml:"guards,omitempty"`
}

// YAMLSize represents world dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint is a position in world units.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLRect is a top-left anchored rectangle.
type YAMLRect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPlate is a plate centred on (x, y).
type YAMLPlate struct {
	ID string `yaml:"id"`
	X  int    `yaml:"x"`
	Y  int    `yaml:"y"`
}

// YAMLDoor is a door and the encoded requirement that opens it.
type YAMLDoor struct {
	Requires string `yaml:"requires"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	W        int    `yaml:"w"`
	H        int    `yaml:"h"`
}

// YAMLCamera is a camera sensor.
type YAMLCamera struct {
	X              int       `yaml:"x"`
	Y              int       `yaml:"y"`
	Angle          float64   `yaml:"angle"`
	FOV            float64   `yaml:"fov"`
	Range          float64   `yaml:"range"`
	RotationSpeed  float64   `yaml:"rotation_speed,omitempty"`
	RotationBounds []float64 `yaml:"rotation_bounds,omitempty"`
}

// YAMLGuard is a patrolling guard.
type YAMLGuard struct {
	X     int         `yaml:"x"`
	Y     int         `yaml:"y"`
	Path  []YAMLPoint `yaml:"path"`
	Speed float64     `yaml:"speed"`
	Angle float64     `yaml:"angle"`
	FOV   float64     `yaml:"fov"`
	Range float64     `yaml:"range"`
}

// ParseYAML validates and converts a YAML level file.
func ParseYAML(data []byte) (*Level, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	lvl, err := yl.toLevel()
	if err != nil {
		return nil, err
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// validateSchema checks the raw document against the level schema.
// The YAML tree is re-encoded as JSON so the validator sees JSON types.
func validateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("level: compile schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidLevel)
	}

	js, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	return nil
}

func (yl YAMLLevel) toLevel() (*Level, error) {
	lvl := &Level{
		ID:      yl.ID,
		Name:    yl.Name,
		Width:   yl.Size.W,
		Height:  yl.Size.H,
		Spawn:   core.V(yl.Spawn.X, yl.Spawn.Y),
		Extract: yl.Extract.rect(),
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}

	for _, w := range yl.Walls {
		lvl.Walls = append(lvl.Walls, w.rect())
	}
	for _, p := range yl.Plates {
		lvl.Plates = append(lvl.Plates, Plate{ID: p.ID, Pos: core.V(p.X, p.Y)})
	}
	for i, d := range yl.Doors {
		req, err := ParseRequirement(d.Requires)
		if err != nil {
			return nil, fmt.Errorf("door %d: %w", i, err)
		}
		lvl.Doors = append(lvl.Doors, Door{
			Requires: req,
			Bounds:   core.NewRect(d.X, d.Y, d.W, d.H),
		})
	}
	for _, l := range yl.Loot {
		lvl.Loot = append(lvl.Loot, core.V(l.X, l.Y))
	}
	for _, c := range yl.Cameras {
		cam := Camera{
			Pos:           core.V(c.X, c.Y),
			Angle:         c.Angle,
			FOV:           c.FOV,
			Range:         c.Range,
			RotationSpeed: c.RotationSpeed,
		}
		if len(c.RotationBounds) == 2 {
			cam.RotationMin, cam.RotationMax = c.RotationBounds[0], c.RotationBounds[1]
		}
		lvl.Cameras = append(lvl.Cameras, cam)
	}
	for _, g := range yl.Guards {
		guard := Guard{
			Pos:   core.V(g.X, g.Y),
			Speed: g.Speed,
			Angle: g.Angle,
			FOV:   g.FOV,
			Range: g.Range,
		}
		for _, p := range g.Path {
			guard.Path = append(guard.Path, core.V(p.X, p.Y))
		}
		lvl.Guards = append(lvl.Guards, guard)
	}
	return lvl, nil
}

func (r YAMLRect) rect() core.Rect {
	return core.NewRect(r.X, r.Y, r.W, r.H)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
