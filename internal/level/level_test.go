package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/loop-heist/internal/core"
)

const sampleLevel = `
id: test
name: Test Room
size: {w: 400, h: 300}
spawn: {x: 50, y: 50}
walls:
  - {x: 0, y: 0, w: 400, h: 10}
plates:
  - {id: p1, x: 100, y: 100}
  - {id: p2, x: 200, y: 100}
doors:
  - {requires: "p1,p2", x: 300, y: 0, w: 10, h: 100}
  - {requires: "timed:3:p1", x: 300, y: 100, w: 10, h: 100}
loot:
  - {x: 350, y: 250}
extract: {x: 10, y: 200, w: 40, h: 40}
cameras:
  - {x: 390, y: 150, angle: 180, fov: 60, range: 200, rotation_speed: 2, rotation_bounds: [150, 210]}
guards:
  - x: 200
    y: 250
    path: [{x: 100, y: 250}, {x: 300, y: 250}]
    speed: 100
    angle: 0
    fov: 60
    range: 150
`

func TestParseYAML(t *testing.T) {
	lvl, err := ParseYAML([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("ParseYAML() error: %v", err)
	}

	if lvl.ID != "test" || lvl.Name != "Test Room" {
		t.Errorf("ID/Name = %q/%q", lvl.ID, lvl.Name)
	}
	if lvl.Width != 400 || lvl.Height != 300 {
		t.Errorf("size = %dx%d, expected 400x300", lvl.Width, lvl.Height)
	}
	if lvl.Spawn != core.V(50, 50) {
		t.Errorf("Spawn = %+v", lvl.Spawn)
	}
	if len(lvl.Plates) != 2 || len(lvl.Doors) != 2 || len(lvl.Loot) != 1 {
		t.Fatalf("counts: plates=%d doors=%d loot=%d", len(lvl.Plates), len(lvl.Doors), len(lvl.Loot))
	}
	if _, ok := lvl.Doors[0].Requires.(AllRequirement); !ok {
		t.Errorf("door 0 requirement = %T, expected AllRequirement", lvl.Doors[0].Requires)
	}
	if tr, ok := lvl.Doors[1].Requires.(TimedRequirement); !ok || tr.Seconds != 3 {
		t.Errorf("door 1 requirement = %#v, expected timed 3s", lvl.Doors[1].Requires)
	}
	if lvl.Doors[0].Bounds != core.NewRect(300, 0, 10, 100) {
		t.Errorf("door 0 bounds = %+v", lvl.Doors[0].Bounds)
	}

	cam := lvl.Cameras[0]
	if !cam.Sweeps() || cam.RotationMin != 150 || cam.RotationMax != 210 {
		t.Errorf("camera = %+v", cam)
	}
	if len(lvl.Guards[0].Path) != 2 || lvl.Guards[0].Speed != 100 {
		t.Errorf("guard = %+v", lvl.Guards[0])
	}
}

func TestParseYAMLRejects(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected error
	}{
		{
			name:     "missing extract",
			doc:      "id: x\nsize: {w: 10, h: 10}\nspawn: {x: 1, y: 1}\nwalls: []\nloot: []\n",
			expected: ErrInvalidLevel,
		},
		{
			name:     "unknown field",
			doc:      "id: x\nsize: {w: 10, h: 10}\nspawn: {x: 1, y: 1}\nwalls: []\nloot: []\nextract: {x: 0, y: 0, w: 1, h: 1}\nlasers: []\n",
			expected: ErrInvalidLevel,
		},
		{
			name:     "zero width wall",
			doc:      "id: x\nsize: {w: 10, h: 10}\nspawn: {x: 1, y: 1}\nwalls: [{x: 0, y: 0, w: 0, h: 1}]\nloot: []\nextract: {x: 0, y: 0, w: 1, h: 1}\n",
			expected: ErrInvalidLevel,
		},
		{
			name:     "door needs unknown plate",
			doc:      "id: x\nsize: {w: 10, h: 10}\nspawn: {x: 1, y: 1}\nwalls: []\nplates: [{id: a, x: 1, y: 1}]\ndoors: [{requires: b, x: 0, y: 0, w: 1, h: 1}]\nloot: []\nextract: {x: 0, y: 0, w: 1, h: 1}\n",
			expected: ErrUnknownPlate,
		},
		{
			name:     "bad requirement",
			doc:      "id: x\nsize: {w: 10, h: 10}\nspawn: {x: 1, y: 1}\nwalls: []\nplates: [{id: a, x: 1, y: 1}]\ndoors: [{requires: \"timed:z:a\", x: 0, y: 0, w: 1, h: 1}]\nloot: []\nextract: {x: 0, y: 0, w: 1, h: 1}\n",
			expected: ErrBadRequirement,
		},
		{
			name:     "duplicate plate",
			doc:      "id: x\nsize: {w: 10, h: 10}\nspawn: {x: 1, y: 1}\nwalls: []\nplates: [{id: a, x: 1, y: 1}, {id: a, x: 2, y: 2}]\nloot: []\nextract: {x: 0, y: 0, w: 1, h: 1}\n",
			expected: ErrInvalidLevel,
		},
		{
			name:     "spawn outside",
			doc:      "id: x\nsize: {w: 10, h: 10}\nspawn: {x: 50, y: 1}\nwalls: []\nloot: []\nextract: {x: 0, y: 0, w: 1, h: 1}\n",
			expected: ErrInvalidLevel,
		},
		{
			name:     "empty document",
			doc:      "",
			expected: ErrInvalidLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.doc))
			if !errors.Is(err, tc.expected) {
				t.Errorf("ParseYAML() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestCampaignLoads(t *testing.T) {
	cat, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	if cat.Len() != 8 {
		t.Fatalf("campaign has %d levels, expected 8", cat.Len())
	}

	list := cat.List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("campaign not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}

	timed, err := cat.Get("03")
	if err != nil {
		t.Fatalf("Get(03) error: %v", err)
	}
	if _, ok := timed.Doors[0].Requires.(TimedRequirement); !ok {
		t.Errorf("level 03 door = %T, expected timed", timed.Doors[0].Requires)
	}

	if cat.Exists("99") {
		t.Error("Exists(99) should be false")
	}
	if _, err := cat.Get("99"); err == nil {
		t.Error("Get(99) should fail")
	}
}

func TestLoaderDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "extra")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	writeLevel := func(path, id string) {
		t.Helper()
		doc := "id: " + id + "\nsize: {w: 100, h: 100}\nspawn: {x: 10, y: 10}\nwalls: []\nloot: []\nextract: {x: 80, y: 80, w: 10, h: 10}\n"
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeLevel(filepath.Join(dir, "b.yaml"), "b")
	writeLevel(filepath.Join(nested, "a.yml"), "a")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	levels, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(levels) != 2 || levels[0].ID != "a" || levels[1].ID != "b" {
		t.Fatalf("LoadAll() = %d levels, expected a then b", len(levels))
	}

	writeLevel(filepath.Join(dir, "dup.yaml"), "a")
	if _, err := NewLoader(dir).LoadAll(); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("duplicate id error = %v, expected ErrInvalidLevel", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(sampleLevel), 0o644); err != nil {
		t.Fatal(err)
	}
	lvl, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if lvl.FilePath != path {
		t.Errorf("FilePath = %q, expected %q", lvl.FilePath, path)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile() on missing file should fail")
	}
}
