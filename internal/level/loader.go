package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

//go:embed levels/*.yaml
var campaignFS embed.FS

// Loader handles loading levels from a directory tree.
type Loader struct {
	fsys fs.FS
	Root string
}

// NewLoader creates a loader for level files under root.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), Root: root}
}

// Campaign returns a loader over the built-in levels.
func Campaign() *Loader {
	sub, err := fs.Sub(campaignFS, "levels")
	if err != nil {
		// Only fails for an invalid path literal.
		panic(err)
	}
	return &Loader{fsys: sub, Root: "<campaign>"}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
// The first invalid file aborts the load.
func (l *Loader) LoadAll() ([]*Level, error) {
	var levels []*Level

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		lvl, err := l.loadFS(path)
		if err != nil {
			return err
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading levels from %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	for i := 1; i < len(levels); i++ {
		if levels[i].ID == levels[i-1].ID {
			return nil, fmt.Errorf("%w: duplicate id %q (%s, %s)",
				ErrInvalidLevel, levels[i].ID, levels[i-1].FilePath, levels[i].FilePath)
		}
	}

	return levels, nil
}

func (l *Loader) loadFS(path string) (*Level, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// LoadFile loads a single level file from disk.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(FormatExtensions(), ext)
}
