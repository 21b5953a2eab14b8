package level

import "fmt"

// Info is the listing entry for one level.
type Info struct {
	Index int
	ID    string
	Name  string
}

// Catalog is an ordered, read-only set of levels making up one playthrough.
type Catalog struct {
	levels []*Level
	byID   map[string]int
}

// NewCatalog builds a catalog. Order is preserved.
func NewCatalog(levels []*Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no levels", ErrInvalidLevel)
	}
	c := &Catalog{
		levels: levels,
		byID:   make(map[string]int, len(levels)),
	}
	for i, l := range levels {
		if _, exists := c.byID[l.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidLevel, l.ID)
		}
		c.byID[l.ID] = i
	}
	return c, nil
}

// Open loads the catalog from dir, or the built-in campaign when dir is empty.
func Open(dir string) (*Catalog, error) {
	loader := Campaign()
	if dir != "" {
		loader = NewLoader(dir)
	}
	levels, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	return NewCatalog(levels)
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// At returns the level at index i.
func (c *Catalog) At(i int) *Level {
	return c.levels[i]
}

// Index returns the position of the level with the given id.
func (c *Catalog) Index(id string) (int, error) {
	i, ok := c.byID[id]
	if !ok {
		return 0, fmt.Errorf("level: unknown level %q", id)
	}
	return i, nil
}

// Get returns the level with the given id.
func (c *Catalog) Get(id string) (*Level, error) {
	i, err := c.Index(id)
	if err != nil {
		return nil, err
	}
	return c.levels[i], nil
}

// Exists checks if a level with the given id is present.
func (c *Catalog) Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// List returns information about all levels in play order.
func (c *Catalog) List() []Info {
	result := make([]Info, len(c.levels))
	for i, l := range c.levels {
		result[i] = Info{Index: i, ID: l.ID, Name: l.Name}
	}
	return result
}
