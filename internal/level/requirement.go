package level

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadRequirement is returned for a door requirement that cannot be parsed.
var ErrBadRequirement = errors.New("level: bad door requirement")

// Requirement is the condition a door needs to open.
// It is one of PlateRequirement, AllRequirement, AnyRequirement or
// TimedRequirement.
type Requirement interface {
	// Plates returns every plate id the requirement refers to.
	Plates() []string
	String() string
	requirement()
}

// PlateRequirement opens the door while one plate is pressed.
type PlateRequirement struct {
	PlateID string
}

// AllRequirement opens the door while every listed plate is pressed.
type AllRequirement struct {
	PlateIDs []string
}

// AnyRequirement opens the door while at least one listed plate is pressed.
type AnyRequirement struct {
	PlateIDs []string
}

// TimedRequirement opens the door while the plate is pressed and keeps it
// open for Seconds after release.
type TimedRequirement struct {
	PlateID string
	Seconds int
}

func (PlateRequirement) requirement() {}
func (AllRequirement) requirement()   {}
func (AnyRequirement) requirement()   {}
func (TimedRequirement) requirement() {}

func (r PlateRequirement) Plates() []string { return []string{r.PlateID} }
func (r AllRequirement) Plates() []string   { return r.PlateIDs }
func (r AnyRequirement) Plates() []string   { return r.PlateIDs }
func (r TimedRequirement) Plates() []string { return []string{r.PlateID} }

func (r PlateRequirement) String() string { return r.PlateID }
func (r AllRequirement) String() string   { return strings.Join(r.PlateIDs, ",") }
func (r AnyRequirement) String() string   { return strings.Join(r.PlateIDs, "|") }
func (r TimedRequirement) String() string {
	return fmt.Sprintf("timed:%d:%s", r.Seconds, r.PlateID)
}

// ParseRequirement decodes the level file encoding of a requirement:
//
//	plate1            single plate
//	plate1,plate2     every plate (AND)
//	plate1|plate2     any plate (OR)
//	timed:5:plate1    plate, held open 5 seconds after release
func ParseRequirement(s string) (Requirement, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadRequirement)
	}

	if rest, ok := strings.CutPrefix(s, "timed:"); ok {
		secs, id, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q: want timed:<seconds>:<plate>", ErrBadRequirement, s)
		}
		n, err := strconv.Atoi(secs)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q: bad duration", ErrBadRequirement, s)
		}
		id = strings.TrimSpace(id)
		if id == "" || strings.ContainsAny(id, ",|:") {
			return nil, fmt.Errorf("%w: %q: bad plate id", ErrBadRequirement, s)
		}
		return TimedRequirement{PlateID: id, Seconds: n}, nil
	}

	if strings.Contains(s, ":") {
		return nil, fmt.Errorf("%w: %q: unknown form", ErrBadRequirement, s)
	}

	hasAll, hasAny := strings.Contains(s, ","), strings.Contains(s, "|")
	switch {
	case hasAll && hasAny:
		return nil, fmt.Errorf("%w: %q: cannot mix ',' and '|'", ErrBadRequirement, s)
	case hasAll:
		ids, err := splitPlates(s, ",")
		if err != nil {
			return nil, err
		}
		return AllRequirement{PlateIDs: ids}, nil
	case hasAny:
		ids, err := splitPlates(s, "|")
		if err != nil {
			return nil, err
		}
		return AnyRequirement{PlateIDs: ids}, nil
	}
	return PlateRequirement{PlateID: s}, nil
}

func splitPlates(s, sep string) ([]string, error) {
	parts := strings.Split(s, sep)
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: %q: empty plate id", ErrBadRequirement, s)
		}
		ids = append(ids, p)
	}
	return ids, nil
}
