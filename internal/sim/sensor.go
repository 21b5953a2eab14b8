package sim

import (
	"math"

	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
)

// Cone is a sensor's field of view at one tick.
// Angles are in degrees, 0 along +X, growing toward +Y.
type Cone struct {
	Origin core.Vec
	Angle  float64
	FOV    float64
	Range  float64
}

// SensorKind distinguishes cameras from guards.
type SensorKind int

const (
	SensorCamera SensorKind = iota
	SensorGuard
)

// String returns a human-readable name for the kind.
func (k SensorKind) String() string {
	if k == SensorGuard {
		return "guard"
	}
	return "camera"
}

// Sensor is anything that can spot an actor.
type Sensor interface {
	Kind() SensorKind
	Cone() Cone
	// Advance moves the sensor by one tick (sweep or patrol).
	Advance(tps int)
	// Detecting reports whether the sensor saw someone this tick.
	Detecting() bool
	Reset()
	setDetecting(bool)
}

type sensorState struct {
	detecting bool
}

func (s *sensorState) Detecting() bool        { return s.detecting }
func (s *sensorState) setDetecting(seen bool) { s.detecting = seen }

// Camera is a fixed sensor that may sweep back and forth between two angles.
type Camera struct {
	sensorState
	spec  level.Camera
	angle float64
	dir   float64
}

// NewCamera creates a camera in its initial pose.
func NewCamera(spec level.Camera) *Camera {
	c := &Camera{spec: spec}
	c.Reset()
	return c
}

// Kind implements Sensor.
func (c *Camera) Kind() SensorKind { return SensorCamera }

// Cone implements Sensor.
func (c *Camera) Cone() Cone {
	return Cone{Origin: c.spec.Pos, Angle: c.angle, FOV: c.spec.FOV, Range: c.spec.Range}
}

// Advance rotates a sweeping camera by its speed, reversing at the bounds.
func (c *Camera) Advance(int) {
	if !c.spec.Sweeps() {
		return
	}
	c.angle += c.spec.RotationSpeed * c.dir
	if c.angle >= c.spec.RotationMax {
		c.angle = c.spec.RotationMax
		c.dir = -1
	} else if c.angle <= c.spec.RotationMin {
		c.angle = c.spec.RotationMin
		c.dir = 1
	}
}

// Reset implements Sensor.
func (c *Camera) Reset() {
	c.angle = c.spec.Angle
	c.dir = 1
	c.detecting = false
}

// Guard walks a closed patrol path and looks where it is going.
type Guard struct {
	sensorState
	spec     level.Guard
	pos      core.Vec
	angle    float64
	waypoint int
	radius   float64
}

// NewGuard creates a guard at its spawn. waypointRadius is how close it
// must get to a waypoint before turning to the next one.
func NewGuard(spec level.Guard, waypointRadius int) *Guard {
	g := &Guard{spec: spec, radius: float64(waypointRadius)}
	g.Reset()
	return g
}

// Kind implements Sensor.
func (g *Guard) Kind() SensorKind { return SensorGuard }

// Pos returns the guard's position.
func (g *Guard) Pos() core.Vec { return g.pos }

// Cone implements Sensor.
func (g *Guard) Cone() Cone {
	return Cone{Origin: g.pos, Angle: g.angle, FOV: g.spec.FOV, Range: g.spec.Range}
}

// Advance moves the guard toward its waypoint. On arrival it picks the
// next waypoint and stands still for the tick.
func (g *Guard) Advance(tps int) {
	if len(g.spec.Path) == 0 || tps <= 0 {
		return
	}

	target := g.spec.Path[g.waypoint]
	dist := g.pos.DistanceTo(target)
	if dist < g.radius {
		g.waypoint = (g.waypoint + 1) % len(g.spec.Path)
		return
	}

	dx, dy := target.Sub(g.pos).Floats()
	g.angle = math.Atan2(dy, dx) * 180 / math.Pi

	step := g.spec.Speed / float64(tps)
	if step >= dist {
		g.pos = target
		return
	}
	g.pos = g.pos.Add(core.Vec{
		X: core.FixedFromFloat(dx / dist * step),
		Y: core.FixedFromFloat(dy / dist * step),
	})
}

// Reset implements Sensor.
func (g *Guard) Reset() {
	g.pos = g.spec.Pos
	g.angle = g.spec.Angle
	g.waypoint = 0
	g.detecting = false
}

// NewSensors builds every sensor of a level, cameras first.
func NewSensors(lvl *level.Level, waypointRadius int) []Sensor {
	sensors := make([]Sensor, 0, len(lvl.Cameras)+len(lvl.Guards))
	for _, c := range lvl.Cameras {
		sensors = append(sensors, NewCamera(c))
	}
	for _, g := range lvl.Guards {
		sensors = append(sensors, NewGuard(g, waypointRadius))
	}
	return sensors
}
