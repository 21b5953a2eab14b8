package sim

import (
	"math"

	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/core"
)

// NormalizeAngle maps degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// CanSee reports whether the cone spots a body: the body's centre must be
// within range, inside the field of view, and not hidden behind a wall.
func CanSee(c Cone, body core.Rect, oracle Physics) bool {
	target := body.Center()
	dist := c.Origin.DistanceTo(target)
	if dist > c.Range {
		return false
	}

	if dist > 0 {
		dx, dy := target.Sub(c.Origin).Floats()
		bearing := math.Atan2(dy, dx) * 180 / math.Pi
		if math.Abs(NormalizeAngle(bearing-c.Angle)) > c.FOV/2 {
			return false
		}
	}

	return !oracle.SegmentBlockedByWall(c.Origin, target)
}

// Suspicion accumulates while anyone is seen and drains otherwise.
// The level is kept as an integer in units of 1/tps so that the per-tick
// steps are exact: gain and decay per tick equal the per-second rates.
type Suspicion struct {
	raw   int
	gain  int
	decay int
	max   int
	tps   int
}

// NewSuspicion creates an empty suspicion meter.
func NewSuspicion(cfg config.DetectionConfig, tps int) *Suspicion {
	return &Suspicion{
		gain:  cfg.GainPerSecond,
		decay: cfg.DecayPerSecond,
		max:   cfg.Threshold * tps,
		tps:   tps,
	}
}

// Update applies one tick. It returns true only on the tick the meter
// reaches the threshold.
func (s *Suspicion) Update(seen bool) bool {
	before := s.raw
	if seen {
		s.raw = min(s.raw+s.gain, s.max)
	} else {
		s.raw = max(s.raw-s.decay, 0)
	}
	return before < s.max && s.raw >= s.max
}

// Value returns the suspicion level, between 0 and the threshold.
func (s *Suspicion) Value() float64 {
	return float64(s.raw) / float64(s.tps)
}

// Intensity returns the suspicion level scaled to [0, 1].
func (s *Suspicion) Intensity() float64 {
	if s.max == 0 {
		return 0
	}
	return float64(s.raw) / float64(s.max)
}

// Raw returns the internal integer level.
func (s *Suspicion) Raw() int {
	return s.raw
}

// Reset empties the meter.
func (s *Suspicion) Reset() {
	s.raw = 0
}

// DetectionEngine checks every sensor against every actor and feeds the
// result into the suspicion meter.
type DetectionEngine struct {
	sensors   []Sensor
	suspicion *Suspicion
	oracle    Physics
	seen      bool
}

// NewDetectionEngine creates an engine over the given sensors.
func NewDetectionEngine(sensors []Sensor, suspicion *Suspicion, oracle Physics) *DetectionEngine {
	return &DetectionEngine{sensors: sensors, suspicion: suspicion, oracle: oracle}
}

// Evaluate runs one tick of detection against the actor bodies. It returns
// whether anyone was seen and whether suspicion crossed the threshold.
func (d *DetectionEngine) Evaluate(bodies []core.Rect) (seen, crossed bool) {
	for _, s := range d.sensors {
		cone := s.Cone()
		spotted := false
		for _, b := range bodies {
			if CanSee(cone, b, d.oracle) {
				spotted = true
				break
			}
		}
		s.setDetecting(spotted)
		seen = seen || spotted
	}
	d.seen = seen
	return seen, d.suspicion.Update(seen)
}

// Seen reports whether anyone was seen on the last evaluated tick.
func (d *DetectionEngine) Seen() bool {
	return d.seen
}

// Suspicion returns the meter.
func (d *DetectionEngine) Suspicion() *Suspicion {
	return d.suspicion
}

// Sensors returns the sensors.
func (d *DetectionEngine) Sensors() []Sensor {
	return d.sensors
}

// Reset clears the meter and every sensor's pose.
func (d *DetectionEngine) Reset() {
	d.suspicion.Reset()
	d.seen = false
	for _, s := range d.sensors {
		s.Reset()
	}
}
