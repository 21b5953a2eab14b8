package sim

// ActorSnapshot is one actor's state.
type ActorSnapshot struct {
	ID       ActorID
	X, Y     int64 // centre, fixed point
	Carrying int   // loot index or -1
}

// LootSnapshot is one loot item's state.
type LootSnapshot struct {
	X, Y    int64
	Carrier ActorID
}

// SensorSnapshot is one sensor's state.
type SensorSnapshot struct {
	Kind      SensorKind
	X, Y      int64
	Angle     float64
	FOV       float64
	Range     float64
	Detecting bool
}

// Snapshot contains the complete simulation state for rendering and
// determinism checks. Uses primitive types only for stable comparison.
type Snapshot struct {
	Phase         Phase
	Tick          int
	Loop          int
	Failures      int
	TimeRemaining float64
	Player        ActorSnapshot
	Clones        []ActorSnapshot
	Loot          []LootSnapshot
	Plates        []bool
	Doors         []bool
	Countdowns    []int
	Sensors       []SensorSnapshot
	Suspicion     float64
	SuspicionRaw  int
	Seen          bool
	RestartInMS   int64
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         o.phase,
		Tick:          o.clock.CurrentTick(),
		Loop:          o.Loop(),
		Failures:      o.failures,
		TimeRemaining: o.clock.TimeRemainingSeconds(),
		Player:        o.actorSnapshot(o.player),
		Suspicion:     o.detection.Suspicion().Value(),
		SuspicionRaw:  o.detection.Suspicion().Raw(),
		Seen:          o.detection.Seen(),
		RestartInMS:   o.restartIn.Milliseconds(),
	}
	if o.phase == PhaseWon {
		snap.Tick = o.wonTick
	}

	for _, c := range o.clones {
		snap.Clones = append(snap.Clones, o.actorSnapshot(c))
	}
	for _, l := range o.possession.Items() {
		snap.Loot = append(snap.Loot, LootSnapshot{X: int64(l.pos.X), Y: int64(l.pos.Y), Carrier: l.carrier})
	}
	for _, p := range o.circuit.Plates() {
		snap.Plates = append(snap.Plates, p.Pressed)
	}
	for _, d := range o.circuit.Doors() {
		snap.Doors = append(snap.Doors, d.Open)
		snap.Countdowns = append(snap.Countdowns, d.Countdown)
	}
	for _, s := range o.detection.Sensors() {
		c := s.Cone()
		snap.Sensors = append(snap.Sensors, SensorSnapshot{
			Kind:      s.Kind(),
			X:         int64(c.Origin.X),
			Y:         int64(c.Origin.Y),
			Angle:     c.Angle,
			FOV:       c.FOV,
			Range:     c.Range,
			Detecting: s.Detecting(),
		})
	}
	return snap
}

func (o *Orchestrator) actorSnapshot(a *Actor) ActorSnapshot {
	return ActorSnapshot{
		ID:       a.id,
		X:        int64(a.pos.X),
		Y:        int64(a.pos.Y),
		Carrying: o.possession.CarriedBy(a.id),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Floating point fields are left out; everything they derive from is covered.
func (s Snapshot) Hash() uint64 {
	var h uint64 = 17
	mix := func(v int64) {
		h = h*31 + uint64(v)
	}
	flag := func(b bool) {
		if b {
			mix(1)
		} else {
			mix(0)
		}
	}
	actor := func(a ActorSnapshot) {
		for _, r := range a.ID {
			mix(int64(r))
		}
		mix(a.X)
		mix(a.Y)
		mix(int64(a.Carrying))
	}

	mix(int64(s.Phase))
	mix(int64(s.Tick))
	mix(int64(s.Loop))
	mix(int64(s.Failures))
	mix(int64(s.SuspicionRaw))
	flag(s.Seen)
	actor(s.Player)
	for _, c := range s.Clones {
		actor(c)
	}
	for _, l := range s.Loot {
		mix(l.X)
		mix(l.Y)
		for _, r := range l.Carrier {
			mix(int64(r))
		}
	}
	for _, p := range s.Plates {
		flag(p)
	}
	for i, d := range s.Doors {
		flag(d)
		mix(int64(s.Countdowns[i]))
	}
	for _, sn := range s.Sensors {
		mix(sn.X)
		mix(sn.Y)
		flag(sn.Detecting)
	}
	return h
}
