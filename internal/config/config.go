// Package config provides YAML-based tuning for the heist simulation and
// difficulty presets.
package config

import (
	"fmt"
	"strings"
	"time"
)

// GameConfig contains all tuning for the simulation.
type GameConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Actor      ActorConfig      `yaml:"actor"`
	Loot       LootConfig       `yaml:"loot"`
	Plate      PlateConfig      `yaml:"plate"`
	Guard      GuardConfig      `yaml:"guard"`
	Detection  DetectionConfig  `yaml:"detection"`
}

// SimulationConfig defines the fixed step and loop length.
type SimulationConfig struct {
	TicksPerSecond int `yaml:"ticks_per_second"`
	LoopSeconds    int `yaml:"loop_seconds"`
}

// ActorConfig defines the player and clone bodies.
type ActorConfig struct {
	Speed int `yaml:"speed"` // world units per second
	Size  int `yaml:"size"`
}

// LootConfig defines loot item bodies.
type LootConfig struct {
	Size int `yaml:"size"`
}

// PlateConfig defines pressure plate bodies.
type PlateConfig struct {
	Size int `yaml:"size"`
}

// GuardConfig defines guard bodies and patrol behaviour.
type GuardConfig struct {
	Size           int `yaml:"size"`
	WaypointRadius int `yaml:"waypoint_radius"`
}

// DetectionConfig defines suspicion dynamics.
type DetectionConfig struct {
	GainPerSecond  int `yaml:"gain_per_second"`
	DecayPerSecond int `yaml:"decay_per_second"`
	Threshold      int `yaml:"threshold"`
	RestartDelayMS int `yaml:"restart_delay_ms"`
}

// TickDuration returns the length of one simulation step.
func (c GameConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(c.Simulation.TicksPerSecond)
}

// LoopTicks returns the number of ticks in one loop attempt.
func (c GameConfig) LoopTicks() int {
	return c.Simulation.LoopSeconds * c.Simulation.TicksPerSecond
}

// RestartDelay returns how long a detected loop stays frozen.
func (c GameConfig) RestartDelay() time.Duration {
	return time.Duration(c.Detection.RestartDelayMS) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset.
// The empty string selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}
