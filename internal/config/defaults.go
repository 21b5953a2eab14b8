package config

import (
	_ "embed"
)

//go:embed defaults/heist.yaml
var defaultHeistYAML []byte

// DefaultGameConfig returns the built-in tuning.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Simulation: SimulationConfig{
			TicksPerSecond: 20,
			LoopSeconds:    20,
		},
		Actor: ActorConfig{
			Speed: 200,
			Size:  32,
		},
		Loot: LootConfig{
			Size: 24,
		},
		Plate: PlateConfig{
			Size: 48,
		},
		Guard: GuardConfig{
			Size:           32,
			WaypointRadius: 5,
		},
		Detection: DetectionConfig{
			GainPerSecond:  20,
			DecayPerSecond: 10,
			Threshold:      100,
			RestartDelayMS: 1500,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultHeistYAML
}
