package config

// ApplyPreset modifies the config based on a difficulty preset.
// Presets change how long each loop lasts and how long a detected loop
// stays frozen; normal leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Simulation.LoopSeconds = 30
		cfg.Detection.RestartDelayMS = 1000
	case DifficultyHard:
		cfg.Simulation.LoopSeconds = 15
		cfg.Detection.RestartDelayMS = 2500
	}
}
