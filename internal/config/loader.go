package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "heist.yaml"

// Load loads the simulation tuning.
// Search order: customPath -> ~/.heist/configs/heist.yaml -> ./configs/heist.yaml -> embedded default
// Files are layered over the defaults, so a partial file only overrides
// the keys it names.
func Load(customPath string) (GameConfig, error) {
	cfg := DefaultGameConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return normalize(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return normalize(cfg), nil
			}
			cfg = DefaultGameConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return normalize(cfg), nil
		}
		cfg = DefaultGameConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultHeistYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return normalize(cfg), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".heist", "configs", filename)
}

// normalize replaces values the simulation cannot run with by defaults.
func normalize(cfg GameConfig) GameConfig {
	def := DefaultGameConfig()
	if cfg.Simulation.TicksPerSecond <= 0 {
		cfg.Simulation.TicksPerSecond = def.Simulation.TicksPerSecond
	}
	if cfg.Simulation.LoopSeconds <= 0 {
		cfg.Simulation.LoopSeconds = def.Simulation.LoopSeconds
	}
	if cfg.Actor.Speed < 0 {
		cfg.Actor.Speed = def.Actor.Speed
	}
	if cfg.Actor.Size <= 0 {
		cfg.Actor.Size = def.Actor.Size
	}
	if cfg.Loot.Size <= 0 {
		cfg.Loot.Size = def.Loot.Size
	}
	if cfg.Plate.Size <= 0 {
		cfg.Plate.Size = def.Plate.Size
	}
	if cfg.Guard.Size <= 0 {
		cfg.Guard.Size = def.Guard.Size
	}
	if cfg.Guard.WaypointRadius < 0 {
		cfg.Guard.WaypointRadius = def.Guard.WaypointRadius
	}
	if cfg.Detection.Threshold <= 0 {
		cfg.Detection.Threshold = def.Detection.Threshold
	}
	if cfg.Detection.GainPerSecond < 0 {
		cfg.Detection.GainPerSecond = def.Detection.GainPerSecond
	}
	if cfg.Detection.DecayPerSecond < 0 {
		cfg.Detection.DecayPerSecond = def.Detection.DecayPerSecond
	}
	if cfg.Detection.RestartDelayMS < 0 {
		cfg.Detection.RestartDelayMS = 0
	}
	return cfg
}
