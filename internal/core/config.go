package core

// RuntimeConfig contains host settings passed to the platform layer.
// Simulation tuning lives in the config package; this only describes the
// terminal the game is drawn on and how often the host loop wakes up.
type RuntimeConfig struct {
	ScreenW   int // Screen width in characters
	ScreenH   int // Screen height in characters
	FrameRate int // Host frames per second; ticks are derived from elapsed time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
	}
}
