package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
	"github.com/vovakirdan/loop-heist/internal/platform/tui"
	"github.com/vovakirdan/loop-heist/internal/storage"
)

const debugLogFile = "heist-debug.log"

var (
	flagStartLevel string
	flagHandle     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start a run through the campaign.

Each loop lasts a fixed time. When it runs out (or you cut it short with
Space) everything resets and a clone replays what you just did. Use your
clones to hold plates and carry loot, then bring every item to the exit.

Controls:
  WASD/Arrows  - Move
  E            - Grab or drop loot
  Space        - Cut the loop now
  R            - Restart the level (forgets all clones)
  N            - Skip to the next level (the run will not be ranked)
  Tab          - Records
  Q/Ctrl+C     - Quit

Examples:
  heist play
  heist play --level patrol
  heist play --difficulty hard --handle ghost
  heist play --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStartLevel, "level", "", "Start at this level id (the run will not be ranked)")
	playCmd.Flags().StringVar(&flagHandle, "handle", "", "Handle prefilled on the results screen")
}

func runPlay(_ *cobra.Command, _ []string) error {
	catalog, game, err := loadGame()
	if err != nil {
		return err
	}

	start := 0
	if flagStartLevel != "" {
		if start, err = catalog.Index(flagStartLevel); err != nil {
			return fmt.Errorf("%w (run 'heist levels' to see the campaign)", err)
		}
	}

	return playSession(catalog, game, terminalConfig(), start)
}

// playSession runs one interactive session, with records when the
// database can be opened.
func playSession(catalog *level.Catalog, game config.GameConfig, rt core.RuntimeConfig, start int) error {
	logger, closeLog := sessionLogger()
	defer closeLog()

	opts := tui.Options{
		Catalog:    catalog,
		Config:     game,
		Runtime:    rt,
		StartLevel: start,
		Handle:     defaultHandle(),
		Logger:     logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		// Continue without storage - the game still works
	} else {
		defer store.Close()
		submitter := storage.NewSubmitter(store, logger, 0)
		defer submitter.Close()
		opts.Store = store
		opts.Submitter = submitter
	}

	return tui.Run(opts)
}

// terminalConfig sizes the screen from the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.FrameRate = flagFPS
	}
	return cfg
}

func defaultHandle() string {
	if flagHandle != "" {
		return flagHandle
	}
	return os.Getenv("USER")
}

// sessionLogger keeps log output off the game screen. With --verbose it
// goes to a file in the working directory.
func sessionLogger() (*log.Logger, func()) {
	if !flagVerbose {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "heist",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }
}
