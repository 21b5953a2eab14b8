// heist is a time-loop stealth heist played in the terminal.
//
// Usage:
//
//	heist play               - Play the campaign
//	heist menu               - Pick a level interactively
//	heist levels             - List the campaign levels
//	heist scores             - Show the best-time board
//	heist serve              - Start SSH server for remote play
//	heist check <file...>    - Validate level files
//
// Global flags:
//
//	--fps <rate>          - Host frame rate (default: 60)
//	--db <path>           - Records database (default: ~/.heist/records.db)
//	--config <path>       - Custom tuning YAML
//	--levels <dir>        - Directory of level files replacing the campaign
//	--difficulty <name>   - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/level"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "heist",
	Short: "Loop Heist - rob the vault with your own past selves",
	Long: `Loop Heist is a stealth puzzle played in short time loops.
Every loop you finish is replayed by a clone of yourself in the next one,
so one body can hold a plate while another walks through the door.

Available commands:
  play     - Play the campaign
  menu     - Pick a level interactively
  levels   - List the campaign levels
  scores   - Show the best-time board
  serve    - Start SSH server for remote play
  check    - Validate level files

Examples:
  heist play
  heist play --level two-keys
  heist menu --difficulty easy
  heist serve --ssh :2222
  heist check ./my-levels/*.yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.heist/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadGame resolves the tuning and the level catalog from the global flags.
func loadGame() (*level.Catalog, config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	catalog, err := level.Open(flagLevels)
	if err != nil {
		return nil, cfg, err
	}
	return catalog, cfg, nil
}

// newLogger returns the CLI's stderr logger.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "heist",
		Level:           log.GetLevel(),
	})
}
