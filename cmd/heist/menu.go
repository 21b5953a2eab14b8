package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loop-heist/internal/platform/tui"
	"github.com/vovakirdan/loop-heist/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level interactively",
	Long: `Start in interactive menu mode.

The first entry plays the whole campaign. The others start a practice run
at one level; practice runs are saved but never ranked.
After a run ends you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Records
  Q            - Quit

Examples:
  heist menu
  heist menu --difficulty easy
  heist menu --db ./records.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	catalog, game, err := loadGame()
	if err != nil {
		return err
	}

	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(catalog, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			if !showRecords(cfg.ScreenW, cfg.ScreenH) {
				return nil
			}
			continue
		}

		if err := playSession(catalog, game, cfg, menuResult.StartLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

// showRecords opens the records screen; false means the user quit.
func showRecords(width, height int) bool {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	goBack, err := tui.RunScoreboard(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	return goBack
}
