package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loop-heist/internal/level"
)

var checkCmd = &cobra.Command{
	Use:   "check <file...>",
	Short: "Validate level files",
	Long: `Validate level files against the level schema and check that every
door requirement names a plate of the same level.

Examples:
  heist check ./my-levels/vault.yaml
  heist check ./my-levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(_ *cobra.Command, args []string) error {
	logger := newLogger()

	failed := 0
	for _, path := range args {
		lvl, err := level.LoadFile(path)
		if err != nil {
			failed++
			logger.Error("invalid level", "file", path, "err", err)
			continue
		}
		logger.Info("ok", "file", path, "id", lvl.ID,
			"plates", len(lvl.Plates), "doors", len(lvl.Doors), "loot", len(lvl.Loot))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d level files failed", failed, len(args))
	}
	return nil
}
