package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long:  `Shows the levels of the campaign in the order they are played.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	catalog, _, err := loadGame()
	if err != nil {
		return err
	}

	levels := catalog.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Campaign:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %s\n", "#", maxIDLen, "ID", "Name")
	fmt.Printf("  %-3s  %-*s  %s\n", "-", maxIDLen, "--", "----")

	for _, l := range levels {
		fmt.Printf("  %-3d  %-*s  %s\n", l.Index+1, maxIDLen, l.ID, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'heist play --level <id>' to practice one level.")
	return nil
}
