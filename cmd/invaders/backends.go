package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List score storage backends",
	Long:  `Shows the storage backends available for --store.`,
	Args:  cobra.NoArgs,
	Run:   runBackends,
}

func runBackends(_ *cobra.Command, _ []string) {
	backends := storage.List()

	if len(backends) == 0 {
		fmt.Println("No backends available.")
		return
	}

	fmt.Println("Available backends:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		if len(b.Name) > maxNameLen {
			maxNameLen = len(b.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, b := range backends {
		marker := ""
		if b.Name == flagStore {
			marker = " (selected)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxNameLen, b.Name, b.Description, marker)
	}

	fmt.Println()
	fmt.Println("Select one with: invaders --store <name>")
}
